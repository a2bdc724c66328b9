package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/primeorcamentos/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orderService     *service.OrderService
	lifecycleService *service.OrderLifecycleService
	logger           *zap.Logger
}

func NewOrderHandler(
	orderService *service.OrderService,
	lifecycleService *service.OrderLifecycleService,
	logger *zap.Logger,
) *OrderHandler {
	return &OrderHandler{
		orderService:     orderService,
		lifecycleService: lifecycleService,
		logger:           logger,
	}
}

// List godoc
// @Summary List orders
// @Description Get order summaries with optional type, status, customer and search filters
// @Tags Orders
// @Accept json
// @Produce json
// @Param type query string false "Filter by type" Enums(quote, service_order, work_order)
// @Param status query string false "Filter by status" Enums(draft, pending, approved, in_progress, completed, cancelled, paid)
// @Param customerId query string false "Filter by customer" format(uuid)
// @Param search query string false "Search by number or title"
// @Param limit query int false "Max results (default 50, max 200)"
// @Param offset query int false "Results to skip"
// @Success 200 {array} domain.OrderSummaryDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /orders [get]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseOrderFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.orderService.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to list orders", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// GetByID godoc
// @Summary Get order by ID
// @Description Get an order with its items and, for work orders, cost items
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Success 200 {object} domain.OrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /orders/{id} [get]
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		h.logger.Error("failed to get order", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Create godoc
// @Summary Create order
// @Description Create a quote, service order or work order. The number is allocated server-side and financials are computed from the items and rates.
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body domain.CreateOrderRequest true "Order data"
// @Success 201 {object} domain.OrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError "Customer not found"
// @Failure 409 {object} domain.APIError "Customer inactive"
// @Router /orders [post]
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Customer not found")
		case errors.Is(err, service.ErrCustomerInactive):
			respondWithError(w, http.StatusConflict, "Customer is inactive")
		case errors.Is(err, service.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to create order", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to create order")
		}
		return
	}

	w.Header().Set("Location", "/api/v1/orders/"+order.ID.String())
	respondJSON(w, http.StatusCreated, order)
}

// Update godoc
// @Summary Update order
// @Description Update an order's details, rates and items. Financials are recomputed. Completed, cancelled and paid orders reject edits.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Param request body domain.UpdateOrderRequest true "Order data"
// @Success 200 {object} domain.OrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Order locked"
// @Router /orders/{id} [put]
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var req domain.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderLocked):
			respondWithError(w, http.StatusConflict, "Order no longer accepts edits")
		default:
			h.logger.Error("failed to update order", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to update order")
		}
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Delete godoc
// @Summary Delete order
// @Description Delete a draft order. Orders past draft must be cancelled instead.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	if err := h.orderService.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, service.ErrConflict):
			respondWithError(w, http.StatusConflict, "Only draft orders can be deleted")
		default:
			h.logger.Error("failed to delete order", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to delete order")
		}
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// UpdateStatus godoc
// @Summary Update order status
// @Description Move an order along its lifecycle. Only transitions allowed by the status graph succeed.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Param request body domain.UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} domain.OrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Transition not allowed"
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var req domain.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.lifecycleService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, service.ErrInvalidTransition):
			respondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to update order status", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Convert godoc
// @Summary Convert an approved quote
// @Description Create a service order or work order from an approved quote. Work orders get their cost budget seeded from the quote lines.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Param type query string true "Target type" Enums(service_order, work_order)
// @Success 201 {object} domain.OrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Not a quote or not approved"
// @Router /orders/{id}/convert [post]
func (h *OrderHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	targetType := domain.OrderType(r.URL.Query().Get("type"))

	order, err := h.lifecycleService.Convert(r.Context(), id, targetType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Quote not found")
		case errors.Is(err, service.ErrNotQuote):
			respondWithError(w, http.StatusConflict, "Order is not a quote")
		case errors.Is(err, service.ErrQuoteNotApproved):
			respondWithError(w, http.StatusConflict, "Quote must be approved before conversion")
		case errors.Is(err, service.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to convert quote", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to convert quote")
		}
		return
	}

	w.Header().Set("Location", "/api/v1/orders/"+order.ID.String())
	respondJSON(w, http.StatusCreated, order)
}

func parseOrderFilter(r *http.Request) (domain.ListOrdersFilter, error) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	filter := domain.ListOrdersFilter{
		Type:   domain.OrderType(r.URL.Query().Get("type")),
		Status: domain.OrderStatus(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	}

	if raw := r.URL.Query().Get("customerId"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid customerId format")
		}
		filter.CustomerID = &customerID
	}
	return filter, nil
}
