package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/primeorcamentos/backoffice-api/internal/service"
	"go.uber.org/zap"
)

// CostItemHandler serves the cost budget subresource of work orders.
type CostItemHandler struct {
	costService *service.CostTrackingService
	logger      *zap.Logger
}

func NewCostItemHandler(costService *service.CostTrackingService, logger *zap.Logger) *CostItemHandler {
	return &CostItemHandler{
		costService: costService,
		logger:      logger,
	}
}

// Create godoc
// @Summary Add cost item
// @Description Add a planned cost line to a work order
// @Tags Cost Tracking
// @Accept json
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Param request body domain.CreateCostItemRequest true "Cost item data"
// @Success 201 {object} domain.CostItemDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Not a work order or locked"
// @Router /orders/{id}/cost-items [post]
func (h *CostItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var req domain.CreateCostItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	item, err := h.costService.AddItem(r.Context(), orderID, &req)
	if err != nil {
		h.respondCostError(w, err, "failed to create cost item")
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// Update godoc
// @Summary Update cost item
// @Description Update the planned side of a cost line
// @Tags Cost Tracking
// @Accept json
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Param itemId path string true "Cost item ID" format(uuid)
// @Param request body domain.UpdateCostItemRequest true "Cost item data"
// @Success 200 {object} domain.CostItemDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /orders/{id}/cost-items/{itemId} [put]
func (h *CostItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	orderID, itemID, ok := h.parseIDs(w, r)
	if !ok {
		return
	}

	var req domain.UpdateCostItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	item, err := h.costService.UpdateItem(r.Context(), orderID, itemID, &req)
	if err != nil {
		h.respondCostError(w, err, "failed to update cost item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete cost item
// @Tags Cost Tracking
// @Accept json
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Param itemId path string true "Cost item ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /orders/{id}/cost-items/{itemId} [delete]
func (h *CostItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, itemID, ok := h.parseIDs(w, r)
	if !ok {
		return
	}

	if err := h.costService.DeleteItem(r.Context(), orderID, itemID); err != nil {
		h.respondCostError(w, err, "failed to delete cost item")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// RecordActual godoc
// @Summary Record actual cost
// @Description Record the incurred cost of a line, either as an actual quantity/price pair or as a direct value. A nonzero direct value takes precedence.
// @Tags Cost Tracking
// @Accept json
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Param itemId path string true "Cost item ID" format(uuid)
// @Param request body domain.RecordActualRequest true "Actual cost data"
// @Success 200 {object} domain.CostItemDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /orders/{id}/cost-items/{itemId}/actual [put]
func (h *CostItemHandler) RecordActual(w http.ResponseWriter, r *http.Request) {
	orderID, itemID, ok := h.parseIDs(w, r)
	if !ok {
		return
	}

	var req domain.RecordActualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.costService.RecordActual(r.Context(), orderID, itemID, &req)
	if err != nil {
		h.respondCostError(w, err, "failed to record actual cost")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// GetReport godoc
// @Summary Get cost report
// @Description Reconcile a work order's cost budget against recorded actuals
// @Tags Cost Tracking
// @Accept json
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Success 200 {object} domain.CostReportDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Not a work order"
// @Router /orders/{id}/cost-report [get]
func (h *CostItemHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	report, err := h.costService.GetReport(r.Context(), orderID)
	if err != nil {
		h.respondCostError(w, err, "failed to build cost report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func (h *CostItemHandler) parseIDs(w http.ResponseWriter, r *http.Request) (orderID, itemID uuid.UUID, ok bool) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return uuid.Nil, uuid.Nil, false
	}
	itemID, err = uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid cost item ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return orderID, itemID, true
}

func (h *CostItemHandler) respondCostError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrNotWorkOrder):
		respondWithError(w, http.StatusConflict, "Order is not a work order")
	case errors.Is(err, service.ErrOrderLocked):
		respondWithError(w, http.StatusConflict, "Order no longer accepts edits")
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(logMsg, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal error")
	}
}
