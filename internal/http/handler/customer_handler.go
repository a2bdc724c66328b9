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

type CustomerHandler struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// List godoc
// @Summary List customers
// @Description Get customers with optional search and active filter
// @Tags Customers
// @Accept json
// @Produce json
// @Param search query string false "Search by name or tax id"
// @Param active query bool false "Only active customers"
// @Param limit query int false "Max results (default 50, max 200)"
// @Param offset query int false "Results to skip"
// @Success 200 {array} domain.CustomerDTO
// @Failure 500 {object} domain.APIError
// @Router /customers [get]
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	activeOnly := r.URL.Query().Get("active") == "true"

	customers, err := h.customerService.List(r.Context(), r.URL.Query().Get("search"), activeOnly, limit, offset)
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list customers")
		return
	}

	respondJSON(w, http.StatusOK, customers)
}

// GetByID godoc
// @Summary Get customer by ID
// @Description Get a customer with its open order count
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID" format(uuid)
// @Success 200 {object} domain.CustomerDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	customer, err := h.customerService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("failed to get customer", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get customer")
		return
	}

	respondJSON(w, http.StatusOK, customer)
}

// Create godoc
// @Summary Create customer
// @Description Create a new customer. Blank address fields are filled from the postal registry when lookups are enabled.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body domain.CreateCustomerRequest true "Customer data"
// @Success 201 {object} domain.CustomerDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Duplicate tax id"
// @Failure 500 {object} domain.APIError
// @Router /customers [post]
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	customer, err := h.customerService.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			respondWithError(w, http.StatusConflict, "A customer with this tax id already exists")
			return
		}
		h.logger.Error("failed to create customer", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	w.Header().Set("Location", "/api/v1/customers/"+customer.ID.String())
	respondJSON(w, http.StatusCreated, customer)
}

// Update godoc
// @Summary Update customer
// @Description Update an existing customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID" format(uuid)
// @Param request body domain.UpdateCustomerRequest true "Customer data"
// @Success 200 {object} domain.CustomerDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var req domain.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	customer, err := h.customerService.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Customer not found")
			return
		}
		if errors.Is(err, service.ErrConflict) {
			respondWithError(w, http.StatusConflict, "A customer with this tax id already exists")
			return
		}
		h.logger.Error("failed to update customer", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	respondJSON(w, http.StatusOK, customer)
}

// Delete godoc
// @Summary Delete customer
// @Description Delete a customer without orders. Customers with orders must be deactivated instead.
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Customer has orders"
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	if err := h.customerService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Customer not found")
			return
		}
		if errors.Is(err, service.ErrCustomerHasOrders) {
			respondWithError(w, http.StatusConflict, "Customer has orders and cannot be deleted")
			return
		}
		h.logger.Error("failed to delete customer", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// LookupTaxID godoc
// @Summary Look up a company by CNPJ
// @Description Query the public company registry to pre-fill customer data
// @Tags Customers
// @Accept json
// @Produce json
// @Param taxId path string true "CNPJ, with or without punctuation"
// @Success 200 {object} lookup.Company
// @Failure 400 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Router /lookup/company/{taxId} [get]
func (h *CustomerHandler) LookupTaxID(w http.ResponseWriter, r *http.Request) {
	company, err := h.customerService.LookupTaxID(r.Context(), chi.URLParam(r, "taxId"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Warn("company lookup failed", zap.Error(err))
		respondWithError(w, http.StatusBadGateway, "Company registry lookup failed")
		return
	}

	respondJSON(w, http.StatusOK, company)
}

// LookupPostalCode godoc
// @Summary Look up an address by postal code
// @Description Query the postal registry to pre-fill address fields
// @Tags Customers
// @Accept json
// @Produce json
// @Param code path string true "Postal code (CEP), with or without punctuation"
// @Success 200 {object} lookup.Address
// @Failure 400 {object} domain.APIError
// @Failure 502 {object} domain.APIError
// @Router /lookup/postal/{code} [get]
func (h *CustomerHandler) LookupPostalCode(w http.ResponseWriter, r *http.Request) {
	address, err := h.customerService.LookupPostalCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Warn("postal lookup failed", zap.Error(err))
		respondWithError(w, http.StatusBadGateway, "Postal registry lookup failed")
		return
	}

	respondJSON(w, http.StatusOK, address)
}
