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

type BdiHandler struct {
	bdiService *service.BdiService
	logger     *zap.Logger
}

func NewBdiHandler(bdiService *service.BdiService, logger *zap.Logger) *BdiHandler {
	return &BdiHandler{
		bdiService: bdiService,
		logger:     logger,
	}
}

// List godoc
// @Summary List BDI configurations
// @Tags BDI
// @Accept json
// @Produce json
// @Success 200 {array} domain.BdiConfigDTO
// @Failure 500 {object} domain.APIError
// @Router /bdi-configs [get]
func (h *BdiHandler) List(w http.ResponseWriter, r *http.Request) {
	configs, err := h.bdiService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list bdi configs", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list BDI configurations")
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

// GetByID godoc
// @Summary Get BDI configuration by ID
// @Tags BDI
// @Accept json
// @Produce json
// @Param id path string true "BDI configuration ID" format(uuid)
// @Success 200 {object} domain.BdiConfigDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /bdi-configs/{id} [get]
func (h *BdiHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid BDI configuration ID format")
		return
	}

	cfg, err := h.bdiService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "BDI configuration not found")
			return
		}
		h.logger.Error("failed to get bdi config", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get BDI configuration")
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}

// Create godoc
// @Summary Create BDI configuration
// @Description Store a named set of BDI inputs. The composite rate is computed server-side.
// @Tags BDI
// @Accept json
// @Produce json
// @Param request body domain.SaveBdiConfigRequest true "BDI inputs"
// @Success 201 {object} domain.BdiConfigDTO
// @Failure 400 {object} domain.APIError "Invalid inputs, including tax rates summing to 100% or more"
// @Failure 500 {object} domain.APIError
// @Router /bdi-configs [post]
func (h *BdiHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.SaveBdiConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	cfg, err := h.bdiService.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to create bdi config", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create BDI configuration")
		return
	}

	w.Header().Set("Location", "/api/v1/bdi-configs/"+cfg.ID.String())
	respondJSON(w, http.StatusCreated, cfg)
}

// Update godoc
// @Summary Update BDI configuration
// @Description Replace the inputs of a stored configuration. The composite rate is recomputed.
// @Tags BDI
// @Accept json
// @Produce json
// @Param id path string true "BDI configuration ID" format(uuid)
// @Param request body domain.SaveBdiConfigRequest true "BDI inputs"
// @Success 200 {object} domain.BdiConfigDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /bdi-configs/{id} [put]
func (h *BdiHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid BDI configuration ID format")
		return
	}

	var req domain.SaveBdiConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	cfg, err := h.bdiService.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "BDI configuration not found")
		case errors.Is(err, service.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to update bdi config", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to update BDI configuration")
		}
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}

// Delete godoc
// @Summary Delete BDI configuration
// @Description Delete a stored configuration. Orders keep the markup snapshot they were created with.
// @Tags BDI
// @Accept json
// @Produce json
// @Param id path string true "BDI configuration ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /bdi-configs/{id} [delete]
func (h *BdiHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid BDI configuration ID format")
		return
	}

	if err := h.bdiService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "BDI configuration not found")
			return
		}
		h.logger.Error("failed to delete bdi config", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete BDI configuration")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Preview godoc
// @Summary Preview a BDI computation
// @Description Compute the composite markup percentage for ad-hoc inputs without storing anything
// @Tags BDI
// @Accept json
// @Produce json
// @Param request body domain.BdiPreviewRequest true "BDI inputs"
// @Success 200 {object} domain.BdiPreviewResponse
// @Failure 400 {object} domain.APIError "Invalid inputs, including tax rates summing to 100% or more"
// @Router /bdi-configs/preview [post]
func (h *BdiHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req domain.BdiPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.bdiService.Preview(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to preview bdi", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to compute BDI")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
