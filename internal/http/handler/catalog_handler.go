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

type CatalogHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewCatalogHandler(catalogService *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// List godoc
// @Summary List catalog items
// @Description Get catalog items with optional kind and search filters
// @Tags Catalog
// @Accept json
// @Produce json
// @Param kind query string false "Filter by kind" Enums(service, material)
// @Param search query string false "Search by description"
// @Param active query bool false "Only active items"
// @Success 200 {array} domain.CatalogItemDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /catalog-items [get]
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := domain.ItemKind(r.URL.Query().Get("kind"))
	activeOnly := r.URL.Query().Get("active") == "true"

	items, err := h.catalogService.List(r.Context(), kind, r.URL.Query().Get("search"), activeOnly)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to list catalog items", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list catalog items")
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// GetByID godoc
// @Summary Get catalog item by ID
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Catalog item ID" format(uuid)
// @Success 200 {object} domain.CatalogItemDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /catalog-items/{id} [get]
func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid catalog item ID format")
		return
	}

	item, err := h.catalogService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Catalog item not found")
			return
		}
		h.logger.Error("failed to get catalog item", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get catalog item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Create godoc
// @Summary Create catalog item
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body domain.CreateCatalogItemRequest true "Catalog item data"
// @Success 201 {object} domain.CatalogItemDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /catalog-items [post]
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCatalogItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	item, err := h.catalogService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create catalog item", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create catalog item")
		return
	}

	w.Header().Set("Location", "/api/v1/catalog-items/"+item.ID.String())
	respondJSON(w, http.StatusCreated, item)
}

// Update godoc
// @Summary Update catalog item
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Catalog item ID" format(uuid)
// @Param request body domain.UpdateCatalogItemRequest true "Catalog item data"
// @Success 200 {object} domain.CatalogItemDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /catalog-items/{id} [put]
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid catalog item ID format")
		return
	}

	var req domain.UpdateCatalogItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	item, err := h.catalogService.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Catalog item not found")
			return
		}
		h.logger.Error("failed to update catalog item", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to update catalog item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete catalog item
// @Description Delete a catalog item. Existing order lines keep their copied data.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Catalog item ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /catalog-items/{id} [delete]
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid catalog item ID format")
		return
	}

	if err := h.catalogService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Catalog item not found")
			return
		}
		h.logger.Error("failed to delete catalog item", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete catalog item")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
