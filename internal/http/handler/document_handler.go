package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/service"
	"go.uber.org/zap"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DocumentHandler serves rendered PDFs and spreadsheets.
type DocumentHandler struct {
	documentService *service.DocumentService
	logger          *zap.Logger
}

func NewDocumentHandler(documentService *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// ProposalPDF godoc
// @Summary Download order proposal PDF
// @Description Render the customer-facing PDF for an order. Cost items never appear in this document.
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "Order ID" format(uuid)
// @Success 200 {file} binary
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /orders/{id}/documents/proposal [get]
func (h *DocumentHandler) ProposalPDF(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	data, filename, err := h.documentService.ProposalPDF(r.Context(), id)
	if err != nil {
		h.respondDocumentError(w, err, "failed to render proposal pdf")
		return
	}

	respondFile(w, contentTypePDF, filename, data)
}

// CostReportPDF godoc
// @Summary Download cost report PDF
// @Description Render the internal planned-vs-actual report for a work order
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "Order ID" format(uuid)
// @Success 200 {file} binary
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Not a work order"
// @Router /orders/{id}/documents/cost-report [get]
func (h *DocumentHandler) CostReportPDF(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	data, filename, err := h.documentService.CostReportPDF(r.Context(), id)
	if err != nil {
		h.respondDocumentError(w, err, "failed to render cost report pdf")
		return
	}

	respondFile(w, contentTypePDF, filename, data)
}

// CostReportXLSX godoc
// @Summary Download cost report spreadsheet
// @Tags Documents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Order ID" format(uuid)
// @Success 200 {file} binary
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Not a work order"
// @Router /orders/{id}/documents/cost-report.xlsx [get]
func (h *DocumentHandler) CostReportXLSX(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	data, filename, err := h.documentService.CostReportXLSX(r.Context(), id)
	if err != nil {
		h.respondDocumentError(w, err, "failed to render cost report xlsx")
		return
	}

	respondFile(w, contentTypeXLSX, filename, data)
}

// OrderBookXLSX godoc
// @Summary Download order book spreadsheet
// @Description Export the orders matching the usual list filters as a spreadsheet
// @Tags Documents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param type query string false "Filter by type" Enums(quote, service_order, work_order)
// @Param status query string false "Filter by status"
// @Param customerId query string false "Filter by customer" format(uuid)
// @Success 200 {file} binary
// @Failure 400 {object} domain.APIError
// @Router /orders/export [get]
func (h *DocumentHandler) OrderBookXLSX(w http.ResponseWriter, r *http.Request) {
	filter, err := parseOrderFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, filename, err := h.documentService.OrderBookXLSX(r.Context(), filter)
	if err != nil {
		h.respondDocumentError(w, err, "failed to render order book xlsx")
		return
	}

	respondFile(w, contentTypeXLSX, filename, data)
}

func (h *DocumentHandler) respondDocumentError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, service.ErrNotWorkOrder):
		respondWithError(w, http.StatusConflict, "Order is not a work order")
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(logMsg, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to render document")
	}
}
