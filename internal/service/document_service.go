package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/document"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"go.uber.org/zap"
)

// DocumentService ties the document renderer to live order data.
type DocumentService struct {
	orderService *OrderService
	costService  *CostTrackingService
	renderer     *document.Renderer
	logger       *zap.Logger
}

func NewDocumentService(
	orderService *OrderService,
	costService *CostTrackingService,
	renderer *document.Renderer,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		orderService: orderService,
		costService:  costService,
		renderer:     renderer,
		logger:       logger,
	}
}

// ProposalPDF renders the customer-facing PDF for an order.
func (s *DocumentService) ProposalPDF(ctx context.Context, orderID uuid.UUID) ([]byte, string, error) {
	order, err := s.orderService.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}

	data, err := s.renderer.ProposalPDF(order)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("%s.pdf", order.Number), nil
}

// CostReportPDF renders the internal planned-vs-actual PDF for a work order.
func (s *DocumentService) CostReportPDF(ctx context.Context, orderID uuid.UUID) ([]byte, string, error) {
	report, err := s.costService.GetReport(ctx, orderID)
	if err != nil {
		return nil, "", err
	}

	data, err := s.renderer.CostReportPDF(report)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("%s-cost-report.pdf", report.Number), nil
}

// CostReportXLSX renders the planned-vs-actual report as a spreadsheet.
func (s *DocumentService) CostReportXLSX(ctx context.Context, orderID uuid.UUID) ([]byte, string, error) {
	report, err := s.costService.GetReport(ctx, orderID)
	if err != nil {
		return nil, "", err
	}

	data, err := s.renderer.CostReportXLSX(report)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("%s-cost-report.xlsx", report.Number), nil
}

// OrderBookXLSX renders a spreadsheet of orders matching the filter.
func (s *DocumentService) OrderBookXLSX(ctx context.Context, filter domain.ListOrdersFilter) ([]byte, string, error) {
	orders, err := s.orderService.List(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	data, err := s.renderer.OrderBookXLSX(orders)
	if err != nil {
		return nil, "", err
	}
	return data, "orders.xlsx", nil
}
