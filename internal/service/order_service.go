package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/primeorcamentos/backoffice-api/internal/finance"
	"github.com/primeorcamentos/backoffice-api/internal/mapper"
	"github.com/primeorcamentos/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService owns order CRUD and keeps the cached financial columns in
// sync with the engine's output. Every save path recomputes the breakdown
// from the current items and rates; the cached figures are never trusted
// as inputs.
type OrderService struct {
	orderRepo     *repository.OrderRepository
	customerRepo  *repository.CustomerRepository
	costItemRepo  *repository.CostItemRepository
	numberService *NumberService
	logger        *zap.Logger
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	customerRepo *repository.CustomerRepository,
	costItemRepo *repository.CostItemRepository,
	numberService *NumberService,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		customerRepo:  customerRepo,
		costItemRepo:  costItemRepo,
		numberService: numberService,
		logger:        logger,
	}
}

func (s *OrderService) Create(ctx context.Context, req *domain.CreateOrderRequest) (*domain.OrderDTO, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown order type %q", ErrInvalidInput, req.Type)
	}

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %s", ErrNotFound, req.CustomerID)
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if !customer.IsActive {
		return nil, ErrCustomerInactive
	}

	number, err := s.numberService.NextNumber(ctx, req.Type)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		Number:        number,
		Type:          req.Type,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		Status:        domain.OrderStatusDraft,
		Title:         req.Title,
		Description:   req.Description,
		Notes:         req.Notes,
		MarkupRate:    req.MarkupRate,
		TaxRate:       req.TaxRate,
		ContractPrice: req.ContractPrice,
		ValidUntil:    req.ValidUntil,
		Items:         buildOrderItems(req.Items),
	}

	s.applyFinancials(order)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("Order created",
		zap.String("number", order.Number),
		zap.String("type", string(order.Type)),
		zap.String("customer", order.CustomerName))

	dto := mapper.ToOrderDTO(order)
	return &dto, nil
}

func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.OrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	dto := mapper.ToOrderDTO(order)
	return &dto, nil
}

func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateOrderRequest) (*domain.OrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order.IsLocked() {
		return nil, ErrOrderLocked
	}

	order.Title = req.Title
	order.Description = req.Description
	order.Notes = req.Notes
	order.MarkupRate = req.MarkupRate
	order.TaxRate = req.TaxRate
	order.ContractPrice = req.ContractPrice
	order.ValidUntil = req.ValidUntil

	if req.Items != nil {
		order.Items = buildOrderItems(req.Items)
		if err := s.orderRepo.ReplaceItems(ctx, order.ID, order.Items); err != nil {
			return nil, fmt.Errorf("failed to replace order items: %w", err)
		}
	}

	s.applyFinancials(order)

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes an order. Only drafts can be deleted; anything further
// along must be cancelled to preserve the numbered paper trail.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get order: %w", err)
	}
	if order.Status != domain.OrderStatusDraft {
		return fmt.Errorf("%w: only draft orders can be deleted", ErrConflict)
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func (s *OrderService) List(ctx context.Context, filter domain.ListOrdersFilter) ([]domain.OrderSummaryDTO, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown order type %q", ErrInvalidInput, filter.Type)
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, filter.Status)
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	dtos := make([]domain.OrderSummaryDTO, len(orders))
	for i, order := range orders {
		dtos[i] = mapper.ToOrderSummaryDTO(&order)
	}
	return dtos, nil
}

// RefreshFinancials reloads an order and rewrites its cached financial
// columns from the engine. Used after cost item mutations and by the
// nightly integrity job.
func (s *OrderService) RefreshFinancials(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	s.applyFinancials(order)

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}

// RecalculateUpdatedSince recomputes the cached financials of every order
// touched after the cutoff and reports how many rows were corrected.
// Divergence means a write path skipped the engine and is worth a warning.
func (s *OrderService) RecalculateUpdatedSince(ctx context.Context, since time.Time) (checked, corrected int, err error) {
	orders, err := s.orderRepo.ListUpdatedSince(ctx, since)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list orders for recalculation: %w", err)
	}

	for i := range orders {
		order := &orders[i]
		before := snapshotFinancials(order)
		s.applyFinancials(order)

		if before == snapshotFinancials(order) {
			checked++
			continue
		}

		s.logger.Warn("Cached order financials diverged from engine output",
			zap.String("number", order.Number),
			zap.Float64("cached_total", before.TotalAmount),
			zap.Float64("computed_total", order.TotalAmount))

		if err := s.orderRepo.Update(ctx, order); err != nil {
			return checked, corrected, fmt.Errorf("failed to store recalculated order %s: %w", order.Number, err)
		}
		checked++
		corrected++
	}
	return checked, corrected, nil
}

// applyFinancials rewrites the order's cached columns from the engine.
// Rounding happens only here, at the storage edge.
func (s *OrderService) applyFinancials(order *domain.Order) {
	breakdown := finance.Compute(
		mapper.ToFinanceLineItems(order.Items),
		order.MarkupRate,
		order.TaxRate,
		order.ContractPrice,
	)

	order.Subtotal = finance.Round2(breakdown.Subtotal)
	order.MarkupValue = finance.Round2(breakdown.MarkupValue)
	order.TaxValue = finance.Round2(breakdown.TaxValue)
	order.PlannedCost = finance.Round2(breakdown.PlannedCost)
	order.TotalAmount = finance.Round2(breakdown.FinalTotal)

	if order.IsWorkOrder() {
		report := finance.Reconcile(
			mapper.ToFinanceCostItems(order.CostItems),
			breakdown.PlannedCost,
			order.ContractPrice,
		)
		order.ActualCost = finance.Round2(report.ActualCost)
		order.PlannedProfit = finance.Round2(report.PlannedProfit)
		order.ActualProfit = finance.Round2(report.ActualProfit)
	} else {
		order.ActualCost = 0
		order.PlannedProfit = 0
		order.ActualProfit = 0
	}
}

type financialSnapshot struct {
	Subtotal      float64
	MarkupValue   float64
	TaxValue      float64
	PlannedCost   float64
	TotalAmount   float64
	ActualCost    float64
	PlannedProfit float64
	ActualProfit  float64
}

func snapshotFinancials(order *domain.Order) financialSnapshot {
	return financialSnapshot{
		Subtotal:      order.Subtotal,
		MarkupValue:   order.MarkupValue,
		TaxValue:      order.TaxValue,
		PlannedCost:   order.PlannedCost,
		TotalAmount:   order.TotalAmount,
		ActualCost:    order.ActualCost,
		PlannedProfit: order.PlannedProfit,
		ActualProfit:  order.ActualProfit,
	}
}

func buildOrderItems(reqs []domain.CreateOrderItemRequest) []domain.OrderItem {
	items := make([]domain.OrderItem, len(reqs))
	for i, req := range reqs {
		kind := req.Kind
		if kind == "" {
			kind = domain.ItemKindService
		}
		unit := req.Unit
		if unit == "" {
			unit = "un"
		}
		displayOrder := req.DisplayOrder
		if displayOrder == 0 {
			displayOrder = i + 1
		}
		items[i] = domain.OrderItem{
			Description:  req.Description,
			Kind:         kind,
			Quantity:     req.Quantity,
			Unit:         unit,
			UnitPrice:    req.UnitPrice,
			Total:        finance.Round2(req.Quantity * req.UnitPrice),
			DisplayOrder: displayOrder,
		}
	}
	return items
}
