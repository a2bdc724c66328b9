package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/primeorcamentos/backoffice-api/internal/finance"
	"github.com/primeorcamentos/backoffice-api/internal/mapper"
	"github.com/primeorcamentos/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CostTrackingService manages the internal cost budget of work orders:
// the planned lines, the recorded actuals and the reconciliation report.
// Every mutation refreshes the owning order's cached aggregates.
type CostTrackingService struct {
	orderRepo    *repository.OrderRepository
	costItemRepo *repository.CostItemRepository
	orderService *OrderService
	logger       *zap.Logger
}

func NewCostTrackingService(
	orderRepo *repository.OrderRepository,
	costItemRepo *repository.CostItemRepository,
	orderService *OrderService,
	logger *zap.Logger,
) *CostTrackingService {
	return &CostTrackingService{
		orderRepo:    orderRepo,
		costItemRepo: costItemRepo,
		orderService: orderService,
		logger:       logger,
	}
}

func (s *CostTrackingService) AddItem(ctx context.Context, orderID uuid.UUID, req *domain.CreateCostItemRequest) (*domain.CostItemDTO, error) {
	order, err := s.editableWorkOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	kind := req.Kind
	if kind == "" {
		kind = domain.ItemKindMaterial
	}
	unit := req.Unit
	if unit == "" {
		unit = "un"
	}
	displayOrder := req.DisplayOrder
	if displayOrder == 0 {
		max, err := s.costItemRepo.GetMaxDisplayOrder(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to determine display order: %w", err)
		}
		displayOrder = max + 1
	}

	item := &domain.OrderCostItem{
		OrderID:      order.ID,
		Description:  req.Description,
		Kind:         kind,
		Quantity:     req.Quantity,
		Unit:         unit,
		UnitPrice:    req.UnitPrice,
		DisplayOrder: displayOrder,
	}

	if err := s.costItemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create cost item: %w", err)
	}
	if _, err := s.orderService.RefreshFinancials(ctx, order.ID); err != nil {
		return nil, err
	}

	dto := mapper.ToCostItemDTO(item)
	return &dto, nil
}

func (s *CostTrackingService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req *domain.UpdateCostItemRequest) (*domain.CostItemDTO, error) {
	if _, err := s.editableWorkOrder(ctx, orderID); err != nil {
		return nil, err
	}

	item, err := s.ownedCostItem(ctx, orderID, itemID)
	if err != nil {
		return nil, err
	}

	item.Description = req.Description
	if req.Kind != "" {
		item.Kind = req.Kind
	}
	item.Quantity = req.Quantity
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	item.UnitPrice = req.UnitPrice

	if err := s.costItemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update cost item: %w", err)
	}
	if _, err := s.orderService.RefreshFinancials(ctx, orderID); err != nil {
		return nil, err
	}

	dto := mapper.ToCostItemDTO(item)
	return &dto, nil
}

func (s *CostTrackingService) DeleteItem(ctx context.Context, orderID, itemID uuid.UUID) error {
	if _, err := s.editableWorkOrder(ctx, orderID); err != nil {
		return err
	}
	if _, err := s.ownedCostItem(ctx, orderID, itemID); err != nil {
		return err
	}

	if err := s.costItemRepo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete cost item: %w", err)
	}
	if _, err := s.orderService.RefreshFinancials(ctx, orderID); err != nil {
		return err
	}
	return nil
}

// RecordActual stores the incurred cost of a line. The quantity/price
// pair and the direct value override can both be written; a nonzero
// override is what the engine ends up trusting.
func (s *CostTrackingService) RecordActual(ctx context.Context, orderID, itemID uuid.UUID, req *domain.RecordActualRequest) (*domain.CostItemDTO, error) {
	if _, err := s.editableWorkOrder(ctx, orderID); err != nil {
		return nil, err
	}

	item, err := s.ownedCostItem(ctx, orderID, itemID)
	if err != nil {
		return nil, err
	}

	item.ActualQuantity = req.ActualQuantity
	item.ActualUnitPrice = req.ActualUnitPrice
	item.ActualValue = req.ActualValue

	if err := s.costItemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to record actual cost: %w", err)
	}
	if _, err := s.orderService.RefreshFinancials(ctx, orderID); err != nil {
		return nil, err
	}

	dto := mapper.ToCostItemDTO(item)
	return &dto, nil
}

// GetReport reconciles a work order's cost budget against recorded
// actuals. Reports stay available after the order is locked.
func (s *CostTrackingService) GetReport(ctx context.Context, orderID uuid.UUID) (*domain.CostReportDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if !order.IsWorkOrder() {
		return nil, ErrNotWorkOrder
	}

	report := finance.Reconcile(
		mapper.ToFinanceCostItems(order.CostItems),
		order.PlannedCost,
		order.ContractPrice,
	)

	dto := mapper.ToCostReportDTO(order, report)
	return &dto, nil
}

func (s *CostTrackingService) editableWorkOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if !order.IsWorkOrder() {
		return nil, ErrNotWorkOrder
	}
	if order.IsLocked() {
		return nil, ErrOrderLocked
	}
	return order, nil
}

func (s *CostTrackingService) ownedCostItem(ctx context.Context, orderID, itemID uuid.UUID) (*domain.OrderCostItem, error) {
	item, err := s.costItemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cost item: %w", err)
	}
	if item.OrderID != orderID {
		return nil, fmt.Errorf("%w: cost item belongs to a different order", ErrNotFound)
	}
	return item, nil
}
