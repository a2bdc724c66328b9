package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/primeorcamentos/backoffice-api/internal/mapper"
	"github.com/primeorcamentos/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderLifecycleService owns status transitions, quote expiry and the
// conversion of accepted quotes into executable orders.
type OrderLifecycleService struct {
	orderRepo    *repository.OrderRepository
	orderService *OrderService
	logger       *zap.Logger
}

func NewOrderLifecycleService(
	orderRepo *repository.OrderRepository,
	orderService *OrderService,
	logger *zap.Logger,
) *OrderLifecycleService {
	return &OrderLifecycleService{
		orderRepo:    orderRepo,
		orderService: orderService,
		logger:       logger,
	}
}

// UpdateStatus moves an order to a new status when the transition graph
// allows it.
func (s *OrderLifecycleService) UpdateStatus(ctx context.Context, id uuid.UUID, next domain.OrderStatus) (*domain.OrderDTO, error) {
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, next)
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s cannot move to %s", ErrInvalidTransition, order.Status, next)
	}

	previous := order.Status
	order.Status = next
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info("Order status changed",
		zap.String("number", order.Number),
		zap.String("from", string(previous)),
		zap.String("to", string(next)))

	dto := mapper.ToOrderDTO(order)
	return &dto, nil
}

// Convert turns an approved quote into an executable order of the given
// type. Customer lines are copied as-is; a work order additionally gets
// its cost budget seeded from the quote lines so planned costs start from
// the sold scope. The quote itself stays untouched apart from serving as
// the conversion source.
func (s *OrderLifecycleService) Convert(ctx context.Context, quoteID uuid.UUID, targetType domain.OrderType) (*domain.OrderDTO, error) {
	if targetType != domain.OrderTypeServiceOrder && targetType != domain.OrderTypeWorkOrder {
		return nil, fmt.Errorf("%w: quotes convert to service_order or work_order, not %q", ErrInvalidInput, targetType)
	}

	quote, err := s.orderRepo.GetByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	if quote.Type != domain.OrderTypeQuote {
		return nil, ErrNotQuote
	}
	if quote.Status != domain.OrderStatusApproved {
		return nil, ErrQuoteNotApproved
	}

	number, err := s.orderService.numberService.NextNumber(ctx, targetType)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		Number:        number,
		Type:          targetType,
		CustomerID:    quote.CustomerID,
		CustomerName:  quote.CustomerName,
		Status:        domain.OrderStatusApproved,
		Title:         quote.Title,
		Description:   quote.Description,
		Notes:         quote.Notes,
		MarkupRate:    quote.MarkupRate,
		TaxRate:       quote.TaxRate,
		ContractPrice: quote.ContractPrice,
		SourceQuoteID: &quote.ID,
	}

	order.Items = make([]domain.OrderItem, len(quote.Items))
	for i, item := range quote.Items {
		order.Items[i] = domain.OrderItem{
			Description:  item.Description,
			Kind:         item.Kind,
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			UnitPrice:    item.UnitPrice,
			Total:        item.Total,
			DisplayOrder: item.DisplayOrder,
		}
	}

	if targetType == domain.OrderTypeWorkOrder {
		order.CostItems = make([]domain.OrderCostItem, len(quote.Items))
		for i, item := range quote.Items {
			order.CostItems[i] = domain.OrderCostItem{
				Description:  item.Description,
				Kind:         item.Kind,
				Quantity:     item.Quantity,
				Unit:         item.Unit,
				UnitPrice:    item.UnitPrice,
				DisplayOrder: item.DisplayOrder,
			}
		}
	}

	s.orderService.applyFinancials(order)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create converted order: %w", err)
	}

	s.logger.Info("Quote converted",
		zap.String("quote", quote.Number),
		zap.String("order", order.Number),
		zap.String("type", string(targetType)))

	dto := mapper.ToOrderDTO(order)
	return &dto, nil
}

// ExpireQuotes cancels every pending quote whose validity date has
// passed. Returns how many quotes were expired.
func (s *OrderLifecycleService) ExpireQuotes(ctx context.Context, now time.Time) (int, error) {
	quotes, err := s.orderRepo.ListPendingQuotesExpiredBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired quotes: %w", err)
	}

	expired := 0
	for i := range quotes {
		quote := &quotes[i]
		quote.Status = domain.OrderStatusCancelled
		if err := s.orderRepo.Update(ctx, quote); err != nil {
			return expired, fmt.Errorf("failed to expire quote %s: %w", quote.Number, err)
		}
		s.logger.Info("Quote expired",
			zap.String("number", quote.Number),
			zap.Timep("valid_until", quote.ValidUntil))
		expired++
	}
	return expired, nil
}
