package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for orders and their
// customer-facing line items
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order, including any line items, in one transaction
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// GetByID retrieves an order with its item lists preloaded
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, created_at ASC")
		}).
		Preload("CostItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, created_at ASC")
		}).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Update saves changes to an existing order (header fields and cached
// financial columns; item lists are managed separately)
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Omit("Items", "CostItems").Save(order).Error
}

// Delete removes an order and, via FK cascade, its items
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Order{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns order headers matching the filter, newest first
func (r *OrderRepository) List(ctx context.Context, filter domain.ListOrdersFilter) ([]domain.Order, error) {
	query := r.db.WithContext(ctx).Model(&domain.Order{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR title ILIKE ? OR customer_name ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var orders []domain.Order
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// ReplaceItems swaps an order's customer-facing item list in a transaction
func (r *OrderRepository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []domain.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = orderID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListPendingQuotesExpiredBefore returns pending quotes whose validity
// date has passed
func (r *OrderRepository) ListPendingQuotesExpiredBefore(ctx context.Context, cutoff time.Time) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Where("type = ? AND status = ? AND valid_until IS NOT NULL AND valid_until < ?",
			domain.OrderTypeQuote, domain.OrderStatusPending, cutoff).
		Find(&orders).Error
	return orders, err
}

// ListUpdatedSince returns orders touched after the given time, with item
// lists preloaded. Used by the financial integrity job.
func (r *OrderRepository) ListUpdatedSince(ctx context.Context, since time.Time) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("CostItems").
		Where("updated_at >= ?", since).
		Find(&orders).Error
	return orders, err
}
