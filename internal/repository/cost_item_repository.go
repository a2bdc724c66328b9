package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

// CostItemRepository handles database operations for work-order cost items
type CostItemRepository struct {
	db *gorm.DB
}

// NewCostItemRepository creates a new CostItemRepository instance
func NewCostItemRepository(db *gorm.DB) *CostItemRepository {
	return &CostItemRepository{db: db}
}

// Create inserts a new cost item into the database
func (r *CostItemRepository) Create(ctx context.Context, item *domain.OrderCostItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID retrieves a cost item by its ID
func (r *CostItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.OrderCostItem, error) {
	var item domain.OrderCostItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update saves changes to an existing cost item
func (r *CostItemRepository) Update(ctx context.Context, item *domain.OrderCostItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a cost item from the database
func (r *CostItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.OrderCostItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByOrder returns all cost items for an order in display order
func (r *CostItemRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.OrderCostItem, error) {
	var items []domain.OrderCostItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("display_order ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

// GetMaxDisplayOrder returns the maximum display_order for an order's cost items
func (r *CostItemRepository) GetMaxDisplayOrder(ctx context.Context, orderID uuid.UUID) (int, error) {
	var maxOrder *int
	err := r.db.WithContext(ctx).
		Model(&domain.OrderCostItem{}).
		Where("order_id = ?", orderID).
		Select("MAX(display_order)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	if maxOrder == nil {
		return 0, nil
	}
	return *maxOrder, nil
}
