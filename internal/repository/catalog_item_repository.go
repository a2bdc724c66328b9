package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

// CatalogItemRepository handles database operations for catalog items
type CatalogItemRepository struct {
	db *gorm.DB
}

// NewCatalogItemRepository creates a new CatalogItemRepository instance
func NewCatalogItemRepository(db *gorm.DB) *CatalogItemRepository {
	return &CatalogItemRepository{db: db}
}

// Create inserts a new catalog item into the database
func (r *CatalogItemRepository) Create(ctx context.Context, item *domain.CatalogItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID retrieves a catalog item by its ID
func (r *CatalogItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update saves changes to an existing catalog item
func (r *CatalogItemRepository) Update(ctx context.Context, item *domain.CatalogItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a catalog item from the database
func (r *CatalogItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.CatalogItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns catalog items, optionally filtered by kind, search term
// and active flag
func (r *CatalogItemRepository) List(ctx context.Context, kind domain.ItemKind, search string, activeOnly bool) ([]domain.CatalogItem, error) {
	query := r.db.WithContext(ctx).Model(&domain.CatalogItem{})

	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if search != "" {
		query = query.Where("description ILIKE ?", "%"+search+"%")
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var items []domain.CatalogItem
	err := query.Order("description ASC").Find(&items).Error
	return items, err
}
