package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

// BdiConfigRepository handles database operations for BDI configurations
type BdiConfigRepository struct {
	db *gorm.DB
}

// NewBdiConfigRepository creates a new BdiConfigRepository instance
func NewBdiConfigRepository(db *gorm.DB) *BdiConfigRepository {
	return &BdiConfigRepository{db: db}
}

// Create inserts a new BDI configuration into the database
func (r *BdiConfigRepository) Create(ctx context.Context, cfg *domain.BdiConfig) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

// GetByID retrieves a BDI configuration by its ID
func (r *BdiConfigRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BdiConfig, error) {
	var cfg domain.BdiConfig
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Update saves changes to an existing BDI configuration
func (r *BdiConfigRepository) Update(ctx context.Context, cfg *domain.BdiConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}

// Delete removes a BDI configuration from the database
func (r *BdiConfigRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.BdiConfig{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns all BDI configurations ordered by name
func (r *BdiConfigRepository) List(ctx context.Context) ([]domain.BdiConfig, error) {
	var configs []domain.BdiConfig
	err := r.db.WithContext(ctx).Order("name ASC").Find(&configs).Error
	return configs, err
}
