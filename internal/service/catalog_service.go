package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/primeorcamentos/backoffice-api/internal/mapper"
	"github.com/primeorcamentos/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CatalogService struct {
	itemRepo *repository.CatalogItemRepository
	logger   *zap.Logger
}

func NewCatalogService(itemRepo *repository.CatalogItemRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		itemRepo: itemRepo,
		logger:   logger,
	}
}

func (s *CatalogService) Create(ctx context.Context, req *domain.CreateCatalogItemRequest) (*domain.CatalogItemDTO, error) {
	item := &domain.CatalogItem{
		Description: req.Description,
		Kind:        req.Kind,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		IsActive:    true,
	}
	if item.Unit == "" {
		item.Unit = "un"
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create catalog item: %w", err)
	}

	dto := mapper.ToCatalogItemDTO(item)
	return &dto, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogItemDTO, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get catalog item: %w", err)
	}

	dto := mapper.ToCatalogItemDTO(item)
	return &dto, nil
}

func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCatalogItemRequest) (*domain.CatalogItemDTO, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get catalog item: %w", err)
	}

	item.Description = req.Description
	item.Kind = req.Kind
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	item.UnitPrice = req.UnitPrice
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update catalog item: %w", err)
	}

	dto := mapper.ToCatalogItemDTO(item)
	return &dto, nil
}

// Delete removes a catalog item. Order lines copy catalog data at insert
// time, so removal never affects existing orders.
func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete catalog item: %w", err)
	}
	return nil
}

func (s *CatalogService) List(ctx context.Context, kind domain.ItemKind, search string, activeOnly bool) ([]domain.CatalogItemDTO, error) {
	if kind != "" && !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown item kind %q", ErrInvalidInput, kind)
	}

	items, err := s.itemRepo.List(ctx, kind, search, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}

	dtos := make([]domain.CatalogItemDTO, len(items))
	for i, item := range items {
		dtos[i] = mapper.ToCatalogItemDTO(&item)
	}
	return dtos, nil
}
