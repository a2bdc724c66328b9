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

// BdiService manages named BDI configurations and stateless previews.
// The stored TotalRate is always the formula's output for the stored
// inputs; it is recomputed on every save and never accepted from clients.
type BdiService struct {
	configRepo *repository.BdiConfigRepository
	logger     *zap.Logger
}

func NewBdiService(configRepo *repository.BdiConfigRepository, logger *zap.Logger) *BdiService {
	return &BdiService{
		configRepo: configRepo,
		logger:     logger,
	}
}

func (s *BdiService) Create(ctx context.Context, req *domain.SaveBdiConfigRequest) (*domain.BdiConfigDTO, error) {
	cfg := configFromRequest(req)

	total, err := finance.ComputeBDI(mapper.ToBdiRates(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	cfg.TotalRate = total

	if err := s.configRepo.Create(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to create bdi config: %w", err)
	}

	s.logger.Info("BDI configuration created",
		zap.String("name", cfg.Name),
		zap.Float64("total_rate", cfg.TotalRate))

	dto := mapper.ToBdiConfigDTO(cfg)
	return &dto, nil
}

func (s *BdiService) GetByID(ctx context.Context, id uuid.UUID) (*domain.BdiConfigDTO, error) {
	cfg, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bdi config: %w", err)
	}

	dto := mapper.ToBdiConfigDTO(cfg)
	return &dto, nil
}

func (s *BdiService) Update(ctx context.Context, id uuid.UUID, req *domain.SaveBdiConfigRequest) (*domain.BdiConfigDTO, error) {
	cfg, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bdi config: %w", err)
	}

	updated := configFromRequest(req)
	updated.BaseModel = cfg.BaseModel

	total, err := finance.ComputeBDI(mapper.ToBdiRates(updated))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	updated.TotalRate = total

	if err := s.configRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update bdi config: %w", err)
	}

	dto := mapper.ToBdiConfigDTO(updated)
	return &dto, nil
}

func (s *BdiService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.configRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete bdi config: %w", err)
	}
	return nil
}

func (s *BdiService) List(ctx context.Context) ([]domain.BdiConfigDTO, error) {
	configs, err := s.configRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bdi configs: %w", err)
	}

	dtos := make([]domain.BdiConfigDTO, len(configs))
	for i, cfg := range configs {
		dtos[i] = mapper.ToBdiConfigDTO(&cfg)
	}
	return dtos, nil
}

// Preview computes the composite rate for ad-hoc inputs without storing
// anything.
func (s *BdiService) Preview(ctx context.Context, req *domain.BdiPreviewRequest) (*domain.BdiPreviewResponse, error) {
	total, err := finance.ComputeBDI(finance.BdiRates{
		Administration: req.Administration,
		Insurance:      req.Insurance,
		Guarantee:      req.Guarantee,
		Risk:           req.Risk,
		Financial:      req.Financial,
		Profit:         req.Profit,
		ISS:            req.ISS,
		PIS:            req.PIS,
		COFINS:         req.COFINS,
		CPRB:           req.CPRB,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	return &domain.BdiPreviewResponse{TotalRate: total}, nil
}

func configFromRequest(req *domain.SaveBdiConfigRequest) *domain.BdiConfig {
	return &domain.BdiConfig{
		Name:           req.Name,
		Administration: req.Administration,
		Insurance:      req.Insurance,
		Guarantee:      req.Guarantee,
		Risk:           req.Risk,
		Financial:      req.Financial,
		Profit:         req.Profit,
		ISS:            req.ISS,
		PIS:            req.PIS,
		COFINS:         req.COFINS,
		CPRB:           req.CPRB,
	}
}
