package service

import (
	"context"
	"fmt"
	"time"

	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/primeorcamentos/backoffice-api/internal/repository"
)

// NumberService issues human-readable document numbers such as
// "QT-2026-014". Sequences are per prefix and year and restart at 1
// each January.
type NumberService struct {
	sequenceRepo *repository.NumberSequenceRepository
	now          func() time.Time
}

func NewNumberService(sequenceRepo *repository.NumberSequenceRepository) *NumberService {
	return &NumberService{
		sequenceRepo: sequenceRepo,
		now:          time.Now,
	}
}

// NextNumber allocates the next number for the given order type.
func (s *NumberService) NextNumber(ctx context.Context, orderType domain.OrderType) (string, error) {
	prefix := orderType.NumberPrefix()
	year := s.now().Year()

	value, err := s.sequenceRepo.Next(ctx, prefix, year)
	if err != nil {
		return "", fmt.Errorf("failed to allocate %s number: %w", prefix, err)
	}

	return fmt.Sprintf("%s-%d-%03d", prefix, year, value), nil
}
