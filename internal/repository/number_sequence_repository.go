package repository

import (
	"context"

	"gorm.io/gorm"
)

// NumberSequenceRepository handles allocation of sequential document numbers
type NumberSequenceRepository struct {
	db *gorm.DB
}

// NewNumberSequenceRepository creates a new NumberSequenceRepository instance
func NewNumberSequenceRepository(db *gorm.DB) *NumberSequenceRepository {
	return &NumberSequenceRepository{db: db}
}

// Next atomically increments and returns the next value for the given
// prefix and year. The upsert keeps concurrent allocations from ever
// handing out the same number twice.
func (r *NumberSequenceRepository) Next(ctx context.Context, prefix string, year int) (int, error) {
	var lastValue int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO number_sequences (id, prefix, year, last_value, created_at, updated_at)
		VALUES (gen_random_uuid(), ?, ?, 1, NOW(), NOW())
		ON CONFLICT (prefix, year)
		DO UPDATE SET last_value = number_sequences.last_value + 1, updated_at = NOW()
		RETURNING last_value`,
		prefix, year,
	).Scan(&lastValue).Error
	if err != nil {
		return 0, err
	}
	return lastValue, nil
}
