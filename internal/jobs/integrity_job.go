package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// IntegrityJobName is the name of the financial integrity job
const IntegrityJobName = "financial_integrity"

// FinancialRecalculator recomputes cached order financials from stored
// items and rates.
type FinancialRecalculator interface {
	RecalculateUpdatedSince(ctx context.Context, since time.Time) (checked, corrected int, err error)
}

// IntegrityJob recomputes the cached financial columns of recently
// touched orders. Corrections indicate a write path skipped the engine,
// so any nonzero count is logged loudly.
type IntegrityJob struct {
	recalculator FinancialRecalculator
	logger       *zap.Logger
	window       time.Duration
	timeout      time.Duration
}

// NewIntegrityJob creates a new financial integrity job. The window
// bounds how far back the sweep looks at order updates.
func NewIntegrityJob(recalculator FinancialRecalculator, logger *zap.Logger, window, timeout time.Duration) *IntegrityJob {
	return &IntegrityJob{
		recalculator: recalculator,
		logger:       logger,
		window:       window,
		timeout:      timeout,
	}
}

// Run executes the integrity sweep. Called by the scheduler.
func (j *IntegrityJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	since := start.Add(-j.window)

	checked, corrected, err := j.recalculator.RecalculateUpdatedSince(ctx, since)
	if err != nil {
		j.logger.Error("financial integrity job failed",
			zap.Error(err),
			zap.Int("checked", checked),
			zap.Int("corrected", corrected),
			zap.Duration("duration", time.Since(start)))
		return
	}

	if corrected > 0 {
		j.logger.Warn("financial integrity job corrected cached figures",
			zap.Int("checked", checked),
			zap.Int("corrected", corrected),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("financial integrity job completed",
		zap.Int("checked", checked),
		zap.Duration("duration", time.Since(start)))
}
