package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// QuoteExpiryJobName is the name of the quote expiry job
const QuoteExpiryJobName = "quote_expiry"

// QuoteExpirer cancels pending quotes whose validity date has passed.
// The interface keeps the job decoupled from the service package.
type QuoteExpirer interface {
	ExpireQuotes(ctx context.Context, now time.Time) (int, error)
}

// QuoteExpiryJob sweeps pending quotes past their valid-until date into
// the cancelled state.
type QuoteExpiryJob struct {
	expirer QuoteExpirer
	logger  *zap.Logger
	timeout time.Duration
}

// NewQuoteExpiryJob creates a new quote expiry job.
func NewQuoteExpiryJob(expirer QuoteExpirer, logger *zap.Logger, timeout time.Duration) *QuoteExpiryJob {
	return &QuoteExpiryJob{
		expirer: expirer,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes the quote expiry sweep. Called by the scheduler.
func (j *QuoteExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	expired, err := j.expirer.ExpireQuotes(ctx, start)
	if err != nil {
		j.logger.Error("quote expiry job failed",
			zap.Error(err),
			zap.Int("expired_before_failure", expired),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("quote expiry job completed",
		zap.Int("expired", expired),
		zap.Duration("duration", time.Since(start)))
}
