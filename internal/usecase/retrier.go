package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/iho/moneymanager/internal/domain"
)

// Retrier retries version-conflict failures with exponential backoff.
// Any other error is permanent. The retry loop is invisible to callers:
// exhaustion surfaces as the last domain.ErrConflict.
type Retrier struct {
	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration
}

// NewRetrier creates a Retrier with the default bounds.
func NewRetrier() *Retrier {
	return &Retrier{
		maxRetries:      maxBalanceRetries,
		initialInterval: 10 * time.Millisecond,
		maxInterval:     250 * time.Millisecond,
	}
}

// Retry executes operation, retrying while it fails with domain.ErrConflict.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !errors.Is(err, domain.ErrConflict) {
			return backoff.Permanent(err)
		}

		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, r.maxRetries), ctx))
}
