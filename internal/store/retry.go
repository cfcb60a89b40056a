package store

import (
	"context"
	"errors"
	"time"

	"github.com/kwame-owusu/staybay/internal/observability"
)

// DefaultMaxAttempts is the retry budget the transactional services use
// unless configured otherwise.
const DefaultMaxAttempts = 5

// WithRetry re-runs fn while it fails with ErrConflict, up to maxAttempts,
// doubling a small backoff between attempts. Any other error is returned
// immediately; once the budget is exhausted the last conflict is surfaced.
func WithRetry(ctx context.Context, maxAttempts int, fn func(ctx context.Context) error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	backoff := 20 * time.Millisecond
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil || !errors.Is(err, ErrConflict) {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		observability.ObserveTxnRetry()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
