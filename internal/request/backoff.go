package request

import (
	"context"
	"time"
)

const (
	// DefaultTimeout bounds each physical attempt.
	DefaultTimeout = 5 * time.Second

	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries = 2

	baseRetryDelay = time.Second
)

// retryDelay returns the wait after a transport failure on the given attempt
// index: 1s after the initial attempt, 2s after the first retry.
func retryDelay(attemptIndex int) time.Duration {
	if attemptIndex < 0 {
		attemptIndex = 0
	}
	return baseRetryDelay << attemptIndex
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
