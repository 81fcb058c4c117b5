package app

import (
	"context"
	"time"

	"github.com/five82/songmatch/internal/state"
)

const (
	defaultPollInterval = 10 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that reloads the current
// catalogue page at a fixed cadence. Consecutive failures stretch the
// interval. It returns immediately.
func StartPoller(ctx context.Context, cat *Catalogue, store *state.Store, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			cat.Reload()
			timer.Reset(calculateBackoff(store.Snapshot().Catalogue.ConsecutiveFailures, interval))
		}
	}()
}

// calculateBackoff doubles base for each consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 || base >= maxBackoff {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
