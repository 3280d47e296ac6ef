package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/framelist/internal/objlist"
	"github.com/five82/framelist/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// runPoller refreshes the store at a fixed cadence until ctx is cancelled.
// Consecutive failures stretch the wait exponentially.
func runPoller(ctx context.Context, store *state.Store, backend objlist.Backend, session objlist.Session, interval time.Duration, logger *slog.Logger) error {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
		refresh(ctx, store, backend, session, logger)
		timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
	}
}

func refresh(ctx context.Context, store *state.Store, backend objlist.Backend, session objlist.Session, logger *slog.Logger) {
	ticket := store.Begin()
	states, err := backend.Fetch(ctx, session, ticket.Frame)
	if ctx.Err() != nil {
		return
	}
	if !store.Apply(ticket, states, err) {
		logger.Debug("dropped stale poll result", "seq", ticket.Seq, "frame", ticket.Frame)
		return
	}
	if err != nil {
		logger.Warn("frame poll failed", "frame", ticket.Frame, "error", err)
	}
}

// calculateBackoff doubles base for every consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
