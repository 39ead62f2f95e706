package session

import (
	"context"
	"time"
)

// DefaultCheckInterval is how often the watcher re-consults the guard
// while the application is active.
const DefaultCheckInterval = 5 * time.Minute

// Watcher polls the guard on a fixed interval so expiry and the
// near-expiry warning surface even without user interaction. The
// ticker stops when ctx is cancelled, so a torn-down owner can never
// be fired against.
type Watcher struct {
	guard    *Guard
	interval time.Duration

	// OnWarn fires when the token is valid but inside the warning
	// window. OnInvalidate fires when a poll tore the session down.
	OnWarn       func(remaining time.Duration)
	OnInvalidate func()
}

// NewWatcher builds a watcher with the default 5-minute interval.
func NewWatcher(guard *Guard, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Watcher{guard: guard, interval: interval}
}

// Run blocks, polling until ctx is cancelled. An immediate first check
// runs before the first tick.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *Watcher) check() {
	if w.guard.CheckAndHandle() {
		if w.OnInvalidate != nil {
			w.OnInvalidate()
		}
		return
	}

	token := w.guard.Token()
	if token == "" {
		return
	}
	if ShouldWarn(token) && w.OnWarn != nil {
		w.OnWarn(TimeUntilExpiry(token))
	}
}
