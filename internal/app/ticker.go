package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// RefreshTicker drives the scheduled mood recompute in serve mode. In
// one-shot mode the workflow scheduler plays this role instead.
type RefreshTicker struct {
	svc      *Service
	clock    clockwork.Clock
	interval time.Duration
}

func NewRefreshTicker(svc *Service, clock clockwork.Clock, interval time.Duration) *RefreshTicker {
	return &RefreshTicker{svc: svc, clock: clock, interval: interval}
}

// Run blocks until ctx is cancelled, refreshing once per interval.
func (t *RefreshTicker) Run(ctx context.Context) {
	ticker := t.clock.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if _, err := t.svc.Refresh(ctx); err != nil {
				slog.Error("Scheduled refresh failed", "error", err)
			}
		}
	}
}

// CooldownResolver polls for an ecstatic override that has outlived its
// window and lands it. Polling keeps resolution correct across restarts:
// the due time lives in the document, not in a process-local timer.
type CooldownResolver struct {
	svc      *Service
	clock    clockwork.Clock
	window   time.Duration
	interval time.Duration
}

func NewCooldownResolver(svc *Service, clock clockwork.Clock, window, interval time.Duration) *CooldownResolver {
	return &CooldownResolver{svc: svc, clock: clock, window: window, interval: interval}
}

// Run blocks until ctx is cancelled.
func (r *CooldownResolver) Run(ctx context.Context) {
	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if _, err := r.svc.ResolveDueCooldown(ctx, r.window); err != nil {
				slog.Error("Cooldown resolution failed", "error", err)
			}
		}
	}
}
