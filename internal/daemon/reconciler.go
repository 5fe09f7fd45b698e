package daemon

import (
	"context"
	"log/slog"
	"time"
)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically posts a refresh_workspace event to the loop,
// correcting for windows the OS destroyed without delivering a destroy
// event.
type Reconciler struct {
	interval time.Duration
	loop     *Loop
	refresh  Event
	logger   *slog.Logger
}

// NewReconciler creates a reconciler that posts refresh to loop every
// interval. refresh is typically func() { mgr.RefreshWorkspace() }.
func NewReconciler(cfg ReconcilerConfig, loop *Loop, refresh Event) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{interval: interval, loop: loop, refresh: refresh, logger: logger}
}

// Run starts the reconciliation loop. Blocks until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			if !r.loop.TryPost(r.refresh) {
				r.logger.Debug("reconciler: loop busy, skipping tick")
			}
		}
	}
}
