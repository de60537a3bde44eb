package service

import (
	"context"
	"log/slog"
	"time"
)

// RoleCacheWarmer periodically reloads every role into the role cache so
// guard lookups rarely reach the database.
type RoleCacheWarmer struct {
	Roles    *RolesService
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewRoleCacheWarmer creates a warmer with the given interval.
// If interval is 0 or negative, it defaults to half the role cache TTL.
func NewRoleCacheWarmer(roles *RolesService, logger *slog.Logger, interval time.Duration) *RoleCacheWarmer {
	if interval <= 0 {
		interval = roles.ttl() / 2
	}

	return &RoleCacheWarmer{
		Roles:    roles,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop() to shut it down.
func (w *RoleCacheWarmer) Start() {
	go w.run()
	w.Logger.Info("role cache warmer started", "interval", w.Interval)
}

// Stop blocks until any in-progress refresh has finished.
func (w *RoleCacheWarmer) Stop() {
	close(w.stopCh)
	<-w.doneCh
	w.Logger.Info("role cache warmer stopped")
}

func (w *RoleCacheWarmer) run() {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	w.refresh()

	for {
		select {
		case <-ticker.C:
			w.refresh()
		case <-w.stopCh:
			return
		}
	}
}

func (w *RoleCacheWarmer) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n, err := w.Roles.Warm(ctx)
	if err != nil {
		w.Logger.Error("failed to warm role cache", "error", err)
		return
	}
	w.Logger.Debug("role cache warmed", "roles", n)
}
