// Package cleanup provides the background cache expiry worker.
package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/manager"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
)

// Worker sweeps expired route payloads and fragments on a fixed interval.
type Worker struct {
	cache    *manager.Manager
	config   *Config
	logger   *logging.ChanneledLogger
	reporter *Reporter
}

// NewWorker creates a cleanup worker with injected configuration.
func NewWorker(cache *manager.Manager, config *Config, logger *logging.ChanneledLogger) *Worker {
	return &Worker{
		cache:    cache,
		config:   config,
		logger:   logger,
		reporter: NewReporter(),
	}
}

// Start runs the cleanup loop until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.CleanupInterval)
	defer ticker.Stop()

	w.logger.Cache().Info("Cache cleanup worker started", "interval", w.config.CleanupInterval, "verbose", w.config.VerboseReporting)

	for {
		select {
		case <-ctx.Done():
			w.logger.Cache().Info("Cache cleanup worker stopping")
			return
		case <-ticker.C:
			w.performCleanup()
		}
	}
}

// performCleanup executes one sweep across both caches.
func (w *Worker) performCleanup() {
	start := time.Now()

	expiredPayloads := w.cache.Routes.SweepExpired()
	expiredFragments := w.cache.Fragments.SweepExpired()
	total := expiredPayloads + expiredFragments

	duration := time.Since(start)
	if total > 0 {
		w.logger.Cache().Info("Cache cleanup finished",
			"expiredPayloads", expiredPayloads,
			"expiredFragments", expiredFragments,
			"duration", duration)
	}

	if w.config.VerboseReporting {
		fmt.Print(w.reporter.GenerateSweepReport(w.cache.Stats(), expiredPayloads, expiredFragments, duration))
	}
}
