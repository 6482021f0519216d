// Package services provides startup warming orchestration
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenworks/galleria-go/internal/domain/navigation"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/performance"
	"github.com/lumenworks/galleria-go/internal/infrastructure/upstream"
)

// WarmingService loads every route at startup so first page views are served
// from cache.
type WarmingService struct{}

// NewWarmingService creates a new warming service singleton
func NewWarmingService() *WarmingService {
	return &WarmingService{}
}

// WarmAllRoutes performs startup warming for every known route. The default
// route is warmed first since it is the likeliest first view; failures on
// other routes are logged and skipped, they will lazy-load on demand.
func (ws *WarmingService) WarmAllRoutes(ctx context.Context, loader *upstream.Loader, logger *logging.ChanneledLogger, perf *performance.Tracker) error {
	start := time.Now()
	marker := perf.StartOperation("warming:all_routes")
	defer perf.CompleteOperation(marker)

	routes := warmOrder()
	logger.Startup().Info("Warming route cache", "routes", len(routes))

	var warmed int
	for _, route := range routes {
		if err := ws.warmRoute(ctx, loader, route); err != nil {
			if route == navigation.DefaultRoute {
				marker.SetError(err)
				return fmt.Errorf("failed to warm default route %s: %w", route, err)
			}
			logger.Startup().Warn("Route warming failed, will lazy-load", "route", route, "error", err.Error())
			continue
		}
		warmed++
	}

	marker.AddMetadata("warmed", warmed)
	logger.Startup().Info("Route cache warming complete",
		"warmed", warmed, "total", len(routes), "duration", time.Since(start))
	return nil
}

func (ws *WarmingService) warmRoute(ctx context.Context, loader *upstream.Loader, route navigation.Route) error {
	_, err := loader.LoadRoute(ctx, route, false)
	return err
}

// warmOrder lists all routes with the default route first.
func warmOrder() []navigation.Route {
	ordered := []navigation.Route{navigation.DefaultRoute}
	for _, info := range navigation.AllRoutes() {
		if info.Route != navigation.DefaultRoute {
			ordered = append(ordered, info.Route)
		}
	}
	return ordered
}
