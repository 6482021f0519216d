package services

import (
	"context"

	"github.com/lumenworks/galleria-go/internal/domain/navigation"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/manager"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/types"
	"github.com/lumenworks/galleria-go/internal/infrastructure/messaging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/upstream"
)

// CacheAdminService backs the admin cache endpoints: inspect, invalidate,
// and force-refresh.
type CacheAdminService struct {
	cache  *manager.Manager
	loader *upstream.Loader
	bus    messaging.Publisher
	logger *logging.ChanneledLogger
}

func NewCacheAdminService(cache *manager.Manager, loader *upstream.Loader, bus messaging.Publisher, logger *logging.ChanneledLogger) *CacheAdminService {
	return &CacheAdminService{cache: cache, loader: loader, bus: bus, logger: logger}
}

// Stats reports the current cache shape.
func (s *CacheAdminService) Stats() types.CacheStats {
	return s.cache.Stats()
}

// InvalidateRoute drops a single route's cached payload and fragments.
func (s *CacheAdminService) InvalidateRoute(route navigation.Route) error {
	if !navigation.Valid(string(route)) {
		return navigation.ErrUnknownRoute
	}
	s.cache.InvalidateRoute(route)
	s.logger.Cache().Info("Route invalidated by admin", "route", route)
	s.bus.Publish(messaging.Event{
		Topic: messaging.TopicCacheCleared,
		Data:  map[string]any{"route": string(route)},
	})
	return nil
}

// InvalidateAll drops every cached payload and fragment.
func (s *CacheAdminService) InvalidateAll() {
	s.cache.InvalidateAll()
	s.logger.Cache().Info("Cache fully invalidated by admin")
	s.bus.Publish(messaging.Event{Topic: messaging.TopicCacheCleared})
}

// Reload invalidates a route and loads it fresh from upstream, bypassing the
// reload policy that applies to viewer-initiated refreshes.
func (s *CacheAdminService) Reload(ctx context.Context, route navigation.Route) error {
	if !navigation.Valid(string(route)) {
		return navigation.ErrUnknownRoute
	}
	s.cache.InvalidateRoute(route)
	if _, err := s.loader.LoadRoute(ctx, route, false); err != nil {
		return err
	}
	s.logger.Cache().Info("Route reloaded by admin", "route", route)
	return nil
}
