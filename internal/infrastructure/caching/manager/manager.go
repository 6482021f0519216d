// Package manager coordinates the route, fragment, and settings caches.
package manager

import (
	"github.com/lumenworks/galleria-go/internal/domain/navigation"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/stores"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/types"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
)

// Manager is the single cache facade handed to services. It keeps the route
// payload cache, the rendered fragment cache, and the durable settings store
// consistent with each other: any payload change drops that route's
// fragments.
type Manager struct {
	Routes    *stores.RouteStore
	Fragments *stores.FragmentStore
	Settings  *stores.SettingsStore

	logger *logging.ChanneledLogger
}

// NewManager wires the three stores into one facade.
func NewManager(routes *stores.RouteStore, fragments *stores.FragmentStore, settings *stores.SettingsStore, logger *logging.ChanneledLogger) *Manager {
	return &Manager{
		Routes:    routes,
		Fragments: fragments,
		Settings:  settings,
		logger:    logger,
	}
}

// Lookup atomically returns an unexpired payload for a route.
func (m *Manager) Lookup(route navigation.Route) (any, bool) {
	return m.Routes.Lookup(route)
}

// Has reports whether an unexpired payload exists for a route.
func (m *Manager) Has(route navigation.Route) bool {
	return m.Routes.Has(route)
}

// SetPayload stores a validated payload and invalidates derived fragments.
func (m *Manager) SetPayload(route navigation.Route, payload any, raw []byte) {
	m.Routes.Set(route, payload, raw)
	m.Fragments.InvalidateRoute(route)
}

// InvalidateRoute drops one route's payload and fragments.
func (m *Manager) InvalidateRoute(route navigation.Route) {
	m.Routes.Clear(route)
	m.Fragments.InvalidateRoute(route)
	if m.logger != nil {
		m.logger.Cache().Info("Route cache invalidated", "route", route)
	}
}

// InvalidateAll drops every payload and fragment. Settings are untouched.
func (m *Manager) InvalidateAll() {
	m.Routes.ClearAll()
	m.Fragments.InvalidateAll()
	if m.logger != nil {
		m.logger.Cache().Info("All route caches invalidated")
	}
}

// Stats returns route cache occupancy for the admin surface.
func (m *Manager) Stats() types.CacheStats {
	return m.Routes.Stats()
}
