// Package stores provides concrete cache store implementations
package stores

import (
	"sort"
	"sync"
	"time"

	"github.com/lumenworks/galleria-go/internal/domain/navigation"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/types"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
)

// BackingStore is the session-scoped persistence layer behind the route
// cache. Implementations surface write failures (quota) so the store can
// evict and retry; read-side problems are reported as simple misses.
type BackingStore interface {
	Load(route navigation.Route) (raw []byte, lastUsed, lastLoaded time.Time, ok bool)
	Save(route navigation.Route, raw []byte, lastUsed, lastLoaded time.Time) error
	Delete(route navigation.Route)
	Clear()
}

// PayloadDecoder turns persisted raw bytes back into a route's typed payload.
// A false return means the persisted row is unusable and must be treated as a
// cache miss.
type PayloadDecoder interface {
	Decode(route navigation.Route, raw []byte) (any, bool)
}

// RouteStore caches one validated payload per route under a total byte
// budget, evicting least-recently-used entries. Every entry is mirrored to a
// session-scoped backing store; persistence failures silently degrade the
// store to memory-only operation, never surfacing to callers.
type RouteStore struct {
	mu      sync.Mutex
	entries map[navigation.Route]*types.CacheEntry
	bytes   int64

	maxBytes int64
	maxAge   time.Duration

	backing BackingStore
	decoder PayloadDecoder
	logger  *logging.ChanneledLogger

	now func() time.Time
}

// NewRouteStore creates a route cache. backing and decoder may be nil, in
// which case the store runs memory-only.
func NewRouteStore(maxBytes int64, maxAge time.Duration, backing BackingStore, decoder PayloadDecoder, logger *logging.ChanneledLogger) *RouteStore {
	return &RouteStore{
		entries:  make(map[navigation.Route]*types.CacheEntry),
		maxBytes: maxBytes,
		maxAge:   maxAge,
		backing:  backing,
		decoder:  decoder,
		logger:   logger,
		now:      time.Now,
	}
}

// Lookup is the atomic check-and-read: it returns the payload only when an
// entry exists and is unexpired, evicting it otherwise. Loader code must use
// Lookup rather than a Has/Get pair so that expiry between the check and the
// read cannot skew cache-hit accounting.
func (rs *RouteStore) Lookup(route navigation.Route) (any, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	entry, ok := rs.lookupLocked(route)
	if !ok {
		return nil, false
	}
	return entry.Payload, true
}

// Get returns the cached payload for a route, restoring from the backing
// store when memory has no entry. Expiry is not checked here; callers that
// need freshness use Lookup or Has.
func (rs *RouteStore) Get(route navigation.Route) any {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	entry := rs.getLocked(route)
	if entry == nil {
		return nil
	}
	entry.LastUsed = rs.now().UTC()
	return entry.Payload
}

// Has reports whether an unexpired entry exists for the route. Expired
// entries are evicted as a side effect.
func (rs *RouteStore) Has(route navigation.Route) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	_, ok := rs.lookupLocked(route)
	return ok
}

// Set stores a payload for a route, evicting least-recently-used other
// routes until the entry fits the byte budget. The route being written is
// never evicted to make room for itself.
func (rs *RouteStore) Set(route navigation.Route, payload any, raw []byte) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	now := rs.now().UTC()
	size := int64(len(raw))

	// Replace bookkeeping first so the old entry's bytes are not counted
	// against the new entry's headroom.
	if old, exists := rs.entries[route]; exists {
		rs.bytes -= old.Size
		delete(rs.entries, route)
	}

	rs.evictForLocked(route, size)

	entry := &types.CacheEntry{
		Route:      route,
		Raw:        raw,
		Payload:    payload,
		Size:       size,
		LastUsed:   now,
		LastLoaded: now,
	}
	rs.entries[route] = entry
	rs.bytes += size

	if rs.bytes > rs.maxBytes && rs.logger != nil {
		rs.logger.Cache().Warn("Route cache over budget after eviction", "route", route, "totalBytes", rs.bytes, "maxBytes", rs.maxBytes)
	}

	rs.persistLocked(entry)
}

// Clear removes one route's entry.
func (rs *RouteStore) Clear(route navigation.Route) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.removeLocked(route)
}

// ClearAll removes every entry.
func (rs *RouteStore) ClearAll() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.entries = make(map[navigation.Route]*types.CacheEntry)
	rs.bytes = 0
	if rs.backing != nil {
		rs.backing.Clear()
	}
}

// SweepExpired evicts every expired entry and returns how many were removed.
// Called by the background cleanup worker.
func (rs *RouteStore) SweepExpired() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	now := rs.now().UTC()
	removed := 0
	for route, entry := range rs.entries {
		if entry.Expired(now, rs.maxAge) {
			rs.removeLocked(route)
			removed++
		}
	}
	return removed
}

// Stats returns a snapshot of cache occupancy.
func (rs *RouteStore) Stats() types.CacheStats {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	stats := types.CacheStats{
		Entries:    len(rs.entries),
		TotalBytes: rs.bytes,
		MaxBytes:   rs.maxBytes,
		Routes:     make([]types.RouteCacheStatus, 0, len(rs.entries)),
	}
	for _, entry := range rs.entries {
		stats.Routes = append(stats.Routes, types.RouteCacheStatus{
			Route:      entry.Route,
			Size:       entry.Size,
			LastUsed:   entry.LastUsed,
			LastLoaded: entry.LastLoaded,
		})
	}
	sort.Slice(stats.Routes, func(i, j int) bool {
		return stats.Routes[i].Route < stats.Routes[j].Route
	})
	return stats
}

// lookupLocked returns an unexpired entry, evicting it when stale.
func (rs *RouteStore) lookupLocked(route navigation.Route) (*types.CacheEntry, bool) {
	entry := rs.getLocked(route)
	if entry == nil {
		return nil, false
	}

	now := rs.now().UTC()
	if entry.Expired(now, rs.maxAge) {
		rs.removeLocked(route)
		return nil, false
	}

	entry.LastUsed = now
	return entry, true
}

// getLocked returns the in-memory entry, falling back to the backing store.
// Restored entries are mirrored into memory; a missing or undecodable row is
// just a miss.
func (rs *RouteStore) getLocked(route navigation.Route) *types.CacheEntry {
	if entry, exists := rs.entries[route]; exists {
		return entry
	}

	if rs.backing == nil || rs.decoder == nil {
		return nil
	}

	raw, _, _, ok := rs.backing.Load(route)
	if !ok {
		return nil
	}

	payload, ok := rs.decoder.Decode(route, raw)
	if !ok {
		if rs.logger != nil {
			rs.logger.Cache().Warn("Persisted cache row undecodable, dropping", "route", route)
		}
		rs.backing.Delete(route)
		return nil
	}

	// A restoration hit counts as a fresh use and a fresh load: both
	// timestamps restart so the restored entry gets a full TTL.
	now := rs.now().UTC()
	entry := &types.CacheEntry{
		Route:      route,
		Raw:        raw,
		Payload:    payload,
		Size:       int64(len(raw)),
		LastUsed:   now,
		LastLoaded: now,
	}

	rs.evictForLocked(route, entry.Size)
	rs.entries[route] = entry
	rs.bytes += entry.Size

	if rs.logger != nil {
		rs.logger.Cache().Debug("Restored route payload from backing store", "route", route, "size", entry.Size)
	}
	return entry
}

// evictForLocked frees headroom for an incoming entry of the given size,
// removing least-recently-used entries other than the protected route.
// Eviction must complete before the new entry is counted against the budget.
func (rs *RouteStore) evictForLocked(protected navigation.Route, incoming int64) {
	if rs.bytes+incoming <= rs.maxBytes {
		return
	}

	for _, victim := range rs.evictionOrderLocked(protected) {
		rs.removeLocked(victim)
		if rs.logger != nil {
			rs.logger.Cache().Info("Evicted route payload for headroom", "route", victim, "protected", protected)
		}
		if rs.bytes+incoming <= rs.maxBytes {
			return
		}
	}
}

// evictionOrderLocked lists evictable routes oldest-LastUsed first; ties
// break by route name so the order is deterministic.
func (rs *RouteStore) evictionOrderLocked(protected navigation.Route) []navigation.Route {
	candidates := make([]*types.CacheEntry, 0, len(rs.entries))
	for route, entry := range rs.entries {
		if route == protected {
			continue
		}
		candidates = append(candidates, entry)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].LastUsed.Equal(candidates[j].LastUsed) {
			return candidates[i].Route < candidates[j].Route
		}
		return candidates[i].LastUsed.Before(candidates[j].LastUsed)
	})

	order := make([]navigation.Route, len(candidates))
	for i, entry := range candidates {
		order[i] = entry.Route
	}
	return order
}

func (rs *RouteStore) removeLocked(route navigation.Route) {
	if entry, exists := rs.entries[route]; exists {
		rs.bytes -= entry.Size
		delete(rs.entries, route)
	}
	if rs.backing != nil {
		rs.backing.Delete(route)
	}
}

// persistLocked mirrors an entry to the backing store. On failure it evicts
// one more LRU round and retries once, then gives up: the in-memory entry
// stays authoritative either way.
func (rs *RouteStore) persistLocked(entry *types.CacheEntry) {
	if rs.backing == nil {
		return
	}

	err := rs.backing.Save(entry.Route, entry.Raw, entry.LastUsed, entry.LastLoaded)
	if err == nil {
		return
	}

	if rs.logger != nil {
		rs.logger.Cache().Warn("Backing store write failed, evicting and retrying", "route", entry.Route, "error", err.Error())
	}

	if order := rs.evictionOrderLocked(entry.Route); len(order) > 0 {
		rs.removeLocked(order[0])
	}

	if err := rs.backing.Save(entry.Route, entry.Raw, entry.LastUsed, entry.LastLoaded); err != nil {
		if rs.logger != nil {
			rs.logger.Cache().Warn("Backing store write failed again, continuing memory-only", "route", entry.Route, "error", err.Error())
		}
	}
}
