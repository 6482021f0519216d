// Package types defines shared cache data structures
package types

import (
	"time"

	"github.com/lumenworks/galleria-go/internal/domain/navigation"
)

// CacheEntry holds one route's validated payload together with the
// bookkeeping that drives LRU eviction (LastUsed) and TTL expiry (LastLoaded).
type CacheEntry struct {
	Route      navigation.Route
	Raw        []byte // serialized payload, the unit of size accounting
	Payload    any    // typed payload decoded from Raw
	Size       int64
	LastUsed   time.Time
	LastLoaded time.Time
}

// Expired reports whether the entry's age since last load exceeds maxAge.
func (e *CacheEntry) Expired(now time.Time, maxAge time.Duration) bool {
	return now.Sub(e.LastLoaded) > maxAge
}

// CacheStats summarizes route cache occupancy for the admin surface.
type CacheStats struct {
	Entries    int                `json:"entries"`
	TotalBytes int64              `json:"totalBytes"`
	MaxBytes   int64              `json:"maxBytes"`
	Routes     []RouteCacheStatus `json:"routes"`
}

// RouteCacheStatus is one route's cache line in CacheStats.
type RouteCacheStatus struct {
	Route      navigation.Route `json:"route"`
	Size       int64            `json:"size"`
	LastUsed   time.Time        `json:"lastUsed"`
	LastLoaded time.Time        `json:"lastLoaded"`
}
