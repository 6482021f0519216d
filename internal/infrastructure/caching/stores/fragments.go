package stores

import (
	"sync"
	"time"

	"github.com/lumenworks/galleria-go/internal/domain/navigation"
)

// fragmentChunk is one rendered HTML fragment with its render time.
type fragmentChunk struct {
	html     string
	rendered time.Time
}

// FragmentStore caches rendered page fragments keyed by route and variant
// (page, carousel window, grid chunk). Fragments derive entirely from the
// route's payload, so setting or clearing a route payload invalidates all of
// that route's fragments.
type FragmentStore struct {
	mu     sync.RWMutex
	chunks map[navigation.Route]map[string]*fragmentChunk
	maxAge time.Duration
	now    func() time.Time
}

// NewFragmentStore creates a fragment cache with the given TTL.
func NewFragmentStore(maxAge time.Duration) *FragmentStore {
	return &FragmentStore{
		chunks: make(map[navigation.Route]map[string]*fragmentChunk),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Get returns a cached fragment, treating expired chunks as absent.
func (fs *FragmentStore) Get(route navigation.Route, variant string) (string, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	byVariant, exists := fs.chunks[route]
	if !exists {
		return "", false
	}
	chunk, exists := byVariant[variant]
	if !exists {
		return "", false
	}
	if fs.now().Sub(chunk.rendered) > fs.maxAge {
		return "", false
	}
	return chunk.html, true
}

// Set stores a rendered fragment.
func (fs *FragmentStore) Set(route navigation.Route, variant, html string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	byVariant, exists := fs.chunks[route]
	if !exists {
		byVariant = make(map[string]*fragmentChunk)
		fs.chunks[route] = byVariant
	}
	byVariant[variant] = &fragmentChunk{html: html, rendered: fs.now().UTC()}
}

// InvalidateRoute drops every fragment rendered from a route's payload.
func (fs *FragmentStore) InvalidateRoute(route navigation.Route) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.chunks, route)
}

// InvalidateAll drops every cached fragment.
func (fs *FragmentStore) InvalidateAll() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.chunks = make(map[navigation.Route]map[string]*fragmentChunk)
}

// SweepExpired removes expired fragments and returns how many were dropped.
func (fs *FragmentStore) SweepExpired() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	now := fs.now()
	removed := 0
	for route, byVariant := range fs.chunks {
		for variant, chunk := range byVariant {
			if now.Sub(chunk.rendered) > fs.maxAge {
				delete(byVariant, variant)
				removed++
			}
		}
		if len(byVariant) == 0 {
			delete(fs.chunks, route)
		}
	}
	return removed
}
