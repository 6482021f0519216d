package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/galleria-go/internal/domain/content"
	"github.com/lumenworks/galleria-go/internal/domain/navigation"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/manager"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/stores"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/performance"
)

type capturingPrefetcher struct {
	payloads chan any
}

func (c *capturingPrefetcher) PrefetchPayload(payload any) {
	c.payloads <- payload
}

func newTestCache() *manager.Manager {
	logger := logging.NewTestLogger()
	return manager.NewManager(
		stores.NewRouteStore(1<<20, time.Hour, nil, nil, logger),
		stores.NewFragmentStore(time.Hour),
		stores.NewSettingsStore(nil, logger),
		logger,
	)
}

func newTestLoader(baseURL string, cache *manager.Manager, prefetcher Prefetcher) *Loader {
	return &Loader{
		client:     &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		version:    "test",
		attempts:   3,
		backoff:    time.Millisecond,
		cache:      cache,
		prefetcher: prefetcher,
		logger:     logging.NewTestLogger(),
		perf:       performance.NewTracker(nil),
		inflight:   make(map[navigation.Route]*call),
	}
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestLoader_LoadAndCache(t *testing.T) {
	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		assert.Equal(t, "/data/videos.json", r.URL.Path)
		assert.Equal(t, "test", r.URL.Query().Get("v"))
		jsonHandler(`{"videos": [{"title": "Tour", "thumbnail": "t.jpg", "url": "tour.mp4"}]}`)(w, r)
	}))
	defer srv.Close()

	cache := newTestCache()
	l := newTestLoader(srv.URL, cache, nil)

	result, err := l.LoadRoute(context.Background(), navigation.RouteVideos, false)
	require.NoError(t, err)
	assert.False(t, result.FromCache)

	payload, ok := result.Payload.(*content.VideosPayload)
	require.True(t, ok)
	require.Len(t, payload.Videos, 1)
	assert.Equal(t, "Tour", payload.Videos[0].Title)

	// Second load is served from cache without touching the network.
	result, err = l.LoadRoute(context.Background(), navigation.RouteVideos, false)
	require.NoError(t, err)
	assert.True(t, result.FromCache)
	assert.Equal(t, int64(1), atomic.LoadInt64(&requests))
}

func TestLoader_RetriesThenSucceeds(t *testing.T) {
	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&requests, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		jsonHandler(`{"entries": []}`)(w, r)
	}))
	defer srv.Close()

	l := newTestLoader(srv.URL, newTestCache(), nil)

	result, err := l.LoadRoute(context.Background(), navigation.RouteHistory, false)
	require.NoError(t, err)
	assert.NotNil(t, result.Payload)
	assert.Equal(t, int64(3), atomic.LoadInt64(&requests))
}

func TestLoader_ExhaustsAttempts(t *testing.T) {
	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	l := newTestLoader(srv.URL, newTestCache(), nil)

	_, err := l.LoadRoute(context.Background(), navigation.RouteHistory, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exhausted 3 attempts")
	assert.Equal(t, int64(3), atomic.LoadInt64(&requests))
}

func TestLoader_RejectsNonJSONContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`{"entries": []}`))
	}))
	defer srv.Close()

	l := newTestLoader(srv.URL, newTestCache(), nil)

	_, err := l.LoadRoute(context.Background(), navigation.RouteHistory, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content type")
}

func TestLoader_ValidationFailureIsLoadFailure(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(`[1, 2, 3]`))
	defer srv.Close()

	cache := newTestCache()
	l := newTestLoader(srv.URL, cache, nil)

	_, err := l.LoadRoute(context.Background(), navigation.RouteHistory, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")
	assert.False(t, cache.Has(navigation.RouteHistory), "a rejected payload must not be cached")
}

func TestLoader_ForceReloadOnlyForReloadableRoutes(t *testing.T) {
	var requests int64
	var sawCacheBuster atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		if r.URL.Query().Get("t") != "" {
			sawCacheBuster.Store(true)
		}
		if strings.Contains(r.URL.Path, "collections") {
			jsonHandler(`{"collections": []}`)(w, r)
			return
		}
		jsonHandler(`{"posts": []}`)(w, r)
	}))
	defer srv.Close()

	cache := newTestCache()
	l := newTestLoader(srv.URL, cache, nil)

	// Prime both routes.
	_, err := l.LoadRoute(context.Background(), navigation.RouteMain, false)
	require.NoError(t, err)
	_, err = l.LoadRoute(context.Background(), navigation.RouteCollections, false)
	require.NoError(t, err)
	require.Equal(t, int64(2), atomic.LoadInt64(&requests))

	// Main does not permit reloads: force is ignored and the cache answers.
	result, err := l.LoadRoute(context.Background(), navigation.RouteMain, true)
	require.NoError(t, err)
	assert.True(t, result.FromCache)
	assert.Equal(t, int64(2), atomic.LoadInt64(&requests))

	// Collections does: force bypasses the cache with a cache-busting param.
	result, err = l.LoadRoute(context.Background(), navigation.RouteCollections, true)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, int64(3), atomic.LoadInt64(&requests))
	assert.True(t, sawCacheBuster.Load())
}

func TestLoader_UnknownRoute(t *testing.T) {
	l := newTestLoader("http://127.0.0.1:0", newTestCache(), nil)

	_, err := l.LoadRoute(context.Background(), navigation.Route("bogus"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown route")
}

func TestLoader_CancelledContextAborts(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(`{"posts": []}`))
	defer srv.Close()

	l := newTestLoader(srv.URL, newTestCache(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.LoadRoute(ctx, navigation.RouteMain, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_PrefetcherReceivesFreshLoadsOnly(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(`{"posts": [{"title": "P", "mainImage": "a.jpg"}]}`))
	defer srv.Close()

	prefetcher := &capturingPrefetcher{payloads: make(chan any, 1)}
	l := newTestLoader(srv.URL, newTestCache(), prefetcher)

	_, err := l.LoadRoute(context.Background(), navigation.RouteMain, false)
	require.NoError(t, err)

	select {
	case payload := <-prefetcher.payloads:
		_, ok := payload.(*content.MainPayload)
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("prefetcher was not invoked for a fresh load")
	}

	_, err = l.LoadRoute(context.Background(), navigation.RouteMain, false)
	require.NoError(t, err)

	select {
	case <-prefetcher.payloads:
		t.Fatal("prefetcher must not fire on a cache hit")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLoader_FailedForceReloadDropsStaleEntry(t *testing.T) {
	var requests int64
	var failing atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		jsonHandler(`{"collections": []}`)(w, r)
	}))
	defer srv.Close()

	cache := newTestCache()
	l := newTestLoader(srv.URL, cache, nil)

	_, err := l.LoadRoute(context.Background(), navigation.RouteCollections, false)
	require.NoError(t, err)
	require.Equal(t, int64(1), atomic.LoadInt64(&requests))

	// A forced reload that fails must not leave the old entry serving.
	failing.Store(true)
	_, err = l.LoadRoute(context.Background(), navigation.RouteCollections, true)
	require.Error(t, err)
	assert.False(t, cache.Has(navigation.RouteCollections))

	// The next plain load goes back to the network instead of the cache.
	failing.Store(false)
	before := atomic.LoadInt64(&requests)
	result, err := l.LoadRoute(context.Background(), navigation.RouteCollections, false)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Greater(t, atomic.LoadInt64(&requests), before)
}

func TestLoader_AcceptsAnySuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNonAuthoritativeInfo)
		w.Write([]byte(`{"entries": []}`))
	}))
	defer srv.Close()

	l := newTestLoader(srv.URL, newTestCache(), nil)

	result, err := l.LoadRoute(context.Background(), navigation.RouteHistory, false)
	require.NoError(t, err)
	assert.NotNil(t, result.Payload)
	assert.False(t, result.FromCache)
}
