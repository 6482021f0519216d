// Package upstream loads route payloads from the content origin with retry,
// cache-busting, and validation before anything reaches the route cache.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/lumenworks/galleria-go/internal/domain/content"
	"github.com/lumenworks/galleria-go/internal/domain/navigation"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/manager"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/performance"
	"github.com/lumenworks/galleria-go/pkg/config"
)

// Prefetcher receives freshly loaded payloads so media referenced by them can
// be warmed in the background. Only genuine network loads trigger it; cache
// hits never do.
type Prefetcher interface {
	PrefetchPayload(payload any)
}

// Result carries a loaded payload and whether it was served from cache.
type Result struct {
	Payload   any
	FromCache bool
}

// Loader fetches route JSON from the upstream origin. Concurrent loads for
// the same route share one fetch.
type Loader struct {
	client     *http.Client
	baseURL    string
	version    string
	attempts   int
	backoff    time.Duration
	cache      *manager.Manager
	prefetcher Prefetcher
	logger     *logging.ChanneledLogger
	perf       *performance.Tracker

	mu       sync.Mutex
	inflight map[navigation.Route]*call
}

type call struct {
	done    chan struct{}
	payload any
	err     error
}

// NewLoader creates a loader wired to the route cache. The prefetcher may be
// nil; payload media is then not warmed.
func NewLoader(cache *manager.Manager, prefetcher Prefetcher, logger *logging.ChanneledLogger, perf *performance.Tracker) *Loader {
	return &Loader{
		client:     &http.Client{Timeout: config.UpstreamTimeout},
		baseURL:    config.UpstreamBaseURL,
		version:    config.ContentVersion,
		attempts:   config.LoadRetryAttempts,
		backoff:    config.LoadRetryBackoff,
		cache:      cache,
		prefetcher: prefetcher,
		logger:     logger,
		perf:       perf,
		inflight:   make(map[navigation.Route]*call),
	}
}

// LoadRoute returns the validated payload for a route. Cached payloads are
// returned without touching the network. A force reload bypasses the cache,
// but only for routes that permit reloading; for all others force is ignored.
func (l *Loader) LoadRoute(ctx context.Context, route navigation.Route, force bool) (Result, error) {
	info, ok := navigation.Info(route)
	if !ok {
		return Result{}, fmt.Errorf("unknown route: %s", route)
	}

	if force && !info.AllowsReload {
		l.logger.Upstream().Debug("Force reload not permitted, serving cached payload", "route", route)
		force = false
	}

	// Forcing drops the existing entry up front, so a failed reload cannot
	// keep serving the stale payload for the rest of its TTL.
	if force {
		l.cache.InvalidateRoute(route)
	}

	if !force {
		if payload, hit := l.cache.Lookup(route); hit {
			return Result{Payload: payload, FromCache: true}, nil
		}
	}

	payload, err := l.load(ctx, route, info, force)
	if err != nil {
		return Result{}, err
	}
	return Result{Payload: payload}, nil
}

// load joins an in-flight fetch for the route or starts a new one.
func (l *Loader) load(ctx context.Context, route navigation.Route, info navigation.RouteInfo, force bool) (any, error) {
	l.mu.Lock()
	if c, ok := l.inflight[route]; ok {
		l.mu.Unlock()
		select {
		case <-c.done:
			return c.payload, c.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c := &call{done: make(chan struct{})}
	l.inflight[route] = c
	l.mu.Unlock()

	c.payload, c.err = l.fetchAndStore(ctx, route, info, force)
	close(c.done)

	l.mu.Lock()
	delete(l.inflight, route)
	l.mu.Unlock()

	return c.payload, c.err
}

func (l *Loader) fetchAndStore(ctx context.Context, route navigation.Route, info navigation.RouteInfo, force bool) (any, error) {
	marker := l.perf.StartOperation("upstream:load:" + string(route))
	defer l.perf.CompleteOperation(marker)

	raw, body, err := l.fetchWithRetry(ctx, info, force)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	validator := content.NewValidator()
	payload := validator.Validate(route, raw)
	for _, problem := range validator.Errors() {
		l.logger.Upstream().Warn("Payload field rejected", "route", route, "problem", problem)
	}
	if payload == nil {
		err := fmt.Errorf("payload for route %s failed validation", route)
		marker.SetError(err)
		return nil, err
	}

	l.cache.SetPayload(route, payload, body)

	if l.prefetcher != nil {
		go l.prefetcher.PrefetchPayload(payload)
	}

	return payload, nil
}

// fetchWithRetry performs the upstream GET with linear backoff between
// attempts. Context cancellation aborts immediately without further retries.
func (l *Loader) fetchWithRetry(ctx context.Context, info navigation.RouteInfo, force bool) (any, []byte, error) {
	var lastErr error

	for attempt := 1; attempt <= l.attempts; attempt++ {
		raw, body, err := l.fetchOnce(ctx, info, force)
		if err == nil {
			return raw, body, nil
		}
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}

		lastErr = err
		l.logger.Upstream().Warn("Upstream fetch failed",
			"path", info.Path, "attempt", attempt, "maxAttempts", l.attempts, "error", err.Error())

		if attempt < l.attempts {
			wait := time.Duration(attempt) * l.backoff
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			}
		}
	}

	return nil, nil, fmt.Errorf("upstream fetch exhausted %d attempts: %w", l.attempts, lastErr)
}

func (l *Loader) fetchOnce(ctx context.Context, info navigation.RouteInfo, force bool) (any, []byte, error) {
	url := fmt.Sprintf("%s/%s?v=%s", l.baseURL, info.Path, l.version)
	if force {
		url += "&t=" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		return nil, nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return nil, nil, fmt.Errorf("unexpected content type %q", resp.Header.Get("Content-Type"))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read body: %w", err)
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, nil, fmt.Errorf("invalid JSON payload: %w", err)
	}

	return raw, body, nil
}
