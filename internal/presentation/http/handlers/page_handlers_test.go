package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/galleria-go/internal/application/services"
	"github.com/lumenworks/galleria-go/internal/domain/navigation"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/manager"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/stores"
	"github.com/lumenworks/galleria-go/internal/infrastructure/messaging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/performance"
	"github.com/lumenworks/galleria-go/internal/infrastructure/upstream"
	"github.com/lumenworks/galleria-go/internal/presentation/http/middleware"
	"github.com/lumenworks/galleria-go/internal/presentation/templates"
	"github.com/lumenworks/galleria-go/pkg/config"
)

// newPageRouter builds a router backed by the real page stack with the
// loader pointed at the given upstream.
func newPageRouter(t *testing.T, upstreamURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prevURL := config.UpstreamBaseURL
	prevAttempts := config.LoadRetryAttempts
	prevBackoff := config.LoadRetryBackoff
	prevTimeout := config.UpstreamTimeout
	config.UpstreamBaseURL = upstreamURL
	config.LoadRetryAttempts = 1
	config.LoadRetryBackoff = time.Millisecond
	config.UpstreamTimeout = 2 * time.Second
	t.Cleanup(func() {
		config.UpstreamBaseURL = prevURL
		config.LoadRetryAttempts = prevAttempts
		config.LoadRetryBackoff = prevBackoff
		config.UpstreamTimeout = prevTimeout
	})

	logger := logging.NewTestLogger()
	perf := performance.NewTracker(nil)
	cache := manager.NewManager(
		stores.NewRouteStore(1<<20, time.Hour, nil, nil, logger),
		stores.NewFragmentStore(time.Hour),
		stores.NewSettingsStore(nil, logger),
		logger,
	)
	loader := upstream.NewLoader(cache, nil, logger, perf)
	svc := services.NewPageService(
		navigation.NewNavigator(),
		loader,
		cache,
		templates.NewRenderer(),
		messaging.NewEventBus(logger),
		logger,
		perf,
	)
	h := NewPageHandlers(svc, logger, perf)

	r := gin.New()
	r.GET("/api/v1/pages/:route", h.GetPage)
	r.POST("/api/v1/navigate", middleware.SessionMiddleware(), h.PostNavigate)
	return r
}

func TestPageHandlers_LoadFailureBodyIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := newPageRouter(t, srv.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pages/main", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), loadFailureMessage)

	// Upstream detail stays in the server logs, never in the response.
	assert.NotContains(t, w.Body.String(), srv.URL)
	assert.NotContains(t, w.Body.String(), "attempts")
}

func TestPageHandlers_NavigateFailureBodyIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := newPageRouter(t, srv.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/navigate",
		strings.NewReader(`{"fragment": "#/collections"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), loadFailureMessage)
	assert.NotContains(t, w.Body.String(), srv.URL)
}

func TestPageHandlers_NavigateRejectsMalformedBody(t *testing.T) {
	r := newPageRouter(t, "http://127.0.0.1:0")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/navigate", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), invalidRequestMessage)
	assert.NotContains(t, w.Body.String(), "unexpected EOF")
}
