// Package handlers provides HTTP handlers for page and navigation endpoints
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumenworks/galleria-go/internal/application/services"
	"github.com/lumenworks/galleria-go/internal/domain/navigation"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/performance"
	"github.com/lumenworks/galleria-go/internal/presentation/http/middleware"
)

// Static client-facing error bodies. Detailed errors carry upstream URLs and
// transport detail, so they go to the server logs only.
const (
	loadFailureMessage    = "failed to load content"
	contentNotFoundBody   = "content not found"
	invalidRequestMessage = "invalid request body"
)

// NavigateRequest represents a client-driven route transition
type NavigateRequest struct {
	Fragment string `json:"fragment" binding:"required"`
	Force    bool   `json:"force"`
}

// PageHandlers contains all page-related HTTP handlers
type PageHandlers struct {
	pageService *services.PageService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewPageHandlers creates page handlers with injected dependencies
func NewPageHandlers(pageService *services.PageService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *PageHandlers {
	return &PageHandlers{
		pageService: pageService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// routeParam validates the :route path parameter.
func routeParam(c *gin.Context) (navigation.Route, bool) {
	name := c.Param("route")
	if !navigation.Valid(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown route: " + name})
		return "", false
	}
	return navigation.Route(name), true
}

// GetPage returns the full page view (payload and rendered fragment) for a route
func (h *PageHandlers) GetPage(c *gin.Context) {
	start := time.Now()
	route, ok := routeParam(c)
	if !ok {
		return
	}

	marker := h.perfTracker.StartOperation("get_page_request")
	defer marker.Complete()

	force := c.Query("force") == "true"
	view, err := h.pageService.View(c.Request.Context(), route, force)
	if err != nil {
		marker.SetError(err)
		h.logger.Content().Error("Page load failed", "route", route, "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": loadFailureMessage})
		return
	}

	h.logger.Content().Info("Page request completed",
		"route", route, "fromCache", view.FromCache, "duration", time.Since(start))

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, view)
}

// GetPageFragment returns only the rendered HTML fragment for a route
func (h *PageHandlers) GetPageFragment(c *gin.Context) {
	route, ok := routeParam(c)
	if !ok {
		return
	}

	marker := h.perfTracker.StartOperation("get_page_fragment_request")
	defer marker.Complete()

	view, err := h.pageService.View(c.Request.Context(), route, false)
	if err != nil {
		marker.SetError(err)
		h.logger.Content().Error("Page fragment load failed", "route", route, "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": loadFailureMessage})
		return
	}

	marker.SetSuccess(true)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, view.HTML)
}

// PostNavigate performs a session-scoped navigation from a location fragment
func (h *PageHandlers) PostNavigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestMessage})
		return
	}

	sessionID := middleware.GetSessionID(c)
	marker := h.perfTracker.StartOperation("navigate_request")
	defer marker.Complete()

	view, err := h.pageService.Navigate(c.Request.Context(), sessionID, req.Fragment, req.Force)
	if err != nil {
		marker.SetError(err)
		if errors.Is(err, services.ErrNavigationSuperseded) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Router().Error("Navigation load failed", "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": loadFailureMessage})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, view)
}

// GetNav returns the navigation chrome for the session's current route
func (h *PageHandlers) GetNav(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, h.pageService.Nav(sessionID))
}

// DeleteSession releases a viewer session's navigation state
func (h *PageHandlers) DeleteSession(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	h.pageService.EndSession(sessionID)
	c.Status(http.StatusNoContent)
}
