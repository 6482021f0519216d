// Package handlers provides HTTP handlers for widget fragment endpoints
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lumenworks/galleria-go/internal/application/services"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/performance"
)

// FragmentHandlers contains widget fragment HTTP handlers
type FragmentHandlers struct {
	pageService *services.PageService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewFragmentHandlers creates fragment handlers with injected dependencies
func NewFragmentHandlers(pageService *services.PageService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *FragmentHandlers {
	return &FragmentHandlers{
		pageService: pageService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetCarousel returns the carousel fragment for one post of a route
func (h *FragmentHandlers) GetCarousel(c *gin.Context) {
	route, ok := routeParam(c)
	if !ok {
		return
	}
	postID := c.Param("post")
	active, _ := strconv.Atoi(c.DefaultQuery("active", "0"))

	marker := h.perfTracker.StartOperation("fragment:carousel_request")
	defer marker.Complete()

	html, err := h.pageService.CarouselFragment(c.Request.Context(), route, postID, active)
	if err != nil {
		marker.SetError(err)
		h.logger.Content().Warn("Carousel fragment failed", "route", route, "post", postID, "error", err.Error())
		c.JSON(http.StatusNotFound, gin.H{"error": contentNotFoundBody})
		return
	}

	marker.SetSuccess(true)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, html)
}

// GetGrid returns a windowed grid fragment for a route
func (h *FragmentHandlers) GetGrid(c *gin.Context) {
	route, ok := routeParam(c)
	if !ok {
		return
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	count, _ := strconv.Atoi(c.DefaultQuery("count", "0"))

	marker := h.perfTracker.StartOperation("fragment:grid_request")
	defer marker.Complete()

	html, err := h.pageService.GridFragment(c.Request.Context(), route, offset, count)
	if err != nil {
		marker.SetError(err)
		h.logger.Content().Warn("Grid fragment failed", "route", route, "error", err.Error())
		c.JSON(http.StatusNotFound, gin.H{"error": contentNotFoundBody})
		return
	}

	marker.SetSuccess(true)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, html)
}
