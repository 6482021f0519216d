// Package handlers provides HTTP handlers for admin cache operations
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenworks/galleria-go/internal/application/services"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/performance"
)

// AdminHandlers contains admin cache and status HTTP handlers
type AdminHandlers struct {
	cacheAdmin  *services.CacheAdminService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAdminHandlers creates admin handlers with injected dependencies
func NewAdminHandlers(cacheAdmin *services.CacheAdminService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AdminHandlers {
	return &AdminHandlers{
		cacheAdmin:  cacheAdmin,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetCacheStatus reports route cache statistics
func (h *AdminHandlers) GetCacheStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.cacheAdmin.Stats())
}

// GetPerformanceStats reports overall tracker statistics
func (h *AdminHandlers) GetPerformanceStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.perfTracker.GetOverallStats())
}

// PostInvalidateRoute drops one route from the cache
func (h *AdminHandlers) PostInvalidateRoute(c *gin.Context) {
	route, ok := routeParam(c)
	if !ok {
		return
	}
	if err := h.cacheAdmin.InvalidateRoute(route); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// PostInvalidateAll drops the entire cache
func (h *AdminHandlers) PostInvalidateAll(c *gin.Context) {
	h.cacheAdmin.InvalidateAll()
	c.Status(http.StatusNoContent)
}

// PostReloadRoute refreshes one route from upstream
func (h *AdminHandlers) PostReloadRoute(c *gin.Context) {
	route, ok := routeParam(c)
	if !ok {
		return
	}
	if err := h.cacheAdmin.Reload(c.Request.Context(), route); err != nil {
		h.logger.Cache().Error("Route reload failed", "route", route, "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": loadFailureMessage})
		return
	}
	c.Status(http.StatusNoContent)
}
