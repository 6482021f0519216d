// Package handlers provides the health endpoint
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/manager"
	"github.com/lumenworks/galleria-go/internal/infrastructure/persistence/database"
)

// HealthHandlers contains liveness and readiness handlers
type HealthHandlers struct {
	cache   *manager.Manager
	db      *database.DB
	started time.Time
}

// NewHealthHandlers creates health handlers with injected dependencies
func NewHealthHandlers(cache *manager.Manager, db *database.DB) *HealthHandlers {
	return &HealthHandlers{
		cache:   cache,
		db:      db,
		started: time.Now(),
	}
}

// GetHealth reports process health, cache shape, and database reachability
func (h *HealthHandlers) GetHealth(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	if err := h.db.Ping(); err != nil {
		status = "degraded"
		dbStatus = err.Error()
	}

	stats := h.cache.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"uptime":   time.Since(h.started).String(),
		"database": dbStatus,
		"cache": gin.H{
			"entries":    stats.Entries,
			"totalBytes": stats.TotalBytes,
			"maxBytes":   stats.MaxBytes,
		},
	})
}
