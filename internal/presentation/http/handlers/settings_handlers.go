// Package handlers provides HTTP handlers for viewer settings endpoints
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumenworks/galleria-go/internal/application/services"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
)

// SettingRequest is the body for writing a setting
type SettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// SettingsHandlers contains settings HTTP handlers
type SettingsHandlers struct {
	settingsService *services.SettingsService
	logger          *logging.ChanneledLogger
}

// NewSettingsHandlers creates settings handlers with injected dependencies
func NewSettingsHandlers(settingsService *services.SettingsService, logger *logging.ChanneledLogger) *SettingsHandlers {
	return &SettingsHandlers{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetSetting returns one setting by key
func (h *SettingsHandlers) GetSetting(c *gin.Context) {
	key := c.Param("key")
	value, ok := h.settingsService.Get(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "setting not found: " + key})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

// PutSetting creates or replaces a setting
func (h *SettingsHandlers) PutSetting(c *gin.Context) {
	key := c.Param("key")
	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.settingsService.Set(key, req.Value)
	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}

// DeleteSetting removes a setting
func (h *SettingsHandlers) DeleteSetting(c *gin.Context) {
	h.settingsService.Remove(c.Param("key"))
	c.Status(http.StatusNoContent)
}

// DeleteAllSettings clears every setting
func (h *SettingsHandlers) DeleteAllSettings(c *gin.Context) {
	h.settingsService.Clear()
	c.Status(http.StatusNoContent)
}
