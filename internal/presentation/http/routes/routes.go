// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lumenworks/galleria-go/internal/application/container"
	"github.com/lumenworks/galleria-go/internal/presentation/http/handlers"
	"github.com/lumenworks/galleria-go/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	pageHandlers := handlers.NewPageHandlers(container.PageService, container.Logger, container.PerfTracker)
	fragmentHandlers := handlers.NewFragmentHandlers(container.PageService, container.Logger, container.PerfTracker)
	settingsHandlers := handlers.NewSettingsHandlers(container.SettingsService, container.Logger)
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger)
	adminHandlers := handlers.NewAdminHandlers(container.CacheAdminService, container.Logger, container.PerfTracker)
	eventHandlers := handlers.NewEventHandlers(container.Broadcaster, container.Logger)
	healthHandlers := handlers.NewHealthHandlers(container.CacheManager, container.DB)

	r.GET("/api/v1/health", healthHandlers.GetHealth)

	api := r.Group("/api/v1")
	api.Use(middleware.SessionMiddleware())
	{
		// Page content and navigation
		api.GET("/pages/:route", pageHandlers.GetPage)
		api.POST("/navigate", pageHandlers.PostNavigate)
		api.GET("/nav", pageHandlers.GetNav)
		api.DELETE("/session", pageHandlers.DeleteSession)

		// Rendered fragments
		fragments := api.Group("/fragments")
		{
			fragments.GET("/pages/:route", pageHandlers.GetPageFragment)
			fragments.GET("/carousel/:route/:post", fragmentHandlers.GetCarousel)
			fragments.GET("/grid/:route", fragmentHandlers.GetGrid)
		}

		// Viewer settings
		settings := api.Group("/settings")
		{
			settings.GET("/:key", settingsHandlers.GetSetting)
			settings.PUT("/:key", settingsHandlers.PutSetting)
			settings.DELETE("/:key", settingsHandlers.DeleteSetting)
			settings.DELETE("", settingsHandlers.DeleteAllSettings)
		}

		// Authentication
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.GET("/status", authHandlers.GetAuthStatus)
		}

		// Live event stream
		api.GET("/events/ws", eventHandlers.GetEventStream)

		// Admin endpoints
		admin := api.Group("/admin")
		admin.Use(authHandlers.AdminMiddleware())
		{
			admin.GET("/cache", adminHandlers.GetCacheStatus)
			admin.GET("/performance", adminHandlers.GetPerformanceStats)
			admin.POST("/cache/invalidate", adminHandlers.PostInvalidateAll)
			admin.POST("/cache/invalidate/:route", adminHandlers.PostInvalidateRoute)
			admin.POST("/cache/reload/:route", adminHandlers.PostReloadRoute)
		}
	}

	return r
}
