// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumenworks/galleria-go/internal/application/container"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/cleanup"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/persistence/database"
	"github.com/lumenworks/galleria-go/internal/infrastructure/persistence/gallery"
	"github.com/lumenworks/galleria-go/internal/infrastructure/security"
	"github.com/lumenworks/galleria-go/internal/presentation/http/server"
	"github.com/lumenworks/galleria-go/pkg/config"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("\033[32m" + `

   ▄████  ▄▄▄       ██▓     ██▓    ▓█████  ██▀███   ██▓ ▄▄▄
  ██▒ ▀█▒▒████▄    ▓██▒    ▓██▒    ▓█   ▀ ▓██ ▒ ██▒▓██▒▒████▄
 ▒██░▄▄▄░▒██  ▀█▄  ▒██░    ▒██░    ▒███   ▓██ ░▄█ ▒▒██▒▒██  ▀█▄
 ░▓█  ██▓░██▄▄▄▄██ ▒██░    ▒██░    ▒▓█  ▄ ▒██▀▀█▄  ░██░░██▄▄▄▄██
 ░▒▓███▀▒ ▓█   ▓██▒░██████▒░██████▒░▒████▒░██▓ ▒██▒░██░ ▓█   ▓██▒
` + "\033[97m" + `
  made by Lumen Works
` + "\033[0m")

	// Step 1: Create the channeled logger
	log.Println("Initializing logging...")
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.Startup().Info("Channeled logging initialized")

	// Step 2: Open the database and prepare the schema
	logger.Startup().Info("Opening database...")
	if config.DatabaseURL != "" {
		if err := database.TestRemoteConnectionWithLogger(config.DatabaseURL, config.DatabaseAuthToken, logger); err != nil {
			return fmt.Errorf("remote database unreachable: %w", err)
		}
	}
	driver, dsn := database.DataSource()
	db, err := database.NewConnectionWithLogger(driver, dsn, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := gallery.EnsureSchema(db); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	// Step 3: Begin a fresh server session for the route cache
	sessionID := security.GenerateULID()
	sessionRepo := gallery.NewRouteCacheRepository(db, sessionID, logger)
	if err := sessionRepo.BeginSession(); err != nil {
		return fmt.Errorf("failed to begin cache session: %w", err)
	}
	logger.Startup().Info("Cache session started", "sessionId", sessionID)

	// Admin auth needs a signing secret; when a password hash is configured
	// without one, mint an ephemeral key so logins work until restart.
	if config.AdminPasswordHash != "" && config.JWTSecret == "" {
		key, err := security.GenerateSecureKey(64)
		if err != nil {
			return fmt.Errorf("failed to generate ephemeral JWT secret: %w", err)
		}
		config.JWTSecret = key
		logger.Startup().Warn("JWT_SECRET not configured, generated an ephemeral signing key; admin tokens will not survive a restart")
	}

	// Step 4: Create dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer := container.NewContainer(db, sessionID, logger)
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 5: Start the websocket event bridge
	go appContainer.Broadcaster.Run()
	logger.Startup().Info("Event bridge started")

	// Step 6: Warm the route cache
	logger.Startup().Info("Initializing cache warming...")
	startWarmTime := time.Now()
	if err := appContainer.WarmingService.WarmAllRoutes(ctx, appContainer.Loader, logger, appContainer.PerfTracker); err != nil {
		logger.Startup().Error("Cache warming failed", "error", err.Error(), "duration", time.Since(startWarmTime))
		return fmt.Errorf("cache warming failed: %w", err)
	}
	logger.Startup().Info("Cache warming completed successfully", "duration", time.Since(startWarmTime))

	// Step 7: Start background cleanup worker
	logger.Startup().Info("Starting background cleanup worker...")
	cleanupWorker := cleanup.NewWorker(appContainer.CacheManager, cleanup.NewConfig(), logger)
	go cleanupWorker.Start(ctx)
	logger.Startup().Info("Background cleanup worker started")

	// Step 8: Start HTTP server
	logger.Startup().Info("Starting HTTP server...")
	port := config.Port
	httpServer := server.New(port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	// Cancel background tasks
	cancelBackgroundTasks()

	// Stop server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	// Close database
	logger.Shutdown().Info("Closing database...")
	if err := db.Close(); err != nil {
		logger.Shutdown().Error("Error closing database", "error", err.Error())
	} else {
		logger.Shutdown().Info("Database closed successfully")
	}

	elapsed := time.Since(start)
	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", elapsed,
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
