// Package config provides centralized default values for Galleria
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Upstream content origin
	UpstreamBaseURL string
	ContentVersion  string
	UpstreamTimeout time.Duration

	// Loader retry policy
	LoadRetryAttempts int
	LoadRetryBackoff  time.Duration

	// Route cache
	CacheMaxBytes int64
	CacheMaxAge   time.Duration

	// Prefetch
	PrefetchBatchSize    int
	PrefetchBatchPause   time.Duration
	PrefetchKnownPerType int
	PrefetchTimeout      time.Duration

	// Persistence
	DBDriver           string
	DBPath             string
	DatabaseURL        string
	DatabaseAuthToken  string
	SlowQueryThreshold time.Duration

	// Admin auth
	JWTSecret         string
	AdminPasswordHash string
	TokenLifetime     time.Duration

	// Cleanup
	CleanupInterval time.Duration
	CleanupVerbose  bool

	// Event bus
	EventBufferSize int

	// Rendering
	GridWindowSize int
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Upstream content origin
	UpstreamBaseURL = getEnvString("UPSTREAM_BASE_URL", "http://localhost:9000")
	ContentVersion = getEnvString("CONTENT_VERSION", "1")
	UpstreamTimeout = getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second)

	// Loader retry policy
	LoadRetryAttempts = getEnvInt("LOAD_RETRY_ATTEMPTS", 3)
	LoadRetryBackoff = getEnvDuration("LOAD_RETRY_BACKOFF", time.Second)

	// Route cache
	CacheMaxBytes = getEnvInt64("CACHE_MAX_BYTES", 5*1024*1024)
	CacheMaxAge = getEnvDuration("CACHE_MAX_AGE", time.Hour)

	// Prefetch
	PrefetchBatchSize = getEnvInt("PREFETCH_BATCH_SIZE", 5)
	PrefetchBatchPause = getEnvDuration("PREFETCH_BATCH_PAUSE", 200*time.Millisecond)
	PrefetchKnownPerType = getEnvInt("PREFETCH_KNOWN_PER_TYPE", 100)
	PrefetchTimeout = getEnvDuration("PREFETCH_TIMEOUT", 15*time.Second)

	// Persistence
	DBDriver = getEnvString("DB_DRIVER", "sqlite3")
	DBPath = getEnvString("DB_PATH", "galleria.db")
	DatabaseURL = getEnvString("DATABASE_URL", "")
	DatabaseAuthToken = getEnvString("DATABASE_AUTH_TOKEN", "")
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 100*time.Millisecond)

	// Admin auth
	JWTSecret = getEnvString("JWT_SECRET", "")
	AdminPasswordHash = getEnvString("ADMIN_PASSWORD_HASH", "")
	TokenLifetime = getEnvDuration("TOKEN_LIFETIME", 24*time.Hour)

	// Cleanup
	CleanupInterval = getEnvDuration("CACHE_CLEANUP_INTERVAL", 10*time.Minute)
	CleanupVerbose = getEnvBool("CACHE_CLEANUP_VERBOSE", true)

	// Event bus
	EventBufferSize = getEnvInt("EVENT_BUFFER_SIZE", 16)

	// Rendering
	GridWindowSize = getEnvInt("GRID_WINDOW_SIZE", 12)
}
