// Package database provides database helper functions
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/pkg/config"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// TestRemoteConnection tests a libsql database connection
func TestRemoteConnection(databaseURL, authToken string) error {
	connStr := databaseURL
	if authToken != "" {
		connStr = fmt.Sprintf("%s?authToken=%s", databaseURL, authToken)
	}

	db, err := sql.Open("libsql", connStr)
	if err != nil {
		return fmt.Errorf("failed to open connection: %w", err)
	}
	defer db.Close()

	var result int
	err = db.QueryRow("SELECT 1").Scan(&result)
	if err != nil {
		return fmt.Errorf("connection test query failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("unexpected query result: %d", result)
	}

	return nil
}

// TestRemoteConnectionWithLogger tests a libsql database connection with logging
func TestRemoteConnectionWithLogger(databaseURL, authToken string, logger *logging.ChanneledLogger) error {
	start := time.Now()
	logger.Database().Debug("Testing remote database connection", "databaseURL", databaseURL)

	if err := TestRemoteConnection(databaseURL, authToken); err != nil {
		logger.Database().Error("Remote connection test failed", "error", err.Error(), "databaseURL", databaseURL)
		return err
	}

	logger.Database().Info("Remote connection test successful", "databaseURL", databaseURL, "duration", time.Since(start))
	return nil
}

// GetSlowQueryThreshold returns the configured slow query threshold
func GetSlowQueryThreshold() time.Duration {
	return config.SlowQueryThreshold
}

// CheckAndLogSlowQuery checks if a query duration exceeds threshold
// and logs it if it does
func CheckAndLogSlowQuery(logger *logging.ChanneledLogger, query string, duration time.Duration) {
	if duration > GetSlowQueryThreshold() {
		logger.LogSlowQuery(query, duration)
	}
}

// DataSource resolves the connection driver and DSN from configuration.
// A configured DATABASE_URL selects the libsql driver, otherwise the
// embedded sqlite3 driver with the local database path is used.
func DataSource() (driver, dsn string) {
	if config.DatabaseURL != "" {
		dsn = config.DatabaseURL
		if config.DatabaseAuthToken != "" {
			dsn = fmt.Sprintf("%s?authToken=%s", config.DatabaseURL, config.DatabaseAuthToken)
		}
		return "libsql", dsn
	}
	return config.DBDriver, config.DBPath
}
