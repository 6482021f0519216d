// Package gallery provides the persistence repositories backing the route
// cache and durable viewer settings.
package gallery

import (
	"fmt"

	"github.com/lumenworks/galleria-go/internal/infrastructure/persistence/database"
)

const routeCacheSchema = `
CREATE TABLE IF NOT EXISTS route_cache (
	session_id  TEXT NOT NULL,
	route       TEXT NOT NULL,
	raw         BLOB NOT NULL,
	last_used   INTEGER NOT NULL,
	last_loaded INTEGER NOT NULL,
	PRIMARY KEY (session_id, route)
)`

const settingsSchema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// EnsureSchema creates the persistence tables if they do not exist.
func EnsureSchema(db *database.DB) error {
	if _, err := db.Exec(routeCacheSchema); err != nil {
		return fmt.Errorf("failed to create route_cache table: %w", err)
	}
	if _, err := db.Exec(settingsSchema); err != nil {
		return fmt.Errorf("failed to create settings table: %w", err)
	}
	return nil
}
