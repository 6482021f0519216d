// Package gallery provides route cache persistence
package gallery

import (
	"time"

	"github.com/lumenworks/galleria-go/internal/domain/navigation"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/persistence/database"
)

// RouteCacheRepository persists route payloads scoped to a server session.
// Rows from prior sessions are removed when a new session begins, so cached
// payloads never outlive the process that wrote them.
type RouteCacheRepository struct {
	db        *database.DB
	sessionID string
	logger    *logging.ChanneledLogger
}

func NewRouteCacheRepository(db *database.DB, sessionID string, logger *logging.ChanneledLogger) *RouteCacheRepository {
	return &RouteCacheRepository{
		db:        db,
		sessionID: sessionID,
		logger:    logger,
	}
}

// BeginSession drops rows left behind by previous server sessions.
func (r *RouteCacheRepository) BeginSession() error {
	start := time.Now()
	_, err := r.db.Exec("DELETE FROM route_cache WHERE session_id != ?", r.sessionID)
	database.CheckAndLogSlowQuery(r.logger, "ROUTE_CACHE_BEGIN_SESSION", time.Since(start))
	if err != nil {
		return err
	}
	r.logger.Database().Info("Route cache session started", "sessionId", r.sessionID)
	return nil
}

func (r *RouteCacheRepository) Load(route navigation.Route) (raw []byte, lastUsed, lastLoaded time.Time, ok bool) {
	start := time.Now()
	query := `SELECT raw, last_used, last_loaded FROM route_cache WHERE session_id = ? AND route = ?`

	var usedUnix, loadedUnix int64
	err := r.db.QueryRow(query, r.sessionID, string(route)).Scan(&raw, &usedUnix, &loadedUnix)
	database.CheckAndLogSlowQuery(r.logger, "ROUTE_CACHE_LOAD", time.Since(start))
	if err != nil {
		return nil, time.Time{}, time.Time{}, false
	}

	return raw, time.UnixMilli(usedUnix), time.UnixMilli(loadedUnix), true
}

func (r *RouteCacheRepository) Save(route navigation.Route, raw []byte, lastUsed, lastLoaded time.Time) error {
	start := time.Now()
	query := `INSERT INTO route_cache (session_id, route, raw, last_used, last_loaded)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (session_id, route) DO UPDATE SET
			raw = excluded.raw,
			last_used = excluded.last_used,
			last_loaded = excluded.last_loaded`

	_, err := r.db.Exec(query, r.sessionID, string(route), raw, lastUsed.UnixMilli(), lastLoaded.UnixMilli())
	database.CheckAndLogSlowQuery(r.logger, "ROUTE_CACHE_SAVE", time.Since(start))
	return err
}

func (r *RouteCacheRepository) Delete(route navigation.Route) {
	start := time.Now()
	_, err := r.db.Exec("DELETE FROM route_cache WHERE session_id = ? AND route = ?", r.sessionID, string(route))
	database.CheckAndLogSlowQuery(r.logger, "ROUTE_CACHE_DELETE", time.Since(start))
	if err != nil {
		r.logger.Database().Warn("Failed to delete cached route", "route", route, "error", err.Error())
	}
}

func (r *RouteCacheRepository) Clear() {
	start := time.Now()
	_, err := r.db.Exec("DELETE FROM route_cache WHERE session_id = ?", r.sessionID)
	database.CheckAndLogSlowQuery(r.logger, "ROUTE_CACHE_CLEAR", time.Since(start))
	if err != nil {
		r.logger.Database().Warn("Failed to clear route cache", "error", err.Error())
	}
}
