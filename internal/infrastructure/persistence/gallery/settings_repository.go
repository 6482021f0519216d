// Package gallery provides settings persistence
package gallery

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/persistence/database"
)

// SettingsRepository persists viewer settings durably, outliving server
// sessions.
type SettingsRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

func NewSettingsRepository(db *database.DB, logger *logging.ChanneledLogger) *SettingsRepository {
	return &SettingsRepository{db: db, logger: logger}
}

func (r *SettingsRepository) Get(key string) (string, bool, error) {
	start := time.Now()
	var value string
	err := r.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	database.CheckAndLogSlowQuery(r.logger, "SETTINGS_GET", time.Since(start))
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *SettingsRepository) Set(key, value string) error {
	start := time.Now()
	query := `INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`
	_, err := r.db.Exec(query, key, value)
	database.CheckAndLogSlowQuery(r.logger, "SETTINGS_SET", time.Since(start))
	return err
}

func (r *SettingsRepository) Delete(key string) error {
	start := time.Now()
	_, err := r.db.Exec("DELETE FROM settings WHERE key = ?", key)
	database.CheckAndLogSlowQuery(r.logger, "SETTINGS_DELETE", time.Since(start))
	return err
}

func (r *SettingsRepository) Clear() error {
	start := time.Now()
	_, err := r.db.Exec("DELETE FROM settings")
	database.CheckAndLogSlowQuery(r.logger, "SETTINGS_CLEAR", time.Since(start))
	return err
}
