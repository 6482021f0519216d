package stores

import (
	"sync"

	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
)

// SettingsBackend is the durable key-value persistence behind the settings
// store. It is independent of the route cache's session-scoped backing store
// and survives session resets.
type SettingsBackend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Clear() error
}

// SettingsStore holds durable user settings. All persistence failures degrade
// silently to the in-memory mirror; no method returns an error.
type SettingsStore struct {
	mu      sync.RWMutex
	mirror  map[string]string
	backend SettingsBackend
	logger  *logging.ChanneledLogger
}

// NewSettingsStore creates a settings store over an optional backend.
func NewSettingsStore(backend SettingsBackend, logger *logging.ChanneledLogger) *SettingsStore {
	return &SettingsStore{
		mirror:  make(map[string]string),
		backend: backend,
		logger:  logger,
	}
}

// GetSetting returns the value for a key, reading through to the backend when
// the mirror has no entry.
func (ss *SettingsStore) GetSetting(key string) (string, bool) {
	ss.mu.RLock()
	if val, exists := ss.mirror[key]; exists {
		ss.mu.RUnlock()
		return val, true
	}
	ss.mu.RUnlock()

	if ss.backend == nil {
		return "", false
	}

	val, found, err := ss.backend.Get(key)
	if err != nil {
		if ss.logger != nil {
			ss.logger.Cache().Warn("Settings read failed", "key", key, "error", err.Error())
		}
		return "", false
	}
	if !found {
		return "", false
	}

	ss.mu.Lock()
	ss.mirror[key] = val
	ss.mu.Unlock()
	return val, true
}

// SetSetting stores a key/value pair.
func (ss *SettingsStore) SetSetting(key, value string) {
	ss.mu.Lock()
	ss.mirror[key] = value
	ss.mu.Unlock()

	if ss.backend == nil {
		return
	}
	if err := ss.backend.Set(key, value); err != nil && ss.logger != nil {
		ss.logger.Cache().Warn("Settings write failed, value kept in memory", "key", key, "error", err.Error())
	}
}

// RemoveSetting deletes one key.
func (ss *SettingsStore) RemoveSetting(key string) {
	ss.mu.Lock()
	delete(ss.mirror, key)
	ss.mu.Unlock()

	if ss.backend == nil {
		return
	}
	if err := ss.backend.Delete(key); err != nil && ss.logger != nil {
		ss.logger.Cache().Warn("Settings delete failed", "key", key, "error", err.Error())
	}
}

// ClearSettings deletes every setting.
func (ss *SettingsStore) ClearSettings() {
	ss.mu.Lock()
	ss.mirror = make(map[string]string)
	ss.mu.Unlock()

	if ss.backend == nil {
		return
	}
	if err := ss.backend.Clear(); err != nil && ss.logger != nil {
		ss.logger.Cache().Warn("Settings clear failed", "error", err.Error())
	}
}
