package services

import (
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/manager"
	"github.com/lumenworks/galleria-go/internal/infrastructure/messaging"
)

// SettingsService exposes durable viewer settings and announces changes on
// the event bus.
type SettingsService struct {
	cache *manager.Manager
	bus   messaging.Publisher
}

func NewSettingsService(cache *manager.Manager, bus messaging.Publisher) *SettingsService {
	return &SettingsService{cache: cache, bus: bus}
}

func (s *SettingsService) Get(key string) (string, bool) {
	return s.cache.Settings.GetSetting(key)
}

func (s *SettingsService) Set(key, value string) {
	s.cache.Settings.SetSetting(key, value)
	s.bus.Publish(messaging.Event{
		Topic: messaging.TopicSettingsChanged,
		Data:  map[string]any{"key": key},
	})
}

func (s *SettingsService) Remove(key string) {
	s.cache.Settings.RemoveSetting(key)
	s.bus.Publish(messaging.Event{
		Topic: messaging.TopicSettingsChanged,
		Data:  map[string]any{"key": key, "removed": true},
	})
}

func (s *SettingsService) Clear() {
	s.cache.Settings.ClearSettings()
	s.bus.Publish(messaging.Event{
		Topic: messaging.TopicSettingsChanged,
		Data:  map[string]any{"cleared": true},
	})
}
