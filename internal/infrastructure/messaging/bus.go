// Package messaging provides the in-process event bus.
package messaging

import (
	"sync"
	"time"

	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/pkg/config"
)

// Event topics published across the system.
const (
	TopicRouteChange     = "route:change"
	TopicDataLoaded      = "data:loaded"
	TopicDataError       = "data:error"
	TopicCacheEvicted    = "cache:evicted"
	TopicCacheCleared    = "cache:cleared"
	TopicSettingsChanged = "settings:changed"
	TopicPrefetchDone    = "prefetch:done"
)

// Event is a single bus message.
type Event struct {
	Topic     string         `json:"topic"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// Subscription receives every published event on its channel until
// unsubscribed.
type Subscription struct {
	C  chan Event
	id uint64
}

// EventBus fans published events out to all subscribers. Publishing never
// blocks; a subscriber that falls behind loses events rather than stalling
// the publisher.
type EventBus struct {
	mu      sync.RWMutex
	nextID  uint64
	subs    map[uint64]*Subscription
	bufSize int
	logger  *logging.ChanneledLogger
}

func NewEventBus(logger *logging.ChanneledLogger) *EventBus {
	return &EventBus{
		subs:    make(map[uint64]*Subscription),
		bufSize: config.EventBufferSize,
		logger:  logger,
	}
}

func (b *EventBus) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		C:  make(chan Event, b.bufSize),
		id: b.nextID,
	}
	b.subs[sub.id] = sub
	b.logger.Events().Debug("Subscriber registered", "subscriberId", sub.id)
	return sub
}

func (b *EventBus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub.id]; !ok {
		return
	}
	delete(b.subs, sub.id)
	close(sub.C)
	b.logger.Events().Debug("Subscriber removed", "subscriberId", sub.id)
}

func (b *EventBus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, sub := range b.subs {
		select {
		case sub.C <- event:
		default:
			b.logger.Events().Warn("Subscriber buffer full, dropping event",
				"subscriberId", id, "topic", event.Topic)
		}
	}
}

// Emit is a convenience wrapper for publishing a topic with data.
func (b *EventBus) Emit(topic string, data map[string]any) {
	b.Publish(Event{Topic: topic, Data: data})
}
