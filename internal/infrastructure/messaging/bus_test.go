package messaging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
)

func TestEventBus_PublishFansOut(t *testing.T) {
	bus := NewEventBus(logging.NewTestLogger())

	sub1 := bus.Subscribe()
	sub2 := bus.Subscribe()

	bus.Emit(TopicRouteChange, map[string]any{"route": "videos"})

	for _, sub := range []*Subscription{sub1, sub2} {
		select {
		case event := <-sub.C:
			assert.Equal(t, TopicRouteChange, event.Topic)
			assert.Equal(t, "videos", event.Data["route"])
			assert.False(t, event.Timestamp.IsZero())
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestEventBus_SlowSubscriberDropsEvents(t *testing.T) {
	bus := NewEventBus(logging.NewTestLogger())
	bus.bufSize = 2

	slow := bus.Subscribe()

	// Publishing past the buffer must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			bus.Emit(TopicDataLoaded, nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	assert.Len(t, slow.C, 2, "only the buffered events are retained")
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus(logging.NewTestLogger())

	sub := bus.Subscribe()
	bus.Unsubscribe(sub)

	_, open := <-sub.C
	assert.False(t, open, "unsubscribing closes the channel")

	// Double unsubscribe and nil are harmless.
	bus.Unsubscribe(sub)
	bus.Unsubscribe(nil)

	bus.Emit(TopicDataLoaded, nil)
}

func TestEventBus_PublishKeepsExplicitTimestamp(t *testing.T) {
	bus := NewEventBus(logging.NewTestLogger())
	sub := bus.Subscribe()

	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	bus.Publish(Event{Topic: TopicCacheCleared, Timestamp: stamp})

	select {
	case event := <-sub.C:
		require.Equal(t, stamp, event.Timestamp)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the event")
	}
}
