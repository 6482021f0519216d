package messaging

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
)

// WSClient represents a single connected websocket client.
type WSClient struct {
	Conn *websocket.Conn
	Send chan []byte
}

// WSBroadcaster bridges the event bus onto websocket connections so admin
// dashboards can watch route changes, loads, and cache activity live.
type WSBroadcaster struct {
	clients    map[*WSClient]bool
	register   chan *WSClient
	unregister chan *WSClient
	bus        Bus
	logger     *logging.ChanneledLogger
	mu         sync.RWMutex
}

func NewWSBroadcaster(bus Bus, logger *logging.ChanneledLogger) *WSBroadcaster {
	return &WSBroadcaster{
		clients:    make(map[*WSClient]bool),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		bus:        bus,
		logger:     logger,
	}
}

// Run pumps bus events to connected clients. Run as a goroutine.
func (b *WSBroadcaster) Run() {
	sub := b.bus.Subscribe()
	defer b.bus.Unsubscribe(sub)

	for {
		select {
		case client := <-b.register:
			b.mu.Lock()
			b.clients[client] = true
			b.mu.Unlock()
			b.logger.Events().Debug("Websocket client registered", "clients", b.ClientCount())

		case client := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[client]; ok {
				delete(b.clients, client)
				close(client.Send)
			}
			b.mu.Unlock()
			b.logger.Events().Debug("Websocket client unregistered", "clients", b.ClientCount())

		case event, ok := <-sub.C:
			if !ok {
				return
			}
			b.broadcast(event)
		}
	}
}

func (b *WSBroadcaster) broadcast(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		b.logger.Events().Error("Failed to marshal event", "topic", event.Topic, "error", err.Error())
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for client := range b.clients {
		select {
		case client.Send <- payload:
		default:
			// Slow client, skip this event for it.
		}
	}
}

// Register attaches a client to the broadcaster.
func (b *WSBroadcaster) Register(client *WSClient) {
	b.register <- client
}

// Unregister detaches a client.
func (b *WSBroadcaster) Unregister(client *WSClient) {
	b.unregister <- client
}

// ClientCount returns the number of connected clients.
func (b *WSBroadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// WritePump streams queued payloads to a single connection with write
// deadlines and periodic pings.
func (b *WSBroadcaster) WritePump(client *WSClient) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump drains and discards inbound frames, unregistering on disconnect.
func (b *WSBroadcaster) ReadPump(client *WSClient) {
	defer func() {
		b.Unregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(512)
	client.Conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
