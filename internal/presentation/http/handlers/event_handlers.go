// Package handlers provides the websocket event stream endpoint
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lumenworks/galleria-go/internal/infrastructure/messaging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventHandlers contains the websocket bridge endpoint
type EventHandlers struct {
	broadcaster *messaging.WSBroadcaster
	logger      *logging.ChanneledLogger
}

// NewEventHandlers creates event handlers with injected dependencies
func NewEventHandlers(broadcaster *messaging.WSBroadcaster, logger *logging.ChanneledLogger) *EventHandlers {
	return &EventHandlers{
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// GetEventStream upgrades the connection and streams bus events to it
func (h *EventHandlers) GetEventStream(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Events().Warn("Websocket upgrade failed", "error", err.Error())
		return
	}

	client := &messaging.WSClient{
		Conn: conn,
		Send: make(chan []byte, 32),
	}
	h.broadcaster.Register(client)

	go h.broadcaster.WritePump(client)
	go h.broadcaster.ReadPump(client)
}
