// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is a live-activity message pushed to connected dashboards, e.g. a
// completed donation or a triggered SOS.
type Event struct {
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Hub tracks the connected WebSocket clients, keyed by user id.
type Hub struct {
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
		logger:  logger,
	}
}

// Register adds a client connection to the hub.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = conn
	h.logger.Info("websocket client registered", zap.String("userID", userID))
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; ok {
		delete(h.clients, userID)
		h.logger.Info("websocket client unregistered", zap.String("userID", userID))
	}
}

// Send delivers one event to a single client. A missing client is not an
// error, it just means they are offline.
func (h *Hub) Send(userID, eventType string, payload map[string]any) error {
	event := Event{Type: eventType, Payload: payload, Timestamp: time.Now()}
	message, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[userID]
	if !ok {
		return nil
	}
	return conn.WriteMessage(websocket.TextMessage, message)
}

// Broadcast pushes an event to every connected client. Write failures are
// logged per client and do not stop the fan-out.
func (h *Hub) Broadcast(eventType string, payload map[string]any) {
	event := Event{Type: eventType, Payload: payload, Timestamp: time.Now()}
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for userID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.Warn("failed to push event to client",
				zap.String("userID", userID), zap.Error(err))
		}
	}
}
