package http

import (
	"context"
	"sync"

	"shipping-admin/internal/shared/eventbus"
	"shipping-admin/internal/shared/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WebSocketMessage is the frame pushed to dashboard clients.
type WebSocketMessage struct {
	Type   string `json:"type"`
	Entity string `json:"entity,omitempty"`
}

// WebSocketHandler pushes data-change notifications to connected dashboards.
// Frames carry only the mutated entity name: clients re-fetch the collections
// they render, the same contract the signal bus uses internally.
type WebSocketHandler struct {
	log logger.Logger

	mu    sync.Mutex
	conns map[string]chan WebSocketMessage
}

// NewWebSocketHandler creates the handler and subscribes it to the data layer
// events it fans out.
func NewWebSocketHandler(bus eventbus.EventBusInterface, log logger.Logger) *WebSocketHandler {
	h := &WebSocketHandler{
		log:   log.WithComponent("ws-handler"),
		conns: make(map[string]chan WebSocketMessage),
	}

	bus.Subscribe(eventbus.EventTypeDataChanged, func(ctx context.Context, event eventbus.Event) error {
		entity, _ := event.Data().(string)
		h.broadcast(WebSocketMessage{Type: "changed", Entity: entity})
		return nil
	})
	bus.Subscribe(eventbus.EventTypeSettingsUpdated, func(ctx context.Context, event eventbus.Event) error {
		h.broadcast(WebSocketMessage{Type: "changed", Entity: "settings"})
		return nil
	})

	return h
}

// RegisterRoutes registers the WebSocket endpoint.
func (h *WebSocketHandler) RegisterRoutes(router fiber.Router) {
	wsGroup := router.Group("/ws")

	wsGroup.Use("/dashboard", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	wsGroup.Get("/dashboard", websocket.New(h.handleConnection))
}

// broadcast queues a frame for every connected client. Slow clients drop
// frames rather than block the data layer.
func (h *WebSocketHandler) broadcast(msg WebSocketMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.conns {
		select {
		case ch <- msg:
		default:
			h.log.Warn("Dropping frame for slow WebSocket client",
				zap.String("subscriberID", id))
		}
	}
}

func (h *WebSocketHandler) handleConnection(conn *websocket.Conn) {
	subscriberID := uuid.NewString()
	frames := make(chan WebSocketMessage, 16)

	h.mu.Lock()
	h.conns[subscriberID] = frames
	h.mu.Unlock()

	h.log.Info("New WebSocket connection established",
		zap.String("subscriberID", subscriberID))

	defer func() {
		h.mu.Lock()
		delete(h.conns, subscriberID)
		h.mu.Unlock()
		h.log.Info("WebSocket connection closing",
			zap.String("subscriberID", subscriberID))
		conn.Close()
	}()

	done := make(chan struct{})

	// Reader goroutine: we never expect client frames, but reading is how
	// the close handshake surfaces.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case msg := <-frames:
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("Failed to write WebSocket frame",
					zap.String("subscriberID", subscriberID),
					zap.Error(err))
				return
			}
		}
	}
}

// SubscriberCount reports the number of connected dashboard clients.
func (h *WebSocketHandler) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
