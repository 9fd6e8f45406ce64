// Package ws pushes committed state changes to WebSocket subscribers.
// Dashboards connect to one endpoint and receive every order transition and
// driver location fix as a typed JSON envelope.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"dispatch/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait = 5 * time.Second
	pongWait  = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// envelope wraps every pushed event with its type so one stream can carry
// both kinds.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hub implements EventPublisher by broadcasting to every connected client.
// A slow client is dropped rather than allowed to stall the broadcast.
type Hub struct {
	log *slog.Logger

	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// ServeWS upgrades the request and keeps the connection registered until the
// client disconnects. The read loop only consumes control frames.
func (h *Hub) ServeWS(ctx echo.Context) error {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return nil
	}

	h.register(conn)
	defer func() {
		h.unregister(conn)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket closed unexpectedly", "error", err)
			}
			return nil
		}
	}
}

// PublishOrderChanged broadcasts a committed order transition.
func (h *Hub) PublishOrderChanged(_ context.Context, event ports.OrderChangedEvent) error {
	return h.broadcast(envelope{Type: "order_changed", Data: event})
}

// PublishDriverLocation broadcasts a committed location fix.
func (h *Hub) PublishDriverLocation(_ context.Context, event ports.DriverLocationEvent) error {
	return h.broadcast(envelope{Type: "driver_location", Data: event})
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
	h.log.Debug("websocket client connected", "clients", len(h.clients))
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	h.log.Debug("websocket client disconnected", "clients", len(h.clients))
}

func (h *Hub) broadcast(message envelope) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	var stale []*websocket.Conn
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			stale = append(stale, conn)
		}
	}
	for _, conn := range stale {
		h.unregister(conn)
		conn.Close()
	}
	return nil
}
