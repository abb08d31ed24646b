// Package websocket pushes production notifications to browser clients.
//
// Every message is a JSON envelope {"event": "...", "data": ...}. A client that
// cannot keep up loses messages; Emit never waits for it.
package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
)

// EventServerStatus is sent to every client right after it connects.
const EventServerStatus = "server:status"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// Message is the wire envelope.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// ServerStatus is the payload of the greeting message.
type ServerStatus struct {
	Status  string    `json:"status"`
	Clients int       `json:"clients"`
	Time    time.Time `json:"time"`
}

// Hub keeps the set of connected clients and broadcasts to them.
// It implements ports.Notifier and http.Handler.
type Hub struct {
	upgrader ws.Upgrader
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		logger:  logger.With("component", "websocket-hub"),
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize)}
	count, ok := h.register(c)
	if !ok {
		_ = conn.WriteControl(ws.CloseMessage, ws.FormatCloseMessage(ws.CloseGoingAway, "shutting down"), time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	h.logger.Info("client connected", "remote", r.RemoteAddr, "clients", count)

	go c.writePump()
	go c.readPump()
}

// Emit broadcasts an event to every connected client.
func (h *Hub) Emit(event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		h.logger.Error("failed to encode event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("client buffer full, dropping message", "event", event, "remote", c.conn.RemoteAddr().String())
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// register adds the client and queues its greeting ahead of any broadcast.
func (h *Hub) register(c *client) (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, false
	}
	h.clients[c] = struct{}{}
	count := len(h.clients)

	greeting, err := encode(EventServerStatus, ServerStatus{Status: "connected", Clients: count, Time: time.Now().UTC()})
	if err == nil {
		c.send <- greeting
	}
	return count, true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.logger.Info("client disconnected", "clients", len(h.clients))
	}
}

func encode(event string, payload any) ([]byte, error) {
	return json.Marshal(Message{Event: event, Data: payload})
}

type client struct {
	hub  *Hub
	conn *ws.Conn
	send chan []byte
}

// readPump only watches for the peer going away; clients never send commands.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if ws.IsUnexpectedCloseError(err, ws.CloseGoingAway, ws.CloseNormalClosure, ws.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read failed", "error", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(ws.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(ws.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(ws.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
