package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/clotmeter/clotmeter/pkg/clot"
	"github.com/clotmeter/clotmeter/pkg/gauge"
	"github.com/clotmeter/clotmeter/pkg/types"
	"github.com/clotmeter/clotmeter/server/internal/api"
	"github.com/clotmeter/clotmeter/server/internal/metrics"
)

const (
	// writeTimeout is the deadline for a single write to a client.
	writeTimeout = 10 * time.Second

	// pongWait is how long to wait for a pong response before treating the
	// connection as dead.
	pongWait = 60 * time.Second

	// pingPeriod controls how often the server sends WebSocket ping frames.
	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// sendBufSize is the per-client outgoing message buffer depth.
	sendBufSize = 16

	// maxFrameBytes caps one incoming request frame.
	maxFrameBytes = 4096
)

// Event names sent to clients.
const (
	EventReady      = "ready"
	EventAssessment = "assessment"
	EventError      = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Allow all origins — callers should apply CORS at the reverse-proxy level.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is the JSON envelope sent to clients.
type Message struct {
	Event string            `json:"event"`
	Data  *types.Assessment `json:"data,omitempty"`
	Error string            `json:"error,omitempty"`
}

// Hub manages WebSocket clients that submit lab values and receive a fresh
// assessment for every frame they send.
type Hub struct {
	metrics *metrics.Registry

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// client represents one connected WebSocket client.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// New creates a Hub that records outcomes in reg.
func New(reg *metrics.Registry) *Hub {
	return &Hub{
		metrics: reg,
		clients: make(map[*client]struct{}),
	}
}

// Run blocks until ctx is cancelled, then closes all active connections.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
}

// ServeHTTP upgrades the HTTP connection to WebSocket and serves the client.
// It sends a ready event on connect, then answers each request frame.
// Blocks until the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response.
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBufSize),
	}
	h.register(c)
	defer h.unregister(c)

	h.reply(c, Message{Event: EventReady})

	go c.writePump()
	h.readPump(c) // blocks until connection closes
}

// Count returns the number of currently connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// --- internal ---------------------------------------------------------------

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// handle turns one request frame into the reply message.
func (h *Hub) handle(frame []byte) Message {
	var req types.AssessmentRequest
	if err := json.Unmarshal(frame, &req); err != nil {
		return Message{Event: EventError, Error: "malformed request: " + err.Error()}
	}

	a, err := api.Assess(req)
	if errors.Is(err, clot.ErrInvalidInput) {
		h.metrics.ObserveInvalid(metrics.SurfaceWS)
		return Message{Event: EventError, Error: types.InvalidInputMessage}
	}
	if err != nil {
		return Message{Event: EventError, Error: "internal error"}
	}

	h.metrics.ObserveCalculation(gauge.Color(a.Color))
	return Message{Event: EventAssessment, Data: &a}
}

// reply queues msg for c. The send happens under the read lock so it cannot
// race with unregister or closeAll closing the channel. A client whose buffer
// is full is dropped.
func (h *Hub) reply(c *client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("ws: marshal reply failed", "err", err)
		return
	}

	h.mu.RLock()
	_, live := h.clients[c]
	full := false
	if live {
		select {
		case c.send <- data:
		default:
			full = true
		}
	}
	h.mu.RUnlock()

	if full {
		slog.Warn("ws: client send buffer full, disconnecting")
		h.unregister(c)
	}
}

// readPump reads request frames and answers each one. It also processes
// control messages (pong, close) to detect disconnects. Blocks until the
// connection closes.
func (h *Hub) readPump(c *client) {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxFrameBytes)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		h.reply(c, h.handle(frame))
	}
}

// writePump drains the client's send channel and forwards messages to the
// WebSocket connection. It also sends periodic ping frames. Runs in its own
// goroutine per client.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Channel was closed (hub is shutting down or client removed).
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
