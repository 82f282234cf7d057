package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"CardPulse/internal/usecase"
	applogger "CardPulse/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 16
)

// FeaturedPath is where clients subscribe to featured snapshots.
const FeaturedPath = "/api/ws/featured"

// Envelope is the frame pushed to subscribers.
type Envelope struct {
	Type      string      `json:"type"`
	Cards     interface{} `json:"cards"`
	UpdatedAt time.Time   `json:"updated_at"`
	Initial   bool        `json:"initial,omitempty"`
}

// SnapshotSource returns the latest snapshot, if one was taken.
type SnapshotSource func() (usecase.FeaturedSnapshot, bool)

// Hub fans featured-card snapshots out to websocket clients.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	latest   SnapshotSource
	upgrader websocket.Upgrader
	logger   *applogger.Logger
}

// NewHub creates a hub. latest may be nil.
func NewHub(latest SnapshotSource, l *applogger.Logger) *Hub {
	if l == nil {
		l = applogger.Nop()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		latest:  latest,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: l.Component("ws.hub"),
	}
}

func (h *Hub) RegisterRoutes(e *echo.Echo) {
	e.GET(FeaturedPath, h.Serve)
}

// Serve upgrades the request and registers the peer.
func (h *Hub) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", applogger.Error(err))
		return nil
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBuffer), hub: h}
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("ws client connected", applogger.Int("clients", count))

	if h.latest != nil {
		if snap, ok := h.latest(); ok {
			if msg, err := encode(snap, true); err == nil {
				cl.send <- msg
			}
		}
	}

	go cl.writePump()
	go cl.readPump()
	return nil
}

// Publish implements usecase.SnapshotPublisher. Slow peers drop frames.
func (h *Hub) Publish(snap usecase.FeaturedSnapshot) {
	msg, err := encode(snap, false)
	if err != nil {
		h.logger.Error("encode snapshot", applogger.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients {
		select {
		case cl.send <- msg:
		default:
			h.logger.Debug("ws client lagging, frame dropped")
		}
	}
}

// ClientCount returns the number of connected peers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every peer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		delete(h.clients, cl)
		close(cl.send)
	}
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
}

func encode(snap usecase.FeaturedSnapshot, initial bool) ([]byte, error) {
	return json.Marshal(Envelope{
		Type:      "featured",
		Cards:     snap.Cards,
		UpdatedAt: snap.UpdatedAt,
		Initial:   initial,
	})
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only services control frames; client payloads are ignored.
func (c *client) readPump() {
	defer func() {
		c.hub.remove(c)
		_ = c.conn.Close()
		c.hub.logger.Debug("ws client disconnected")
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
