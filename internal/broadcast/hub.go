package broadcast

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lottopantera/draw-engine/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	clientBuffer   = 32
	maxMessageSize = 512
)

// Hub bridges the broadcaster to websocket clients: every published
// NotificationEvent is written as JSON to all connected admin UIs.
type Hub struct {
	broadcaster *Broadcaster
	upgrader    websocket.Upgrader

	mu      sync.Mutex
	clients map[*hubClient]struct{}

	cancel func()
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a Hub subscribed to the broadcaster and starts its pump.
func NewHub(b *Broadcaster) *Hub {
	h := &Hub{
		broadcaster: b,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policing is handled by the CORS middleware upstream
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*hubClient]struct{}),
	}

	events, cancel := b.Subscribe()
	h.cancel = cancel
	go h.pump(events)
	return h
}

// ServeHTTP upgrades the request and registers the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", "error", err)
		return
	}

	client := &hubClient{conn: conn, send: make(chan []byte, clientBuffer)}
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(client)
	go h.readLoop(client)
}

// Close detaches from the broadcaster and closes all connections.
func (h *Hub) Close() {
	h.cancel()
	h.mu.Lock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) pump(events <-chan models.NotificationEvent) {
	for event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			slog.Error("Failed to encode event for websocket", "drawId", event.DrawID, "error", err)
			continue
		}
		h.mu.Lock()
		for client := range h.clients {
			select {
			case client.send <- payload:
			default:
				// Slow client, disconnect rather than block the pump
				close(client.send)
				delete(h.clients, client)
			}
		}
		h.mu.Unlock()
	}
}

func (h *Hub) writeLoop(client *hubClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) readLoop(client *hubClient) {
	defer func() {
		h.mu.Lock()
		if _, ok := h.clients[client]; ok {
			close(client.send)
			delete(h.clients, client)
		}
		h.mu.Unlock()
		client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Subscribers are read-only; drain until the connection drops
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}
