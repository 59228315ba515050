package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	clientBuffer = 8
	writeWait    = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StateHub keeps the latest published snapshot and pushes every new one to
// connected WebSocket clients. A slow client misses snapshots rather than
// holding up the publisher.
type StateHub struct {
	mu      sync.RWMutex
	latest  []byte
	clients map[*websocket.Conn]chan []byte
}

// NewStateHub creates an empty StateHub.
func NewStateHub() *StateHub {
	return &StateHub{
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

// Publish marshals v to JSON, stores it as the latest snapshot and queues it
// for every client.
func (h *StateHub) Publish(v any) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = msg
	for _, ch := range h.clients {
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

// Latest returns the most recent snapshot, or nil if nothing was published.
func (h *StateHub) Latest() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Clients returns the number of connected WebSocket clients.
func (h *StateHub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams snapshots until the client goes away.
func (h *StateHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ch := make(chan []byte, clientBuffer)

	h.mu.Lock()
	if h.latest != nil {
		ch <- h.latest
	}
	h.clients[conn] = ch
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Reads only detect the close; clients have nothing to say.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case <-r.Context().Done():
			return
		case msg := <-ch:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}
