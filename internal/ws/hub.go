// Package ws pushes notifications to connected clients over websockets.
package ws

import (
	"log"
	"net/http"
	"sync"

	"pg-backend/internal/models"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks open connections per user. A user can hold several connections
// (multiple tabs); each gets every notification addressed to them.
type Hub struct {
	mu      sync.Mutex
	clients map[int]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int]map[*websocket.Conn]bool),
	}
}

// Serve upgrades the request and keeps the connection registered until the
// client goes away. Blocks for the connection's lifetime.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID int) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]bool)
	}
	h.clients[userID][conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.mu.Lock()
			delete(h.clients[userID], conn)
			if len(h.clients[userID]) == 0 {
				delete(h.clients, userID)
			}
			h.mu.Unlock()
			break
		}
	}
}

// Push sends a notification to every connection of its target user. Dead
// connections are dropped.
func (h *Hub) Push(n *models.Notification) {
	if n == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients[n.UserID] {
		if err := conn.WriteJSON(n); err != nil {
			conn.Close()
			delete(h.clients[n.UserID], conn)
		}
	}
}

// PushAll sends each notification to its own target user
func (h *Hub) PushAll(notifications []*models.Notification) {
	for _, n := range notifications {
		h.Push(n)
	}
}
