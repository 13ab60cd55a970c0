// Package realtime pushes new messages and calls to connected dashboard
// clients over websockets, so the front desk sees inbound traffic without
// polling.
package realtime

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"concierge-backend/internal/metrics"
)

type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Event
}

func NewHub() *Hub {
	h := &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, 64),
	}
	go h.run()
	return h
}

// Broadcast queues an event for every connected client. Non-blocking; if
// the queue is full the event is dropped, clients resync on next fetch.
func (h *Hub) Broadcast(event string, payload interface{}) {
	select {
	case h.broadcast <- Event{Type: event, Payload: payload, Timestamp: time.Now()}:
	default:
		log.Printf("[Realtime] Broadcast buffer full, dropping %s", event)
	}
}

// HandleWebSocket upgrades the connection and holds it until the client
// goes away. Clients only listen; inbound frames are discarded.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Realtime] WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()
	metrics.WebsocketClients.Inc()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			metrics.WebsocketClients.Dec()
			break
		}
	}
}

func (h *Hub) run() {
	for event := range h.broadcast {
		h.clientsMux.Lock()
		for client := range h.clients {
			if err := client.WriteJSON(event); err != nil {
				client.Close()
				delete(h.clients, client)
				metrics.WebsocketClients.Dec()
			}
		}
		h.clientsMux.Unlock()
	}
}
