package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// ChangeEvent is pushed to connected admin clients whenever the catalog
// is mutated, so open admin panels can refresh without polling.
type ChangeEvent struct {
	Event string `json:"event"` // created, updated, deleted, seeded
	ID    uint   `json:"id,omitempty"`
	Count int    `json:"count,omitempty"`
}

// Hub tracks websocket clients and fans catalog change events out to
// them.
type Hub struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	broadcast chan []byte
}

func NewHub() *Hub {
	h := &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 100), // Buffered channel to prevent blocking
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for message := range h.broadcast {
		h.mu.Lock()
		for client := range h.clients {
			if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				client.Close()
				delete(h.clients, client)
			}
		}
		h.mu.Unlock()
	}
}

// Publish queues a change event for broadcast. Drops the event when the
// channel is full rather than stalling a request handler.
func (h *Hub) Publish(ev ChangeEvent) {
	message, err := json.Marshal(ev)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		log.Println("WebSocket broadcast queue full, dropping event:", ev.Event)
	}
}

// handler upgrades the connection and keeps it registered until the
// client goes away. Inbound messages are ignored; the feed is one-way.
func (h *Hub) handler() fiber.Handler {
	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error upgrading:", err)
			return
		}
		defer conn.Close()

		h.mu.Lock()
		h.clients[conn] = true
		h.mu.Unlock()
		log.Println("Client connected:", conn.RemoteAddr())

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket read error: %v", err)
				}
				h.mu.Lock()
				delete(h.clients, conn)
				h.mu.Unlock()
				log.Println("Client disconnected:", conn.RemoteAddr())
				break
			}
		}
	})
}
