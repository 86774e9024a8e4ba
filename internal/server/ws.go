package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/ayusman/mudra/internal/touch"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// wsClient pairs a connection with a write lock. The websocket package
// allows at most one concurrent writer per connection, and Publish may be
// called from any goroutine handling input.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// EventsHandler broadcasts classified gesture events to WebSocket clients.
type EventsHandler struct {
	clients map[*wsClient]bool
	mu      sync.RWMutex
}

// NewEventsHandler creates an EventsHandler with no clients.
func NewEventsHandler() *EventsHandler {
	return &EventsHandler{
		clients: make(map[*wsClient]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	client := &wsClient{conn: conn}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, client)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Publish sends the gesture event to all connected clients. It is safe to
// call from multiple goroutines.
func (h *EventsHandler) Publish(g touch.GestureEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if err := client.writeJSON(g); err != nil {
			log.Printf("websocket write error: %v", err)
		}
	}
}

// InputHandler accepts raw input events over WebSocket and dispatches them
// onto the recognizer's surface in arrival order.
type InputHandler struct {
	surface *touch.EventTarget
}

// NewInputHandler creates an InputHandler dispatching onto surface.
func NewInputHandler(surface *touch.EventTarget) *InputHandler {
	return &InputHandler{surface: surface}
}

// ServeHTTP handles WebSocket upgrade requests and streams input events.
func (h *InputHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	for {
		var ev touch.Event
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("input websocket error: %v", err)
			}
			return
		}
		h.surface.Dispatch(ev)
	}
}
