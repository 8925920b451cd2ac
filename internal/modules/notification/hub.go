// Package notification pushes state changes of the host (cart, food
// reservations, booking workflow, session) to connected browsers.
package notification

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

const (
	EventCartUpdated             = "cart_updated"
	EventFoodReservationsUpdated = "food_reservations_updated"
	EventBookingUpdated          = "booking_updated"
	EventBookingConfirmed        = "booking_confirmed"
	EventSessionExpired          = "session_expired"
	EventPong                    = "pong"
)

type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// clientMessage is what a browser may send: ping, or subscribe and
// unsubscribe with the event type to (un)mute.
type clientMessage struct {
	Type  string `json:"type"`
	Event string `json:"event"`
}

type connection struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	muted  map[string]bool
	opened time.Time
}

type Hub struct {
	mu          sync.RWMutex
	connections map[string]*connection
	now         func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*connection),
		now:         time.Now,
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c.id] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.id]; ok && existing == c {
		delete(h.connections, c.id)
		close(c.send)
	}
}

// Publish sends an event to every connection that has not muted its type.
// Slow clients miss events rather than block the caller.
func (h *Hub) Publish(eventType string, payload any) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload, At: h.now()})
	if err != nil {
		log.Printf("ws_event_encode type=%s error=%q", eventType, err.Error())
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		if c.muted[eventType] {
			continue
		}
		select {
		case c.send <- data:
		default:
			log.Printf("ws_event_dropped conn_id=%s type=%s", c.id, eventType)
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.connections {
		delete(h.connections, id)
		close(c.send)
	}
}

// ServeWS runs a connection until the client goes away.
func (h *Hub) ServeWS(conn *websocket.Conn) {
	c := &connection{
		id:     uuid.NewString(),
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		muted:  make(map[string]bool),
		opened: h.now(),
	}
	h.register(c)
	log.Printf("ws_connected conn_id=%s", c.id)

	go h.writePump(c)
	h.readPump(c)
	log.Printf("ws_disconnected conn_id=%s duration=%s", c.id, h.now().Sub(c.opened).Round(time.Second))
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws_read_error conn_id=%s error=%q", c.id, err.Error())
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "subscribe":
			h.mu.Lock()
			delete(c.muted, msg.Event)
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			c.muted[msg.Event] = true
			h.mu.Unlock()
		case "ping":
			h.reply(c, Event{Type: EventPong, At: h.now()})
		}
	}
}

func (h *Hub) reply(c *connection, e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.connections[c.id]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (h *Hub) writePump(c *connection) {
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
