package realtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"yultimate_hub/internal/models"
)

// clientBuffer is how many undelivered messages one connection may queue.
const clientBuffer = 16

// Conn is the write side of a websocket connection.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Message is the envelope pushed to clients.
type Message struct {
	Event string              `json:"event"`
	Data  models.Notification `json:"data"`
}

// client owns one connection's send queue; only its writer goroutine writes to conn.
type client struct {
	conn Conn
	send chan Message
}

// Hub tracks websocket connections per person and pushes new notifications
// to them. A slow connection only backs up its own queue.
type Hub struct {
	mu        sync.Mutex
	clients   map[uint]map[Conn]*client
	broadcast chan models.Notification
}

func NewHub(buffer int) *Hub {
	return &Hub{
		clients:   make(map[uint]map[Conn]*client),
		broadcast: make(chan models.Notification, buffer),
	}
}

// Run routes published notifications to their recipients' queues until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case n := <-h.broadcast:
			h.deliver(n)
		}
	}
}

func (h *Hub) deliver(n models.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg := Message{Event: "notification", Data: n}
	for _, c := range h.clients[n.RecipientID] {
		select {
		case c.send <- msg:
		default:
			logrus.WithFields(logrus.Fields{
				"person_id": n.RecipientID,
				"conn_ptr":  fmt.Sprintf("%p", c.conn),
			}).Warn("Client send queue full, dropping notification.")
		}
	}
}

// writePump drains one client's queue. A failed write unregisters the connection.
func (h *Hub) writePump(personID uint, c *client) {
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"person_id": personID,
				"conn_ptr":  fmt.Sprintf("%p", c.conn),
			}).Info("Client write failed, unregistering.")
			h.Unregister(personID, c.conn)
			_ = c.conn.Close()
			return
		}
	}
}

// Register adds a connection for personID and starts its writer.
func (h *Hub) Register(personID uint, conn Conn) {
	c := &client{conn: conn, send: make(chan Message, clientBuffer)}

	h.mu.Lock()
	if _, ok := h.clients[personID]; !ok {
		h.clients[personID] = make(map[Conn]*client)
	}
	h.clients[personID][conn] = c
	h.mu.Unlock()

	go h.writePump(personID, c)
	logrus.WithFields(logrus.Fields{
		"person_id": personID,
		"conn_ptr":  fmt.Sprintf("%p", conn),
	}).Info("Client registered with notification hub.")
}

// Unregister removes a connection and stops its writer; the person entry goes
// with its last connection. Safe to call more than once.
func (h *Hub) Unregister(personID uint, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[personID]
	if !ok {
		return
	}
	if c, ok := clients[conn]; ok {
		close(c.send)
		delete(clients, conn)
	}
	if len(clients) == 0 {
		delete(h.clients, personID)
	}
}

// Connected reports how many connections personID has open.
func (h *Hub) Connected(personID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[personID])
}

// Publish queues notifications for delivery; a full queue drops them.
func (h *Hub) Publish(notifications ...models.Notification) {
	for _, n := range notifications {
		select {
		case h.broadcast <- n:
		default:
			logrus.WithField("person_id", n.RecipientID).Warn("Notification push queue full, dropping message.")
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, clients := range h.clients {
		for conn, c := range clients {
			close(c.send)
			_ = conn.Close()
		}
		delete(h.clients, id)
	}
}
