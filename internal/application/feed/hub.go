// Package feed pushes live clinic events (bookings, arrivals, payments)
// to connected browser clients over websockets.
package feed

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one live feed message. Seq increases monotonically per hub so a
// client that reconnects can detect missed events and refetch.
type Event struct {
	Seq      uint64      `json:"seq"`
	Type     string      `json:"type"`
	ClinicID string      `json:"clinic_id,omitempty"`
	Payload  interface{} `json:"payload,omitempty"`
	SentAt   time.Time   `json:"sent_at"`
}

// Event types published by the application services.
const (
	EventAppointmentCreated  = "appointment.created"
	EventAppointmentUpdated  = "appointment.updated"
	EventAppointmentArrived  = "appointment.arrived"
	EventAppointmentArchived = "appointment.archived"
	EventSaleCompleted       = "sale.completed"
	EventPrescriptionPaid    = "prescription.paid"
)

// Client is one websocket subscriber. Clients only receive events for the
// clinic they authenticated against.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan Event
	clinicID string
}

// Hub fans events out to subscribed clients. A single hub serves all
// clinics; routing is by the clinic ID stamped on each event.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	seq     uint64
	closed  bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Publish stamps the event with the next sequence number and queues it to
// every client subscribed to the event's clinic. Slow clients that cannot
// keep up are dropped rather than blocking the publisher.
func (h *Hub) Publish(eventType, clinicID string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	h.seq++
	ev := Event{
		Seq:      h.seq,
		Type:     eventType,
		ClinicID: clinicID,
		Payload:  payload,
		SentAt:   time.Now(),
	}

	for c := range h.clients {
		if c.clinicID != clinicID {
			continue
		}
		select {
		case c.send <- ev:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Subscribe registers a websocket connection for a clinic and starts its
// read and write pumps. The call returns immediately.
func (h *Hub) Subscribe(conn *websocket.Conn, clinicID string) *Client {
	c := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan Event, 64),
		clinicID: clinicID,
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()
	go c.readPump()
	return c
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Seq returns the sequence number of the last published event.
func (h *Hub) Seq() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.seq
}

// Close disconnects all clients and stops accepting publishes.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound messages; the feed is one-way. It exists to
// process control frames and to notice when the peer goes away.
func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
