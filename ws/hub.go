package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Dashboard event types
const (
	EventTableOpen      = "table_open"
	EventTableClose     = "table_close"
	EventDiningTick     = "dining_tick"
	EventOrderCreate    = "order_create"
	EventOrderComplete  = "order_complete"
	EventBillUpdate     = "bill_update"
	EventBillArchived   = "bill_archived"
	EventWaitlistUpdate = "waitlist_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected dashboard client and fans broadcasts out to them.
type Hub struct {
	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]bool),
}

// RegisterClient adds a connection to the broadcast set.
func RegisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = true
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// ClientCount returns the number of connected dashboard clients.
func ClientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

// BroadcastMessage sends an event to every connected client. Clients that
// fail a write are dropped.
func BroadcastMessage(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ws: marshal %s failed: %v", msg.Event, err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("ws: write failed, dropping client: %v", err)
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}

// Broadcast is shorthand for BroadcastMessage with an event name and payload.
func Broadcast(event string, data interface{}) {
	BroadcastMessage(Message{Event: event, Data: data})
}
