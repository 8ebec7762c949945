// internal/socket/hub.go
package socket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Project messages
	MessageProjectCreated MessageType = "project_created"
	MessageProjectUpdated MessageType = "project_updated"
	MessageProjectDeleted MessageType = "project_deleted"

	// Task messages
	MessageTaskCreated  MessageType = "task_created"
	MessageTaskUpdated  MessageType = "task_updated"
	MessageTaskDeleted  MessageType = "task_deleted"
	MessageTaskAssigned MessageType = "task_assigned"
	MessageTaskDueSoon  MessageType = "task_due_soon"
	MessageTaskOverdue  MessageType = "task_overdue"

	// System messages
	MessagePing MessageType = "ping"
	MessagePong MessageType = "pong"
	MessageAck  MessageType = "ack"
)

// Room names
const (
	RoomProjects = "projects"
)

func ProjectRoom(projectID int64) string {
	return "project:" + itoa(projectID)
}

func UserRoom(userID int64) string {
	return "user:" + itoa(userID)
}

// Message represents a WebSocket message
type Message struct {
	Type      MessageType            `json:"type"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Client represents a connected WebSocket client
type Client struct {
	ID       string
	UserID   string // empty for anonymous connections
	Conn     *websocket.Conn
	Hub      *Hub
	Send     chan []byte
	Rooms    map[string]bool
	mu       sync.Mutex
	closed   bool // Send has been closed by the hub
	lastPing time.Time
}

// closeSend closes Send once. Callers hold the hub lock.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Hub maintains the set of active clients and fans messages out to rooms
type Hub struct {
	clients     map[*Client]bool
	roomClients map[string]map[*Client]bool

	register      chan *Client
	unregister    chan *Client
	roomBroadcast chan *RoomMessage

	// closed when Run returns
	done chan struct{}

	mu sync.RWMutex
}

// RoomMessage represents a message to be sent to a specific room
type RoomMessage struct {
	Room    string
	Message []byte
	Exclude string // User ID to exclude from broadcast
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:       make(map[*Client]bool),
		roomClients:   make(map[string]map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		roomBroadcast: make(chan *RoomMessage, 256),
		done:          make(chan struct{}),
	}
}

// Run starts the hub's main loop. It returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	log.Println("[Hub] WebSocket hub started")

	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			log.Println("[Hub] WebSocket hub stopped")
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case rm := <-h.roomBroadcast:
			h.broadcastToRoom(rm)

		case <-pingTicker.C:
			h.pingClients()
		}
	}
}

// Register hands a client to the hub loop.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	log.Printf("[Hub] ✅ Client registered: user=%s, id=%s, total_clients=%d",
		client.UserID, client.ID, len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)

	for room := range client.Rooms {
		if clients, ok := h.roomClients[room]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.roomClients, room)
			}
		}
	}

	client.closeSend()
	log.Printf("[Hub] ❌ Client disconnected: user=%s, id=%s, total_clients=%d",
		client.UserID, client.ID, len(h.clients))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.closeSend()
		delete(h.clients, client)
	}
	h.roomClients = make(map[string]map[*Client]bool)
}

// evict drops a client whose send buffer is full. It must not block the hub loop.
func (h *Hub) evict(c *Client) {
	go h.Unregister(c)
}

func (h *Hub) broadcastToRoom(rm *RoomMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.roomClients[rm.Room]
	if !ok {
		return
	}

	sentCount := 0
	for client := range clients {
		if rm.Exclude != "" && client.UserID == rm.Exclude {
			continue
		}
		select {
		case client.Send <- rm.Message:
			sentCount++
		default:
			h.evict(client)
		}
	}
	log.Printf("[Hub] Broadcast to room %s: sent to %d clients", rm.Room, sentCount)
}

func (h *Hub) pingClients() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, _ := json.Marshal(Message{
		Type:      MessagePing,
		Timestamp: time.Now(),
	})

	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			h.evict(client)
		}
	}
}

// ============================================
// Room Management
// ============================================

// JoinRoom adds a client to a room. Clients the hub has already dropped are ignored.
func (h *Hub) JoinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.mu.Lock()
	if client.closed {
		client.mu.Unlock()
		return
	}
	client.Rooms[room] = true
	client.mu.Unlock()

	if h.roomClients[room] == nil {
		h.roomClients[room] = make(map[*Client]bool)
	}
	h.roomClients[room][client] = true

	log.Printf("[Hub] 👥 Client joined room: user=%s, room=%s", client.UserID, room)
}

// LeaveRoom removes a client from a room
func (h *Hub) LeaveRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.mu.Lock()
	delete(client.Rooms, room)
	client.mu.Unlock()

	if clients, ok := h.roomClients[room]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.roomClients, room)
		}
	}

	log.Printf("[Hub] 👋 Client left room: user=%s, room=%s", client.UserID, room)
}

// ============================================
// Sending
// ============================================

// SendToRoom broadcasts a message to all clients in a room
func (h *Hub) SendToRoom(room string, msgType MessageType, payload map[string]interface{}, excludeUserID string) {
	data, err := json.Marshal(Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("[Hub] Error marshaling message: %v", err)
		return
	}

	select {
	case h.roomBroadcast <- &RoomMessage{Room: room, Message: data, Exclude: excludeUserID}:
	case <-h.done:
	}
}

// Deliver hands an event to the local clients of its room.
func (h *Hub) Deliver(ev Event) {
	h.SendToRoom(ev.Room, ev.Type, ev.Payload, ev.Exclude)
}

// ============================================
// Query Methods
// ============================================

// GetRoomClients returns the number of clients in a room
func (h *Hub) GetRoomClients(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.roomClients[room]; ok {
		return len(clients)
	}
	return 0
}

// GetConnectedClientsCount returns total connected clients
func (h *Hub) GetConnectedClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
