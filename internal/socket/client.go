// internal/socket/client.go
package socket

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WebSocket connection constants
const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer (4KB)
	maxMessageSize int64 = 4096
)

// ClientMessage represents an incoming message from a client
type ClientMessage struct {
	Action string `json:"action"`
	Room   string `json:"room,omitempty"`
}

// NewClient creates a new WebSocket client
func NewClient(hub *Hub, userID string, conn *websocket.Conn) *Client {
	return &Client{
		ID:       uuid.New().String(),
		UserID:   userID,
		Conn:     conn,
		Hub:      hub,
		Send:     make(chan []byte, 256),
		Rooms:    make(map[string]bool),
		lastPing: time.Now(),
	}
}

// ReadPump pumps messages from the WebSocket connection to the hub
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		c.lastPing = time.Now()
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Client] WebSocket error for client %s: %v", c.ID, err)
			}
			break
		}
		c.handleMessage(message)
	}
}

// WritePump pumps messages from the hub to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("[Client] Error parsing message from client %s: %v", c.ID, err)
		return
	}

	switch msg.Action {
	case "join":
		if c.canJoin(msg.Room) {
			c.Hub.JoinRoom(c, msg.Room)
			c.sendAck("joined", msg.Room)
		}

	case "leave":
		if msg.Room != "" {
			c.Hub.LeaveRoom(c, msg.Room)
			c.sendAck("left", msg.Room)
		}

	case "ping":
		c.lastPing = time.Now()
		c.sendPong()

	case "pong":
		c.lastPing = time.Now()

	default:
		log.Printf("[Client] Unknown action: %s from client: %s", msg.Action, c.ID)
	}
}

// canJoin accepts the shared projects room, project:<id> rooms and the client's own user room.
func (c *Client) canJoin(room string) bool {
	if room == RoomProjects {
		return true
	}
	if id, ok := strings.CutPrefix(room, "user:"); ok {
		return c.UserID != "" && id == c.UserID
	}
	if id, ok := strings.CutPrefix(room, "project:"); ok {
		_, err := strconv.ParseInt(id, 10, 64)
		return err == nil
	}
	return false
}

func (c *Client) sendAck(action, room string) {
	c.trySend(Message{
		Type: MessageAck,
		Payload: map[string]interface{}{
			"action": action,
			"room":   room,
		},
		Timestamp: time.Now(),
	})
}

func (c *Client) sendPong() {
	c.trySend(Message{
		Type: MessagePong,
		Payload: map[string]interface{}{
			"time": time.Now().Unix(),
		},
		Timestamp: time.Now(),
	})
}

func (c *Client) trySend(msg Message) {
	data, _ := json.Marshal(msg)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
		log.Printf("[Client] Failed to send %s to client %s", msg.Type, c.ID)
	}
}
