// internal/socket/handler.go
package socket

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

// Handler handles WebSocket connections
type Handler struct {
	Hub          *Hub
	JWTSecret    string
	AuthRequired bool
	upgrader     websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. An empty allowedOrigins list accepts any origin.
func NewHandler(hub *Hub, jwtSecret string, authRequired bool, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Handler{
		Hub:          hub,
		JWTSecret:    jwtSecret,
		AuthRequired: authRequired,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed[origin]
			},
		},
	}
}

// HandleWebSocket upgrades the request. The token comes from the query string because
// browser WebSocket clients cannot set headers; the Authorization header is a fallback.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	var userID string
	if tokenString != "" {
		id, err := h.userFromToken(tokenString)
		if err != nil {
			log.Printf("[WebSocket] Token rejected: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		userID = id
	} else if h.AuthRequired {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WebSocket] Upgrade error: %v", err)
		return
	}

	client := NewClient(h.Hub, userID, conn)
	h.Hub.Register(client)

	// Authenticated users get their personal room automatically
	if userID != "" {
		h.Hub.JoinRoom(client, "user:"+userID)
	}

	log.Printf("[WebSocket] ✅ Client connected: id=%s user=%q", client.ID, userID)

	go client.WritePump()
	go client.ReadPump()
}

func (h *Handler) userFromToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(h.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("no subject in token")
	}
	return sub, nil
}
