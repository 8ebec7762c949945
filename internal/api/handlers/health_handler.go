package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Marga-Ghale/synergysphere-backend/internal/models"
	"github.com/Marga-Ghale/synergysphere-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// Health Handler
// ============================================

type Pinger interface {
	Ping(ctx context.Context) error
}

type ClientCounter interface {
	GetConnectedClientsCount() int
}

type HealthDeps struct {
	DB           Pinger
	Users        service.UserService
	Hub          ClientCounter
	Realtime     string // "redis" or "local"
	EmailEnabled bool
}

type HealthHandler struct {
	deps HealthDeps
}

func NewHealthHandler(deps HealthDeps) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// Ping - GET /api/health
func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: "SynergySphere Backend is running!"})
}

// DBTest - GET /api/db-test
func (h *HealthHandler) DBTest(c *gin.Context) {
	users, err := h.deps.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DBTestResponse{Success: true, Users: toUserResponses(users)})
}

// Status - GET /health
func (h *HealthHandler) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	health := "healthy"
	database := "connected"
	if err := h.deps.DB.Ping(ctx); err != nil {
		status = http.StatusServiceUnavailable
		health = "degraded"
		database = err.Error()
	}

	email := "disabled"
	if h.deps.EmailEnabled {
		email = "configured"
	}

	clients := 0
	if h.deps.Hub != nil {
		clients = h.deps.Hub.GetConnectedClientsCount()
	}

	c.JSON(status, gin.H{
		"status":     health,
		"timestamp":  time.Now(),
		"database":   database,
		"realtime":   h.deps.Realtime,
		"websocket":  "active",
		"ws_clients": clients,
		"email":      email,
	})
}
