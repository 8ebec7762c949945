package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/synergysphere-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// User Handler
// ============================================

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List - GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponses(users))
}

// Get - GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}
