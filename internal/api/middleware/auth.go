package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/Marga-Ghale/synergysphere-backend/internal/service"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// AuthMiddleware validates JWT tokens and sets user context
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			log.Printf("❌ [Auth] Missing or malformed Authorization header - Path: %s", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		userID, err := authenticate(authService, tokenString)
		if err != nil {
			log.Printf("❌ [Auth] Invalid token - Path: %s, Error: %v", c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuthMiddleware allows requests without authentication but sets user context if present
func OptionalAuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		if userID, err := authenticate(authService, tokenString); err == nil {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func authenticate(authService service.AuthService, tokenString string) (int64, error) {
	token, err := authService.ValidateToken(tokenString)
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, service.ErrInvalidToken
	}
	return authService.GetUserIDFromToken(token)
}

// GetUserID returns the authenticated user, or nil for anonymous requests.
func GetUserID(c *gin.Context) *int64 {
	v, exists := c.Get(userIDKey)
	if !exists {
		return nil
	}
	id, ok := v.(int64)
	if !ok {
		return nil
	}
	return &id
}
