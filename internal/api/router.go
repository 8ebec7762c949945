package api

import (
	"time"

	"github.com/Marga-Ghale/synergysphere-backend/internal/api/handlers"
	"github.com/Marga-Ghale/synergysphere-backend/internal/api/middleware"
	"github.com/Marga-Ghale/synergysphere-backend/internal/config"
	"github.com/Marga-Ghale/synergysphere-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Config    *config.Config
	Auth      service.AuthService
	Handlers  *handlers.Handlers
	Health    *handlers.HealthHandler
	WebSocket gin.HandlerFunc
}

// NewRouter wires middleware and every route onto a gin engine.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	r.Use(cors.New(corsConfig(deps.Config.AllowedOrigins)))

	r.GET("/health", deps.Health.Status)

	api := r.Group("/api")
	{
		api.GET("/health", deps.Health.Ping)
		api.GET("/db-test", deps.Health.DBTest)
		if deps.WebSocket != nil {
			api.GET("/ws", deps.WebSocket)
		}

		protected := api.Group("")
		if deps.Config.AuthRequired {
			protected.Use(middleware.AuthMiddleware(deps.Auth))
		} else {
			protected.Use(middleware.OptionalAuthMiddleware(deps.Auth))
		}

		h := deps.Handlers

		projects := protected.Group("/projects")
		{
			projects.GET("", h.Project.List)
			projects.POST("", h.Project.Create)
			projects.GET("/:id", h.Project.Get)
			projects.PUT("/:id", h.Project.Update)
			projects.PATCH("/:id/status", h.Project.UpdateStatus)
			projects.PATCH("/:id/pin", h.Project.Pin)
			projects.DELETE("/:id", h.Project.Delete)
			projects.GET("/:id/image", h.Project.Image)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.POST("", h.Task.Create)
			tasks.GET("/project/:projectId", h.Task.ListByProject)
			tasks.GET("/my-tasks/:userId", h.Task.ListByAssignee)
			tasks.GET("/:taskId", h.Task.Get)
			tasks.PUT("/:taskId", h.Task.Update)
			tasks.PATCH("/:taskId/status", h.Task.UpdateStatus)
			tasks.DELETE("/:taskId", h.Task.Delete)
		}

		users := protected.Group("/users")
		{
			users.GET("", h.User.List)
			users.GET("/:id", h.User.Get)
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowWildcard = true
	cfg.AllowCredentials = true
	return cfg
}
