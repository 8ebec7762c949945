package service

import (
	"errors"

	"github.com/Marga-Ghale/synergysphere-backend/internal/config"
	"github.com/Marga-Ghale/synergysphere-backend/internal/notification"
	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/Marga-Ghale/synergysphere-backend/internal/socket"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth        AuthService
	User        UserService
	Project     ProjectService
	Task        TaskService
	Broadcaster *socket.Broadcaster
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	NotifSvc    *notification.Service
	Broadcaster *socket.Broadcaster
}

func NewServices(deps *ServiceDeps) *Services {
	return &Services{
		Auth: NewAuthService(deps.Config.JWTSecret),
		User: NewUserService(deps.Repos.UserRepo),
		Project: NewProjectService(
			deps.Repos.ProjectRepo,
			deps.Repos.TaskRepo,
			deps.Broadcaster,
			deps.Config.DefaultUserID,
		),
		Task: NewTaskService(
			deps.Repos.TaskRepo,
			deps.Repos.ProjectRepo,
			deps.Repos.UserRepo,
			deps.NotifSvc,
			deps.Broadcaster,
			deps.Config.DefaultUserID,
		),
		Broadcaster: deps.Broadcaster,
	}
}

// creatorOf picks the explicit creator, then the authenticated user, then the fallback.
func creatorOf(explicit, actor *int64, fallback int64) int64 {
	if explicit != nil {
		return *explicit
	}
	if actor != nil {
		return *actor
	}
	return fallback
}
