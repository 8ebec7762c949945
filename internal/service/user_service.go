package service

import (
	"context"

	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
)

// ============================================
// User Service
// ============================================

type UserService interface {
	List(ctx context.Context) ([]*repository.User, error)
	GetByID(ctx context.Context, id int64) (*repository.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context) ([]*repository.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userService) GetByID(ctx context.Context, id int64) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
