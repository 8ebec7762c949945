package models

import "time"

// ============================================
// Common DTOs
// ============================================

type MessageResponse struct {
	Message string `json:"message"`
}

type CreatedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// ============================================
// User DTOs
// ============================================

type UserResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type DBTestResponse struct {
	Success bool           `json:"success"`
	Users   []UserResponse `json:"users"`
}
