package dto

import (
	"time"

	"github.com/spec-kit/pos-service/internal/domain"
)

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is an account without password material.
type UserResponse struct {
	ID         int64       `json:"id"`
	Username   string      `json:"username"`
	Role       domain.Role `json:"role"`
	LastSeenAt *time.Time  `json:"last_seen_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// LoginResponse returns the account and its session credential.
type LoginResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

// NewUserResponse maps a domain user, dropping the password hash.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Role:       user.Role,
		LastSeenAt: user.LastSeenAt,
		CreatedAt:  user.CreatedAt,
	}
}

// CreateUserRequest payload for POST /api/users.
type CreateUserRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// UpdateUserRequest payload for PUT /api/users/:id.
type UpdateUserRequest struct {
	Role     domain.Role `json:"role"`
	Password string      `json:"password"`
}
