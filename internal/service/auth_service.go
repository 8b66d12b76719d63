package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pos-service/internal/auth"
	"github.com/spec-kit/pos-service/internal/config"
	"github.com/spec-kit/pos-service/internal/domain"
	"github.com/spec-kit/pos-service/internal/repository"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// AuthService coordinates login, logout and operator account management.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login verifies credentials and mints a session credential. The same error
// is returned for an unknown username and a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	// Presence marker only; failure does not block the login.
	_ = s.users.TouchLastSeen(ctx, user.ID)

	return user, token, expiresAt, nil
}

// Logout clears the caller's presence marker. Tokens are stateless, so this
// has no bearing on credential validity; the client discards the token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	session := s.tokenMgr.ValidateSession(token)
	if session == nil {
		return nil
	}
	return s.users.ClearLastSeen(ctx, session.UserID)
}

// CreateUser registers an operator account with a hashed password.
func (s *AuthService) CreateUser(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	if role == "" {
		role = domain.RoleCashier
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role")
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("Username already exists")
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser changes an account's role and, when a password is supplied,
// rehashes it.
func (s *AuthService) UpdateUser(ctx context.Context, id int64, role domain.Role, password string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if role != "" {
		if !role.Valid() {
			return nil, apperrors.NewValidationError("unknown role")
		}
		user.Role = role
	}
	if password != "" {
		hash, err := auth.HashPassword(password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an operator account.
func (s *AuthService) DeleteUser(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

// ListUsers returns accounts without password material.
func (s *AuthService) ListUsers(ctx context.Context, page repository.Page) ([]domain.User, int64, error) {
	return s.users.List(ctx, page)
}

// TokenManager exposes the underlying token manager for the security gate.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
