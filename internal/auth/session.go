package auth

import (
	"time"

	"github.com/spec-kit/pos-service/internal/domain"
)

// Session is the normalized identity attached to an admitted request.
type Session struct {
	UserID    int64
	Username  string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ValidateSession verifies the token and returns the session it carries, or
// nil when the token is invalid for any reason. Pure function of the token,
// the signing secret and the clock; no store lookup.
func (tm *TokenManager) ValidateSession(token string) *Session {
	if token == "" {
		return nil
	}
	claims, err := tm.Verify(token)
	if err != nil {
		return nil
	}
	session := &Session{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session
}
