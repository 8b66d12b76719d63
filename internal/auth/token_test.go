package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pos-service/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: 42, Username: "alice", Role: domain.RoleAdmin}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 8*time.Hour)

	token, expiresAt, err := tm.Issue(testUser())
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	token, _, err := tm.Issue(testUser())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip each character of the signature segment in turn.
	sig := parts[2]
	for i := 0; i < len(sig); i++ {
		flipped := []byte(sig)
		if flipped[i] == 'A' {
			flipped[i] = 'B'
		} else {
			flipped[i] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(flipped)
		if tampered == token {
			continue
		}
		_, err := tm.Verify(tampered)
		assert.ErrorIs(t, err, ErrInvalidToken, "position %d", i)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", time.Hour)
	token, _, err := tm.Issue(testUser())
	require.NoError(t, err)

	other := NewTokenManager("secret-b", time.Hour)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)
	tm.ttl = -time.Minute // force an already-expired credential
	token, _, err := tm.Issue(testUser())
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	for _, token := range []string{
		"",
		"not-a-token",
		"only.two",
		"a.b.c.d",
		"!!!.???.***",
	} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestValidateSession(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	token, _, err := tm.Issue(&domain.User{ID: 7, Username: "bob", Role: domain.RoleCashier})
	require.NoError(t, err)

	session := tm.ValidateSession(token)
	require.NotNil(t, session)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, "bob", session.Username)
	assert.Equal(t, domain.RoleCashier, session.Role)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	assert.Nil(t, tm.ValidateSession(""))
	assert.Nil(t, tm.ValidateSession("garbage"))
}
