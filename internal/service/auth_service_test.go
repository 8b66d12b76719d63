package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pos-service/internal/auth"
	"github.com/spec-kit/pos-service/internal/config"
	"github.com/spec-kit/pos-service/internal/domain"
	"github.com/spec-kit/pos-service/internal/repository"
)

// Mock user repository for testing
type mockUserRepo struct {
	users       map[string]*domain.User
	nextID      int64
	lastSeen    map[int64]bool
	lastCleared map[int64]bool
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:       make(map[string]*domain.User),
		nextID:      1,
		lastSeen:    make(map[int64]bool),
		lastCleared: make(map[int64]bool),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, user *domain.User) error {
	for name, existing := range m.users {
		if existing.ID == user.ID {
			delete(m.users, name)
			m.users[user.Username] = user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockUserRepo) Delete(_ context.Context, id int64) error {
	for name, existing := range m.users {
		if existing.ID == id {
			delete(m.users, name)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if user, ok := m.users[username]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) List(_ context.Context, _ repository.Page) ([]domain.User, int64, error) {
	users := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, int64(len(users)), nil
}

func (m *mockUserRepo) TouchLastSeen(_ context.Context, id int64) error {
	m.lastSeen[id] = true
	return nil
}

func (m *mockUserRepo) ClearLastSeen(_ context.Context, id int64) error {
	m.lastCleared[id] = true
	return nil
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "service-test-secret",
			SessionTTLHours: 8,
			BcryptCost:      4, // minimum cost keeps tests fast
		},
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(testConfig(), repo)

	hash, err := auth.HashPassword("s3cret", 4)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &domain.User{
		Username: "alice", PasswordHash: hash, Role: domain.RoleAdmin,
	}))

	user, token, expiresAt, err := svc.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())
	assert.True(t, repo.lastSeen[user.ID])

	session := svc.TokenManager().ValidateSession(token)
	require.NotNil(t, session)
	assert.Equal(t, domain.RoleAdmin, session.Role)
}

func TestLoginPlainTextFallback(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(testConfig(), repo)

	// Rows created before the bcrypt migration store plain text.
	require.NoError(t, repo.Create(context.Background(), &domain.User{
		Username: "legacy", PasswordHash: "oldpassword", Role: domain.RoleCashier,
	}))

	_, token, _, err := svc.Login(context.Background(), "legacy", "oldpassword")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(testConfig(), repo)

	hash, err := auth.HashPassword("s3cret", 4)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &domain.User{
		Username: "alice", PasswordHash: hash, Role: domain.RoleAdmin,
	}))

	_, _, _, err = svc.Login(context.Background(), "alice", "wrong")
	assert.Error(t, err)

	_, _, _, err = svc.Login(context.Background(), "nobody", "s3cret")
	assert.Error(t, err)
}

func TestLogoutClearsPresence(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(testConfig(), repo)

	hash, err := auth.HashPassword("s3cret", 4)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &domain.User{
		Username: "alice", PasswordHash: hash, Role: domain.RoleAdmin,
	}))

	user, token, _, err := svc.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.True(t, repo.lastCleared[user.ID])

	// Logout with a bad token is a no-op, not an error.
	assert.NoError(t, svc.Logout(context.Background(), "garbage"))
}

func TestCreateUser(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(testConfig(), repo)

	user, err := svc.CreateUser(context.Background(), "bob", "pass123", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCashier, user.Role)
	assert.NotEqual(t, "pass123", user.PasswordHash)

	_, err = svc.CreateUser(context.Background(), "bob", "other", domain.RoleAdmin)
	assert.Error(t, err, "duplicate username must be rejected")

	_, err = svc.CreateUser(context.Background(), "carol", "pass123", "superuser")
	assert.Error(t, err, "unknown role must be rejected")
}

func TestUpdateUserRoleAndPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(testConfig(), repo)

	user, err := svc.CreateUser(context.Background(), "bob", "pass123", domain.RoleCashier)
	require.NoError(t, err)
	oldHash := user.PasswordHash

	updated, err := svc.UpdateUser(context.Background(), user.ID, domain.RoleAdmin, "newpass")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.NotEqual(t, oldHash, updated.PasswordHash)
	assert.True(t, auth.VerifyPassword(updated.PasswordHash, "newpass"))
}
