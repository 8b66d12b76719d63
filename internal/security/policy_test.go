package security

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/pos-service/internal/domain"
)

func TestPolicyIsPublic(t *testing.T) {
	policy := DefaultPolicy()

	assert.True(t, policy.IsPublic("/api/auth/login"))
	assert.True(t, policy.IsPublic("/api/images"))
	assert.True(t, policy.IsPublic("/api/images/product-1-2.png"))
	assert.False(t, policy.IsPublic("/api/products"))
	assert.False(t, policy.IsPublic("/api/sales"))
}

func TestPolicyPermits(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		role domain.Role
		path string
		want bool
	}{
		{domain.RoleAdmin, "/api/products", true},
		{domain.RoleCashier, "/api/products", false},
		{domain.RoleAdmin, "/api/sales", true},
		{domain.RoleCashier, "/api/sales", true},
		{domain.RoleCashier, "/api/sales/123", true},
		{domain.RoleCashier, "/api/reports/summary", false},
		{domain.RoleAdmin, "/api/settings", true},
		{domain.RoleCashier, "/api/users", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, policy.Permits(tt.role, tt.path), "%s %s", tt.role, tt.path)
	}
}

func TestPolicyFailsClosed(t *testing.T) {
	policy := DefaultPolicy()

	// Unknown API paths fall back to admin-only, never open.
	assert.False(t, policy.IsPublic("/api/unknown"))
	assert.Equal(t, []domain.Role{domain.RoleAdmin}, policy.AllowedRoles("/api/unknown"))
	assert.True(t, policy.Permits(domain.RoleAdmin, "/api/unknown"))
	assert.False(t, policy.Permits(domain.RoleCashier, "/api/unknown"))
}

func TestPolicyNoRoleNeverPermits(t *testing.T) {
	policy := DefaultPolicy()

	assert.False(t, policy.Permits("", "/api/sales"))
	assert.False(t, policy.Permits("", "/api/unknown"))
}

func TestPolicyPrefixOrder(t *testing.T) {
	policy := NewPolicy([]Rule{
		{Prefix: "/api/reports/public", Public: true},
		{Prefix: "/api/reports", Roles: []domain.Role{domain.RoleAdmin}},
	})

	// First matching prefix wins, so the more specific rule must come first.
	assert.True(t, policy.IsPublic("/api/reports/public/daily"))
	assert.False(t, policy.IsPublic("/api/reports/summary"))
}
