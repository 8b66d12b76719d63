package security

import (
	"strings"

	"github.com/spec-kit/pos-service/internal/domain"
)

// Rule grants a set of roles access to every path under a prefix. Public
// rules require no authentication at all.
type Rule struct {
	Prefix string
	Roles  []domain.Role
	Public bool
}

// Policy is an ordered route-permission table. Resolution checks for an
// exact prefix match first, then walks the rules in declaration order and
// takes the first whose prefix the path starts with. Anything unmatched is
// admin-only: the default is fail-closed, never open.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from rules. Order matters: more specific
// prefixes must be declared before broader ones that would shadow them.
func NewPolicy(rules []Rule) *Policy {
	return &Policy{rules: rules}
}

// DefaultPolicy is the route table for the POS API surface. Product images
// are public so the sales screen can render without a token.
func DefaultPolicy() *Policy {
	return NewPolicy([]Rule{
		{Prefix: "/api/auth/login", Public: true},
		{Prefix: "/api/images", Public: true},
		{Prefix: "/api/sales", Roles: []domain.Role{domain.RoleAdmin, domain.RoleCashier}},
		{Prefix: "/api/products", Roles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/api/categories", Roles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/api/suppliers", Roles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/api/expenses", Roles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/api/users", Roles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/api/settings", Roles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/api/reports", Roles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/api/purchase-orders", Roles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/api/loans", Roles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/api/borrowed-items", Roles: []domain.Role{domain.RoleAdmin}},
	})
}

func (p *Policy) resolve(path string) *Rule {
	for i := range p.rules {
		if p.rules[i].Prefix == path {
			return &p.rules[i]
		}
	}
	for i := range p.rules {
		if strings.HasPrefix(path, p.rules[i].Prefix) {
			return &p.rules[i]
		}
	}
	return nil
}

// IsPublic reports whether the path requires no authentication.
func (p *Policy) IsPublic(path string) bool {
	rule := p.resolve(path)
	return rule != nil && rule.Public
}

// AllowedRoles returns the roles permitted to invoke the path.
func (p *Policy) AllowedRoles(path string) []domain.Role {
	rule := p.resolve(path)
	if rule == nil {
		return []domain.Role{domain.RoleAdmin}
	}
	return rule.Roles
}

// Permits reports whether the role may invoke the path. An empty role never
// permits on a non-public path.
func (p *Policy) Permits(role domain.Role, path string) bool {
	if role == "" {
		return false
	}
	for _, allowed := range p.AllowedRoles(path) {
		if allowed == role {
			return true
		}
	}
	return false
}
