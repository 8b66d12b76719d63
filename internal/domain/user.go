package domain

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

// Valid reports whether the role is one of the known tags.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCashier
}

// User is an operator account (admin or cashier).
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	LastSeenAt   *time.Time
	CreatedAt    time.Time
}
