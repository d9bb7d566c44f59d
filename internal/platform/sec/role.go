// Copyright (c) 2026 Pofol. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Full control over every portfolio resource
	RoleAdmin UserRole = "ADMIN"

	// Default role for a registered portfolio owner
	RoleUser UserRole = "USER"
)

// IsAdmin reports whether the role grants administrative access.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// Valid reports whether the role is one of the known enumerated values.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}
