// Copyright (c) 2026 Pofol. All rights reserved.

// Package auth owns the account entity and every authentication use case of
// the Folio platform.
//
// # Architecture
//
// Entities in this package represent the "Truth" of the system.
// They have no dependencies on outer layers (like databases, APIs, or libraries).
// This makes the core logic highly testable and resilient to technology changes.
package auth

import (
	"time"

	"github.com/pofol/folio/internal/platform/sec"
)

// User represents a registered account on the Folio platform.
//
// # Rules
//   - LoginID is unique and never contains "@" (so it cannot shadow an email).
//   - Email is unique and validated.
//   - PasswordHash is generated via Bcrypt exclusively via the auth Service.
//   - RefreshToken is the account's single active refresh credential. A nil
//     value means the account has no live session. Issuing a new refresh
//     credential overwrites the previous one, so at most one refresh token
//     per account is ever honored.
type User struct {
	ID           int64        `json:"id"`
	LoginID      string       `json:"loginId"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Nickname     string       `json:"nickname"`
	Role         sec.UserRole `json:"role"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	RefreshToken *string      `json:"-"` // Single refresh slot. Omitted for security.
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// IsAdmin reports whether the account holds the ADMIN role.
func (user *User) IsAdmin() bool {
	return user.Role.IsAdmin()
}
