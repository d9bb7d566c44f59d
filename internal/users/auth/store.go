// Copyright (c) 2026 Pofol. All rights reserved.

package auth

import (
	"context"
)

// UserRepository defines the data access contract for user accounts.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently by the team.
//
// # Implementations
//
// The canonical implementation for Folio is PostgreSQL ([PostgresUserRepository]).
type UserRepository interface {
	// FindByID returns the account with the given ID.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByLoginID returns the account with the given login identifier.
	//
	// Returns [apperr.NotFound] if no account uses this identifier.
	FindByLoginID(ctx context.Context, loginID string) (*User, error)

	// FindByEmail returns the account with the given email.
	//
	// Returns [apperr.NotFound] if no account is registered with this email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByRefreshToken returns the account whose active refresh slot holds
	// exactly this token string. Byte-exact matching is the point: a rotated
	// or cleared slot no longer matches its old value.
	//
	// Returns [apperr.NotFound] if no account holds this token.
	FindByRefreshToken(ctx context.Context, token string) (*User, error)

	// ExistsByEmail reports whether any account uses the given email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByLoginID reports whether any account uses the given login identifier.
	ExistsByLoginID(ctx context.Context, loginID string) (bool, error)

	// Create persists a brand-new account to the storage.
	//
	// Returns a wrapped error if a unique constraint (email/loginId) fails.
	Create(ctx context.Context, user *User) error

	// UpdateProfile persists changes to mutable profile fields (Nickname,
	// ImageURL, Bio). Credentials are never touched by this method.
	UpdateProfile(ctx context.Context, user *User) error

	// UpdateRefreshToken unconditionally writes the account's refresh slot.
	// Used at login, where a fresh session replaces whatever came before.
	UpdateRefreshToken(ctx context.Context, userID int64, token string) error

	// RotateRefreshToken atomically swaps the refresh slot from current to
	// next, but only if the slot still holds current (compare-and-swap).
	//
	// Returns true when the swap happened. Returns false when the slot
	// changed underneath us — a concurrent refresh won, and this caller's
	// token is no longer valid.
	RotateRefreshToken(ctx context.Context, userID int64, current, next string) (bool, error)

	// ClearRefreshToken empties the account's refresh slot, terminating the
	// session permanently. Used at logout.
	ClearRefreshToken(ctx context.Context, userID int64) error
}
