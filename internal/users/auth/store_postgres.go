// Copyright (c) 2026 Pofol. All rights reserved.

// PostgreSQL implementation of the account storage contract.
//
// # Architecture
//
// Repositories in this file are strictly separated from domain logic. They
// implement domain-defined interfaces (e.g., [UserRepository]) using the
// [pgxpool.Pool] connection manager.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pofol/folio/internal/platform/apperr"
)

const userColumns = `id, loginid, email, passwordhash, nickname, role, imageurl, bio, refreshtoken, createdat, updatedat`

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// scanUser maps a single account row into a [*User].
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.LoginID,
		&user.Email,
		&user.PasswordHash,
		&user.Nickname,
		&user.Role,
		&user.ImageURL,
		&user.Bio,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create persists a new account record into the users.account table.
//
// # Parameters
//   - ctx: Context for the database operation.
//   - user: The account entity to persist. ID is assigned by the database.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			loginid, email, passwordhash, nickname, role, imageurl, bio, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	err := repository.pool.QueryRow(ctx, query,
		user.LoginID,
		user.Email,
		user.PasswordHash,
		user.Nickname,
		user.Role,
		user.ImageURL,
		user.Bio,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

// FindByID retrieves an account record by its unique ID.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE id = $1`

	user, err := scanUser(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

// FindByLoginID retrieves an account record by its unique login identifier.
//
// # Returns
//
// Returns [*User] if found, or [apperr.NotFound] if no account exists.
func (repository *PostgresUserRepository) FindByLoginID(ctx context.Context, loginID string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE loginid = $1`

	user, err := scanUser(repository.pool.QueryRow(ctx, query, loginID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found with this login ID")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_login_id_failed: %w", err)
	}

	return user, nil
}

// FindByEmail retrieves an account record by its unique email address.
//
// # Returns
//
// Returns [*User] if found, or [apperr.NotFound] if no account exists.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE email = $1`

	user, err := scanUser(repository.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found with this email")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

// FindByRefreshToken retrieves the account whose refresh slot holds exactly
// the given token string.
func (repository *PostgresUserRepository) FindByRefreshToken(ctx context.Context, token string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE refreshtoken = $1`

	user, err := scanUser(repository.pool.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("No session matches this refresh token")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_refresh_token_failed: %w", err)
	}

	return user, nil
}

// ExistsByEmail reports whether any account is registered with the given email.
func (repository *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users.account WHERE email = $1)`

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_user_repo_exists_by_email_failed: %w", err)
	}

	return exists, nil
}

// ExistsByLoginID reports whether any account uses the given login identifier.
func (repository *PostgresUserRepository) ExistsByLoginID(ctx context.Context, loginID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users.account WHERE loginid = $1)`

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, loginID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_user_repo_exists_by_login_id_failed: %w", err)
	}

	return exists, nil
}

// UpdateProfile persists changes to an account's mutable profile fields.
func (repository *PostgresUserRepository) UpdateProfile(ctx context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET nickname = $2, imageurl = $3, bio = $4, updatedat = $5
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Nickname,
		user.ImageURL,
		user.Bio,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_profile_failed: %w", err)
	}

	return nil
}

// UpdateRefreshToken unconditionally writes the account's refresh slot.
func (repository *PostgresUserRepository) UpdateRefreshToken(ctx context.Context, userID int64, token string) error {
	const query = `
		UPDATE users.account
		SET refreshtoken = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(ctx, query, userID, token, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_refresh_token_failed: %w", err)
	}

	return nil
}

// RotateRefreshToken atomically swaps the refresh slot from current to next.
//
// # Concurrency
//
// The WHERE clause doubles as a compare-and-swap: the UPDATE only matches
// when the slot still holds the caller's token. Two concurrent refreshes
// with the same token race on this statement and exactly one wins; the
// loser observes zero affected rows and must treat its token as spent.
func (repository *PostgresUserRepository) RotateRefreshToken(ctx context.Context, userID int64, current, next string) (bool, error) {
	const query = `
		UPDATE users.account
		SET refreshtoken = $3, updatedat = $4
		WHERE id = $1 AND refreshtoken = $2`

	tag, err := repository.pool.Exec(ctx, query, userID, current, next, time.Now())
	if err != nil {
		return false, fmt.Errorf("postgres_user_repo_rotate_refresh_token_failed: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// ClearRefreshToken empties the account's refresh slot.
func (repository *PostgresUserRepository) ClearRefreshToken(ctx context.Context, userID int64) error {
	const query = `
		UPDATE users.account
		SET refreshtoken = NULL, updatedat = $2
		WHERE id = $1`

	_, err := repository.pool.Exec(ctx, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_clear_refresh_token_failed: %w", err)
	}

	return nil
}
