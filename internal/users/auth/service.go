// Copyright (c) 2026 Pofol. All rights reserved.

// Authentication use cases for the Folio platform.
//
// # Architecture
//
// The Service orchestrates domain entities and interacts with repositories
// through interfaces. It is technology-agnostic and does not know about
// HTTP or SQL.

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/pofol/folio/internal/platform/apperr"
	"github.com/pofol/folio/internal/platform/sec"
	"github.com/pofol/folio/internal/platform/validate"
)

// Client-safe failure messages. Both credential and token failures are
// deliberately generic to prevent account enumeration: a caller can never
// distinguish "wrong password" from "no such account", nor "expired token"
// from "token for a deleted account".
const (
	msgInvalidCredentials = "Invalid login credentials"
	msgInvalidToken       = "Invalid or expired token"
)

// Bootstrapper seeds an account's initial portfolio content right after
// signup (default profile page, greeting, location placeholders).
//
// # Why an interface?
//
// The profile domain owns the seeded content; auth only owns the moment it
// must happen. The interface keeps the dependency pointing outward.
type Bootstrapper interface {
	Bootstrap(ctx context.Context, user *User) error
}

// Service implements account authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, login,
// or token rotation logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenIssuer    *TokenIssuer
	bootstrapper   Bootstrapper
}

// NewService constructs a new auth [Service] with necessary dependencies.
// bootstrapper may be nil when no content seeding is wanted (tests).
func NewService(
	userRepo UserRepository,
	issuer *TokenIssuer,
	bootstrapper Bootstrapper,
) *Service {
	return &Service{
		userRepository: userRepo,
		tokenIssuer:    issuer,
		bootstrapper:   bootstrapper,
	}
}

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	LoginID  string
	Email    string
	Password string
	Nickname string
}

// Register validates, hashes, and persists a brand new account.
//
// # Parameters
//   - context: Context for the database operation.
//   - input: The user-provided registration details.
//
// # Returns
//   - A pointer to the newly created [*User].
//   - Returns [apperr.Conflict] if email or login ID already exists.
//
// # Business Rules
//   - Emails must be unique.
//   - Login IDs must be unique and must not contain "@".
//   - Default role is always USER.
//   - A default portfolio skeleton is seeded for the new account.
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	// ── 1. Input Validation ───────────────────────────────────────────────

	validator := &validate.Validator{}
	err := validator.
		Required("loginId", input.LoginID).
		LoginID("loginId", input.LoginID).
		MinLen("loginId", input.LoginID, 3).
		MaxLen("loginId", input.LoginID, 30).
		Required("email", input.Email).
		Email("email", input.Email).
		Required("password", input.Password).
		MinLen("password", input.Password, 8).
		Required("nickname", input.Nickname).
		MaxLen("nickname", input.Nickname, 50).
		Err()
	if err != nil {
		return nil, err
	}

	// ── 2. Uniqueness Checks ──────────────────────────────────────────────

	emailTaken, err := service.userRepository.ExistsByEmail(context, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_email_check_failed: %w", err)
	}
	if emailTaken {
		return nil, apperr.Conflict("Email is already registered")
	}

	loginIDTaken, err := service.userRepository.ExistsByLoginID(context, input.LoginID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_login_id_check_failed: %w", err)
	}
	if loginIDTaken {
		return nil, apperr.Conflict("Login ID is already taken")
	}

	// ── 3. Security ───────────────────────────────────────────────────────

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 4. Entity Construction ────────────────────────────────────────────

	user := &User{
		LoginID:      input.LoginID,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Nickname:     input.Nickname,
		Role:         sec.RoleUser, // Rule: Default role is always USER
	}

	// ── 5. Persistence ────────────────────────────────────────────────────

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	// ── 6. Content Seeding ────────────────────────────────────────────────

	if service.bootstrapper != nil {
		if err := service.bootstrapper.Bootstrap(context, user); err != nil {
			return nil, fmt.Errorf("auth_service_bootstrap_failed: %w", err)
		}
	}

	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Identifier string // Email when it contains "@", otherwise a login ID.
	Password   string
}

// TokenPair represents a successfully established session.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

// Login validates account credentials and issues a fresh credential pair.
//
// # Parameters
//   - context: Context for the database operation.
//   - input: Contains the identifier (email or login ID) and plain-text password.
//
// # Returns
//   - A pointer to [TokenPair] containing both credentials and the account.
//   - Returns [apperr.Unauthorized] if credentials do not match.
//
// # Flow
//  1. Route the identifier: an "@" means email, anything else is a login ID.
//  2. Verify the password hash using Bcrypt.
//  3. Issue an access and a refresh credential.
//  4. Store the refresh credential in the account's single refresh slot,
//     displacing any previous session.
func (service *Service) Login(context context.Context, input LoginInput) (*TokenPair, error) {
	// ── 1. Fetch Account ──────────────────────────────────────────────────

	var user *User
	var err error

	if strings.Contains(input.Identifier, "@") {
		user, err = service.userRepository.FindByEmail(context, input.Identifier)
	} else {
		user, err = service.userRepository.FindByLoginID(context, input.Identifier)
	}

	// Return generic unauthorized error to prevent account enumeration attacks.
	if err != nil {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	// ── 2. Security Verification ──────────────────────────────────────────

	// Bcrypt comparison is constant-time, preventing timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────

	accessToken, err := service.tokenIssuer.IssueAccess(user)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokenIssuer.IssueRefresh(user)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// ── 4. Session Binding ────────────────────────────────────────────────

	// Writing the slot unconditionally displaces any previous session:
	// one live refresh credential per account, ever.
	if err := service.userRepository.UpdateRefreshToken(context, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("auth_service_session_binding_failed: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh implements the refresh-token rotation mechanism.
//
// It verifies the presented refresh credential cryptographically, matches it
// byte-for-byte against the account's stored slot, then atomically swaps the
// slot to a newly minted credential. The old credential is spent the moment
// the swap lands, so replaying it fails.
//
// # Returns
//   - A pointer to [TokenPair] holding the NEW access and refresh credentials.
//   - Returns [apperr.Unauthorized] for any token failure: bad signature,
//     expiry, no matching slot, or losing a concurrent rotation race.
func (service *Service) Refresh(context context.Context, refreshToken string) (*TokenPair, error) {
	// ── 1. Cryptographic Verification ─────────────────────────────────────

	if _, err := service.tokenIssuer.Validate(refreshToken); err != nil {
		return nil, apperr.Unauthorized(msgInvalidToken)
	}

	// ── 2. Slot Match ─────────────────────────────────────────────────────

	// Byte-exact lookup: a signature-valid token whose slot was rotated or
	// cleared no longer identifies a session.
	user, err := service.userRepository.FindByRefreshToken(context, refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized(msgInvalidToken)
	}

	// ── 3. Issue Replacement Pair ─────────────────────────────────────────

	accessToken, err := service.tokenIssuer.IssueAccess(user)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_access_failed: %w", err)
	}

	newRefreshToken, err := service.tokenIssuer.IssueRefresh(user)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_issue_failed: %w", err)
	}

	// ── 4. Atomic Rotation ────────────────────────────────────────────────

	rotated, err := service.userRepository.RotateRefreshToken(context, user.ID, refreshToken, newRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("auth_service_rotation_failed: %w", err)
	}
	if !rotated {
		// A concurrent refresh with the same token won the swap; this
		// caller's credential is spent.
		return nil, apperr.Unauthorized(msgInvalidToken)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         user,
	}, nil
}

// Logout permanently terminates the account's session by clearing the
// refresh slot. Logout is idempotent: an unknown or already-spent token is
// treated as success.
func (service *Service) Logout(context context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	user, err := service.userRepository.FindByRefreshToken(context, refreshToken)
	if err != nil {
		// Session is already gone; logout succeeded from the client's view.
		return nil
	}

	if err := service.userRepository.ClearRefreshToken(context, user.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// LogoutAccount terminates the account's session by ID, for transports that
// never present the refresh credential (bearer-header clients). Clearing an
// already-empty slot is a no-op, so this is idempotent like [Service.Logout].
func (service *Service) LogoutAccount(context context.Context, userID int64) error {
	if err := service.userRepository.ClearRefreshToken(context, userID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// ResolveAccessToken verifies an access credential without touching storage.
//
// Best-effort by design: any failure yields nil, and the caller (the session
// middleware) decides whether to try a silent refresh instead.
func (service *Service) ResolveAccessToken(tokenString string) *sec.AuthClaims {
	claims, err := service.tokenIssuer.Validate(tokenString)
	if err != nil {
		return nil
	}
	return claims
}

// RefreshSession adapts [Service.Refresh] for the session middleware: it
// returns the raw credential strings plus claims describing the actor, so
// the middleware can rewrite cookies and annotate the request context.
func (service *Service) RefreshSession(ctx context.Context, refreshToken string) (string, string, *sec.AuthClaims, error) {
	pair, err := service.Refresh(ctx, refreshToken)
	if err != nil {
		return "", "", nil, err
	}

	claims := &sec.AuthClaims{
		UserID:   pair.User.ID,
		Email:    pair.User.Email,
		Nickname: pair.User.Nickname,
		Role:     string(pair.User.Role),
	}

	return pair.AccessToken, pair.RefreshToken, claims, nil
}
