// Copyright (c) 2026 Pofol. All rights reserved.

package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pofol/folio/internal/platform/sec"
)

// TokenIssuer mints the two credential kinds the platform uses.
//
// # Claim Shapes
//
// Access credentials carry identity plus display data (userId, email,
// nickname, role) so handlers can authorize and render without a database
// hit. Refresh credentials deliberately carry only userId and email: they
// exist to re-identify the account, and a narrower payload keeps a leaked
// long-lived token less useful.
type TokenIssuer struct {
	codec      *sec.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenIssuer constructs a [TokenIssuer] bound to one codec and the
// configured credential lifetimes.
func NewTokenIssuer(codec *sec.Codec, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccess mints a short-lived access credential for the account.
func (issuer *TokenIssuer) IssueAccess(user *User) (string, error) {
	claims := &sec.AuthClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Nickname: user.Nickname,
		Role:     string(user.Role),
	}

	token, err := issuer.codec.Encode(claims, issuer.accessTTL)
	if err != nil {
		return "", fmt.Errorf("token_issuer_access_failed: %w", err)
	}

	return token, nil
}

// IssueRefresh mints a long-lived refresh credential for the account.
//
// Each refresh credential carries a unique token ID (jti). Timestamps have
// second precision, so without it two credentials minted back-to-back for
// the same account would serialize to the same string — and rotation must
// always produce a token distinct from the one it replaces.
func (issuer *TokenIssuer) IssueRefresh(user *User) (string, error) {
	claims := &sec.AuthClaims{
		UserID: user.ID,
		Email:  user.Email,
	}
	claims.ID = uuid.NewString()

	token, err := issuer.codec.Encode(claims, issuer.refreshTTL)
	if err != nil {
		return "", fmt.Errorf("token_issuer_refresh_failed: %w", err)
	}

	return token, nil
}

// Validate decodes and verifies a credential of either kind.
//
// # Returns
//   - *sec.AuthClaims: The embedded claims when the credential is valid.
//   - error: One of the sec sentinel errors otherwise.
func (issuer *TokenIssuer) Validate(tokenString string) (*sec.AuthClaims, error) {
	return issuer.codec.Decode(tokenString)
}

// AccessTTL returns the configured access credential lifetime.
func (issuer *TokenIssuer) AccessTTL() time.Duration {
	return issuer.accessTTL
}

// RefreshTTL returns the configured refresh credential lifetime.
func (issuer *TokenIssuer) RefreshTTL() time.Duration {
	return issuer.refreshTTL
}
