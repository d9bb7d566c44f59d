// Copyright (c) 2026 Pofol. All rights reserved.

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pofol/folio/internal/platform/sec"
)

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer(sec.NewCodec("issuer-test-secret"), time.Hour, 7*24*time.Hour)
}

func TestTokenIssuer_AccessClaims(t *testing.T) {
	issuer := newTestIssuer()
	user := &User{ID: 7, Email: "a@b.com", Nickname: "dev", Role: sec.RoleUser}

	token, err := issuer.IssueAccess(user)
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "dev", claims.Nickname)
	assert.Equal(t, string(sec.RoleUser), claims.Role)
}

func TestTokenIssuer_RefreshClaims_AreNarrow(t *testing.T) {
	issuer := newTestIssuer()
	user := &User{ID: 7, Email: "a@b.com", Nickname: "dev", Role: sec.RoleAdmin}

	token, err := issuer.IssueRefresh(user)
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)

	// Refresh credentials identify the account and nothing more.
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Empty(t, claims.Nickname)
	assert.Empty(t, claims.Role)
}

func TestTokenIssuer_RefreshTokensAreUnique(t *testing.T) {
	issuer := newTestIssuer()
	user := &User{ID: 7, Email: "a@b.com"}

	first, err := issuer.IssueRefresh(user)
	require.NoError(t, err)
	second, err := issuer.IssueRefresh(user)
	require.NoError(t, err)

	// Back-to-back issuance for the same account must never collide.
	assert.NotEqual(t, first, second)
}

func TestTokenIssuer_RefreshOutlivesAccess(t *testing.T) {
	issuer := newTestIssuer()
	user := &User{ID: 7, Email: "a@b.com"}

	accessToken, err := issuer.IssueAccess(user)
	require.NoError(t, err)
	refreshToken, err := issuer.IssueRefresh(user)
	require.NoError(t, err)

	accessClaims, err := issuer.Validate(accessToken)
	require.NoError(t, err)
	refreshClaims, err := issuer.Validate(refreshToken)
	require.NoError(t, err)

	assert.True(t, refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt.Time))
}
