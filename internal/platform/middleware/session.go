// Copyright (c) 2026 Pofol. All rights reserved.

// Session resolution middleware.
//
// # Architecture
//
// [Session] bridges stateless HTTP requests to an authenticated actor. It
// inspects the Authorization header and the session cookies, resolves a
// credential into [*sec.AuthClaims], and attaches those claims to the request
// context. When the access credential has expired but a valid refresh
// credential is present, it rotates the session transparently ("silent
// refresh") and rewrites both cookies in the same response.
//
// The middleware NEVER terminates a request. Every outcome, including total
// credential failure, falls through to the next handler; requests without a
// resolvable credential simply proceed as anonymous. Enforcement is the job
// of [RequireAuth] and [RequireRole], mounted per-route.

package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pofol/folio/internal/platform/constants"
	"github.com/pofol/folio/internal/platform/cookies"
	"github.com/pofol/folio/internal/platform/ctxutil"
	"github.com/pofol/folio/internal/platform/sec"
)

// SessionAuthenticator defines the behavior the session middleware needs
// from the auth service.
//
// # Why an interface?
//
// Defining SessionAuthenticator here decouples the middleware from the auth
// service implementation, allowing us to easily inject mocks during unit
// testing and avoiding an import cycle with the users/auth package.
type SessionAuthenticator interface {
	// ResolveAccessToken verifies an access credential.
	// Returns nil on any failure; the caller decides what comes next.
	ResolveAccessToken(tokenString string) *sec.AuthClaims

	// RefreshSession exchanges a refresh credential for a brand-new
	// credential pair, rotating the stored refresh slot.
	RefreshSession(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, claims *sec.AuthClaims, err error)
}

// Session resolves the acting identity for every request.
//
// # Flow
//  1. Skip: non-API paths and the public auth endpoints (signup, login,
//     refresh) pass through untouched — a stale cookie must never interfere
//     with an explicit login or refresh call.
//  2. Bearer: 'Authorization: Bearer <token>' wins when present. An
//     unresolvable bearer token means anonymous, and both session cookies
//     are cleared so stale browser state cannot linger behind the header.
//  3. Cookies: otherwise, try the access cookie. If it resolves, done.
//  4. Silent refresh: if the access cookie is missing or dead and a refresh
//     cookie exists, exchange it for a new pair and rewrite BOTH cookies.
//  5. Total failure: both cookies are dead — clear them so the browser stops
//     presenting them, and proceed as anonymous.
//
// In every branch the request continues down the chain.
func Session(authenticator SessionAuthenticator, policy cookies.Policy, accessTTL, refreshTTL time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Path Skip ──────────────────────────────────────────────────
			if !needsSession(request.URL.Path) {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Bearer Header ──────────────────────────────────────────────
			if bearer := bearerToken(request); bearer != "" {
				if claims := authenticator.ResolveAccessToken(bearer); claims != nil {
					next.ServeHTTP(writer, request.WithContext(
						ctxutil.WithActor(request.Context(), claims),
					))
					return
				}
				// The bearer credential is dead and no cookie fallback
				// applies: clear both cookies and proceed anonymous.
				policy.ClearSession(writer)
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Access Cookie ──────────────────────────────────────────────
			accessToken := cookieValue(request, constants.AccessTokenCookieName)
			refreshToken := cookieValue(request, constants.RefreshTokenCookieName)

			if accessToken == "" && refreshToken == "" {
				// No credentials at all: plain anonymous request.
				next.ServeHTTP(writer, request)
				return
			}

			if accessToken != "" {
				if claims := authenticator.ResolveAccessToken(accessToken); claims != nil {
					next.ServeHTTP(writer, request.WithContext(
						ctxutil.WithActor(request.Context(), claims),
					))
					return
				}
			}

			// ── 4. Silent Refresh ─────────────────────────────────────────────
			if refreshToken != "" {
				newAccess, newRefresh, claims, err := authenticator.RefreshSession(request.Context(), refreshToken)
				if err == nil {
					policy.Set(writer, constants.AccessTokenCookieName, newAccess, accessTTL)
					policy.Set(writer, constants.RefreshTokenCookieName, newRefresh, refreshTTL)

					next.ServeHTTP(writer, request.WithContext(
						ctxutil.WithActor(request.Context(), claims),
					))
					return
				}
			}

			// ── 5. Total Failure ──────────────────────────────────────────────
			policy.ClearSession(writer)
			next.ServeHTTP(writer, request)
		})
	}
}

// needsSession reports whether the path participates in session resolution.
// Public auth endpoints and non-API paths are skipped entirely.
func needsSession(path string) bool {
	if !strings.HasPrefix(path, constants.APIPathPrefix) {
		return false
	}
	for _, public := range constants.PublicAuthPaths {
		if path == public {
			return false
		}
	}
	return true
}

// bearerToken extracts the token from an 'Authorization: Bearer' header.
// Returns an empty string when the header is absent or malformed.
func bearerToken(request *http.Request) string {
	authHeader := request.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// cookieValue reads a cookie value, treating absence as empty.
func cookieValue(request *http.Request, name string) string {
	cookie, err := request.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
