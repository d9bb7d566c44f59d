// Copyright (c) 2026 Pofol. All rights reserved.

// Authorization guards for the Folio API router.
//
// # Architecture
//
// Guards run AFTER [Session] has resolved the actor. They are the only
// middleware allowed to terminate a request: [Session] itself never blocks,
// it only annotates. Route-level policy (which endpoints need which role)
// is declared in the router, not here.

package middleware

import (
	"net/http"

	"github.com/pofol/folio/internal/platform/apperr"
	"github.com/pofol/folio/internal/platform/ctxutil"
	"github.com/pofol/folio/internal/platform/respond"
	"github.com/pofol/folio/internal/platform/sec"
)

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Session].
//
// # Flow
//  1. Check if [*sec.AuthClaims] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetActor(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests if the authenticated user doesn't hold the required role.
//
// # Usage
//
// Must be registered in the router AFTER [Session]. It automatically implies
// [RequireAuth] so you don't need to mount both.
//
// # Flow
//  1. Check if [*sec.AuthClaims] exists in context (implies AuthN).
//  2. Check the actor's role against the target role. ADMIN satisfies
//     every check; USER satisfies only [sec.RoleUser].
//  3. If insufficient, abort with HTTP 403 Forbidden.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetActor(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			actorRole := sec.UserRole(claims.Role)
			if actorRole != role && !actorRole.IsAdmin() {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
