// Copyright (c) 2026 Pofol. All rights reserved.

/*
Package cookies centralizes the session cookie policy for the Folio API.

Every cookie the server writes goes through a [Policy], so attributes
(HttpOnly, Path, Secure, SameSite) are decided in exactly one place.
Handlers and middleware never construct [http.Cookie] values directly.
*/
package cookies

import (
	"net/http"
	"strings"
	"time"

	"github.com/pofol/folio/internal/platform/constants"
)

// # Cookie Policy

// Policy holds the environment-dependent cookie attributes.
//
// HttpOnly and Path are invariant and not configurable: credentials must
// never be readable from scripts, and both session cookies span the site.
type Policy struct {
	Secure   bool
	SameSite http.SameSite
}

// NewPolicy builds a [Policy] from configuration values.
// sameSite accepts "lax", "strict" or "none"; anything else falls back to lax.
func NewPolicy(secure bool, sameSite string) Policy {
	policy := Policy{Secure: secure, SameSite: http.SameSiteLaxMode}

	switch strings.ToLower(sameSite) {
	case "strict":
		policy.SameSite = http.SameSiteStrictMode
	case "none":
		policy.SameSite = http.SameSiteNoneMode
	}

	return policy
}

// Set writes a session cookie with the policy's attributes.
//
// # Parameters
//   - writer: The response to attach the Set-Cookie header to.
//   - name: The cookie name, e.g. [constants.AccessTokenCookieName].
//   - value: The signed credential string.
//   - maxAge: The cookie lifetime; mirrors the credential's own expiry.
func (policy Policy) Set(writer http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     constants.CookiePath,
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   policy.Secure,
		SameSite: policy.SameSite,
	})
}

// Clear expires a session cookie immediately.
// Attributes match [Policy.Set] so browsers treat it as the same cookie.
func (policy Policy) Clear(writer http.ResponseWriter, name string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     constants.CookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   policy.Secure,
		SameSite: policy.SameSite,
	})
}

// ClearSession expires both the access and refresh cookies.
func (policy Policy) ClearSession(writer http.ResponseWriter) {
	policy.Clear(writer, constants.AccessTokenCookieName)
	policy.Clear(writer, constants.RefreshTokenCookieName)
}
