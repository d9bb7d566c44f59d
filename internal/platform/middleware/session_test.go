// Copyright (c) 2026 Pofol. All rights reserved.

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pofol/folio/internal/platform/apperr"
	"github.com/pofol/folio/internal/platform/constants"
	"github.com/pofol/folio/internal/platform/cookies"
	"github.com/pofol/folio/internal/platform/ctxutil"
	"github.com/pofol/folio/internal/platform/middleware"
	"github.com/pofol/folio/internal/platform/sec"
)

// fakeAuthenticator is a scriptable SessionAuthenticator for middleware tests.
type fakeAuthenticator struct {
	validAccess  map[string]*sec.AuthClaims
	validRefresh map[string]*sec.AuthClaims

	resolveCalls int
	refreshCalls int
}

func (f *fakeAuthenticator) ResolveAccessToken(tokenString string) *sec.AuthClaims {
	f.resolveCalls++
	return f.validAccess[tokenString]
}

func (f *fakeAuthenticator) RefreshSession(_ context.Context, refreshToken string) (string, string, *sec.AuthClaims, error) {
	f.refreshCalls++
	claims, ok := f.validRefresh[refreshToken]
	if !ok {
		return "", "", nil, apperr.Unauthorized("Invalid or expired token")
	}
	return "new-access", "new-refresh", claims, nil
}

// captureHandler records the actor visible to the downstream handler.
type captureHandler struct {
	called bool
	actor  *sec.AuthClaims
}

func (h *captureHandler) ServeHTTP(_ http.ResponseWriter, request *http.Request) {
	h.called = true
	h.actor = ctxutil.GetActor(request.Context())
}

func newSessionChain(authenticator middleware.SessionAuthenticator) (*captureHandler, http.Handler) {
	policy := cookies.NewPolicy(false, "lax")
	capture := &captureHandler{}
	chain := middleware.Session(authenticator, policy, time.Hour, 7*24*time.Hour)(capture)
	return capture, chain
}

func setCookieByName(t *testing.T, recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestSession_SkipsNonAPIPaths(t *testing.T) {
	authenticator := &fakeAuthenticator{}
	capture, chain := newSessionChain(authenticator)

	request := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "whatever"})

	chain.ServeHTTP(httptest.NewRecorder(), request)

	assert.True(t, capture.called)
	assert.Nil(t, capture.actor)
	assert.Zero(t, authenticator.resolveCalls)
}

func TestSession_SkipsPublicAuthPaths(t *testing.T) {
	authenticator := &fakeAuthenticator{}

	for _, path := range constants.PublicAuthPaths {
		capture, chain := newSessionChain(authenticator)

		request := httptest.NewRequest(http.MethodPost, path, nil)
		request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: "stale"})

		recorder := httptest.NewRecorder()
		chain.ServeHTTP(recorder, request)

		assert.True(t, capture.called, "path: %s", path)
		assert.Nil(t, capture.actor, "path: %s", path)
		assert.Empty(t, recorder.Result().Cookies(), "path: %s", path)
	}

	assert.Zero(t, authenticator.resolveCalls)
	assert.Zero(t, authenticator.refreshCalls)
}

func TestSession_NoCredentials_Anonymous(t *testing.T) {
	authenticator := &fakeAuthenticator{}
	capture, chain := newSessionChain(authenticator)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	recorder := httptest.NewRecorder()

	chain.ServeHTTP(recorder, request)

	assert.True(t, capture.called)
	assert.Nil(t, capture.actor)
	// Anonymous requests must not trigger any cookie writes.
	assert.Empty(t, recorder.Result().Cookies())
}

func TestSession_BearerToken_Authenticated(t *testing.T) {
	claims := &sec.AuthClaims{UserID: 7, Email: "a@b.com"}
	authenticator := &fakeAuthenticator{
		validAccess: map[string]*sec.AuthClaims{"good-token": claims},
	}
	capture, chain := newSessionChain(authenticator)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer good-token")

	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, request)

	require.NotNil(t, capture.actor)
	assert.Equal(t, int64(7), capture.actor.UserID)
	assert.Empty(t, recorder.Result().Cookies())
}

func TestSession_BearerToken_InvalidClearsCookiesAndContinues(t *testing.T) {
	authenticator := &fakeAuthenticator{}
	capture, chain := newSessionChain(authenticator)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer junk")
	// Bearer wins even with cookies present; its failure is terminal and
	// must flush whatever session cookies linger behind the header.
	request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "cookie-access"})

	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, request)

	// The request still reaches the handler, anonymously.
	assert.True(t, capture.called)
	assert.Nil(t, capture.actor)

	accessCookie := setCookieByName(t, recorder, constants.AccessTokenCookieName)
	refreshCookie := setCookieByName(t, recorder, constants.RefreshTokenCookieName)
	require.NotNil(t, accessCookie)
	require.NotNil(t, refreshCookie)

	assert.Empty(t, accessCookie.Value)
	assert.Empty(t, refreshCookie.Value)
	assert.Negative(t, accessCookie.MaxAge)
	assert.Negative(t, refreshCookie.MaxAge)
}

func TestSession_AccessCookie_Authenticated(t *testing.T) {
	claims := &sec.AuthClaims{UserID: 7, Email: "a@b.com"}
	authenticator := &fakeAuthenticator{
		validAccess: map[string]*sec.AuthClaims{"cookie-access": claims},
	}
	capture, chain := newSessionChain(authenticator)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "cookie-access"})

	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, request)

	require.NotNil(t, capture.actor)
	assert.Equal(t, int64(7), capture.actor.UserID)
	// A live access cookie must not trigger rotation.
	assert.Zero(t, authenticator.refreshCalls)
	assert.Empty(t, recorder.Result().Cookies())
}

func TestSession_SilentRefresh_RewritesBothCookies(t *testing.T) {
	claims := &sec.AuthClaims{UserID: 7, Email: "a@b.com"}
	authenticator := &fakeAuthenticator{
		validRefresh: map[string]*sec.AuthClaims{"live-refresh": claims},
	}
	capture, chain := newSessionChain(authenticator)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "expired-access"})
	request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: "live-refresh"})

	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, request)

	require.NotNil(t, capture.actor)
	assert.Equal(t, int64(7), capture.actor.UserID)

	accessCookie := setCookieByName(t, recorder, constants.AccessTokenCookieName)
	refreshCookie := setCookieByName(t, recorder, constants.RefreshTokenCookieName)
	require.NotNil(t, accessCookie)
	require.NotNil(t, refreshCookie)

	assert.Equal(t, "new-access", accessCookie.Value)
	assert.Equal(t, "new-refresh", refreshCookie.Value)
	assert.True(t, accessCookie.HttpOnly)
	assert.True(t, refreshCookie.HttpOnly)
	assert.Equal(t, constants.CookiePath, accessCookie.Path)
	assert.Positive(t, accessCookie.MaxAge)
	assert.Positive(t, refreshCookie.MaxAge)
}

func TestSession_TotalFailure_ClearsCookiesAndContinues(t *testing.T) {
	authenticator := &fakeAuthenticator{}
	capture, chain := newSessionChain(authenticator)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "dead-access"})
	request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: "dead-refresh"})

	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, request)

	// The request must still reach the handler, anonymously.
	assert.True(t, capture.called)
	assert.Nil(t, capture.actor)

	accessCookie := setCookieByName(t, recorder, constants.AccessTokenCookieName)
	refreshCookie := setCookieByName(t, recorder, constants.RefreshTokenCookieName)
	require.NotNil(t, accessCookie)
	require.NotNil(t, refreshCookie)

	assert.Empty(t, accessCookie.Value)
	assert.Empty(t, refreshCookie.Value)
	assert.Negative(t, accessCookie.MaxAge)
	assert.Negative(t, refreshCookie.MaxAge)
}

func TestSession_RefreshOnly_NoAccessCookie(t *testing.T) {
	claims := &sec.AuthClaims{UserID: 7, Email: "a@b.com"}
	authenticator := &fakeAuthenticator{
		validRefresh: map[string]*sec.AuthClaims{"live-refresh": claims},
	}
	capture, chain := newSessionChain(authenticator)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: "live-refresh"})

	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, request)

	require.NotNil(t, capture.actor)
	assert.Equal(t, 1, authenticator.refreshCalls)
	assert.NotNil(t, setCookieByName(t, recorder, constants.AccessTokenCookieName))
	assert.NotNil(t, setCookieByName(t, recorder, constants.RefreshTokenCookieName))
}
