// Copyright (c) 2026 Pofol. All rights reserved.

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pofol/folio/internal/platform/constants"
	"github.com/pofol/folio/internal/platform/cookies"
	"github.com/pofol/folio/internal/platform/ctxutil"
	"github.com/pofol/folio/internal/platform/sec"
)

func newTestHandler(t *testing.T) (*Handler, *Service, *memoryUserRepository) {
	t.Helper()
	repo := newMemoryUserRepository()
	issuer := NewTokenIssuer(sec.NewCodec("handler-test-secret"), time.Hour, 7*24*time.Hour)
	service := NewService(repo, issuer, nil)
	handler := NewHandler(service, NewResolver(repo), cookies.NewPolicy(false, "lax"))
	return handler, service, repo
}

func responseCookie(t *testing.T, recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// A bearer-header client carries no cookies; logout must still clear the
// stored refresh slot, keyed by the actor the session middleware resolved.
func TestHandler_Logout_BearerOnlyClearsStoredSlot(t *testing.T) {
	handler, service, repo := newTestHandler(t)

	user, err := service.Register(context.Background(), RegisterInput{
		LoginID:  "dev7",
		Email:    "a@b.com",
		Password: "correct-horse",
		Nickname: "dev",
	})
	require.NoError(t, err)

	pair, err := service.Login(context.Background(), LoginInput{Identifier: "dev7", Password: "correct-horse"})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
	request = request.WithContext(ctxutil.WithActor(request.Context(), &sec.AuthClaims{
		UserID: user.ID,
		Email:  user.Email,
	}))

	recorder := httptest.NewRecorder()
	handler.logout(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	stored, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)

	// The pre-logout refresh token is permanently dead.
	_, err = service.Refresh(context.Background(), pair.RefreshToken)
	assert.Error(t, err)

	// Both cookies are cleared in the response.
	accessCookie := responseCookie(t, recorder, constants.AccessTokenCookieName)
	refreshCookie := responseCookie(t, recorder, constants.RefreshTokenCookieName)
	require.NotNil(t, accessCookie)
	require.NotNil(t, refreshCookie)
	assert.Negative(t, accessCookie.MaxAge)
	assert.Negative(t, refreshCookie.MaxAge)
}

// An anonymous logout with no credentials at all still succeeds and still
// clears the browser cookies.
func TestHandler_Logout_AnonymousIsStillSuccess(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	request := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
	recorder := httptest.NewRecorder()
	handler.logout(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	refreshCookie := responseCookie(t, recorder, constants.RefreshTokenCookieName)
	require.NotNil(t, refreshCookie)
	assert.Negative(t, refreshCookie.MaxAge)
}
