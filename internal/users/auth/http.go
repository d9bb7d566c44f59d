// Copyright (c) 2026 Pofol. All rights reserved.

// HTTP delivery layer for the account lifecycle.
//
// # Architecture
//
// Handlers act as the "gatekeepers" to the system. They are responsible for:
//   - JSON Request parsing and strict input validation.
//   - Mapping HTTP contexts to service layer method calls.
//   - Standardizing JSON response formats via the [respond] package.
//
// They contain NO business logic or database queries.

package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pofol/folio/internal/platform/constants"
	"github.com/pofol/folio/internal/platform/cookies"
	"github.com/pofol/folio/internal/platform/middleware"
	requestutil "github.com/pofol/folio/internal/platform/request"
	"github.com/pofol/folio/internal/platform/respond"
	"github.com/pofol/folio/internal/platform/validate"
)

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the account lifecycle entry
// points (signup, login, refresh, logout) plus identity introspection.
type Handler struct {
	authService *Service
	resolver    *Resolver
	policy      cookies.Policy
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, resolver *Resolver, policy cookies.Policy) *Handler {
	return &Handler{
		authService: service,
		resolver:    resolver,
		policy:      policy,
	}
}

// Routes returns a [chi.Router] configured with account lifecycle routes.
//
// # Endpoints
//   - POST /signup        : Creates a new account.
//   - POST /login         : Authenticates and sets both session cookies.
//   - POST /refresh       : Rotates the session, returning a fresh pair.
//   - POST /logout        : Terminates the session and clears cookies.
//   - GET  /me            : Returns the acting account (fresh from storage).
//   - GET  /check-email   : Reports email availability.
//   - GET  /check-loginId : Reports login ID availability.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)
	router.With(middleware.RequireAuth).Get("/me", handler.me)
	router.Get("/check-email", handler.checkEmail)
	router.Get("/check-loginId", handler.checkLoginID)

	return router
}

// signupRequest represents the JSON payload expected for account creation.
type signupRequest struct {
	LoginID  string `json:"loginId"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// signup handles POST /api/v1/users/signup requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the account profile.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 409 Conflict if email/loginId is taken.
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input signupRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	// Field validation, uniqueness checks, and Bcrypt hashing all live in
	// the service; domain errors map to status codes in respond.Error.
	user, err := handler.authService.Register(request.Context(), RegisterInput{
		LoginID:  input.LoginID,
		Email:    input.Email,
		Password: input.Password,
		Nickname: input.Nickname,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, user)
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Identifier string `json:"identifier"` // Email or login ID
	Password   string `json:"password"`
}

// login handles POST /api/v1/users/login requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with the account profile, and sets the
//     accessToken and refreshToken cookies.
//   - Writes HTTP 401 Unauthorized for bad credentials.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if input.Identifier == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError("identifier/password", "are required"))
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	pair, err := handler.authService.Login(request.Context(), LoginInput{
		Identifier: input.Identifier,
		Password:   input.Password,
	})
	if err != nil {
		// HTTP 401 without leaking the reason (wrong pass vs unknown account).
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Session Cookies ────────────────────────────────────────────────

	handler.setSessionCookies(writer, pair)

	respond.OK(writer, map[string]any{
		"accessToken": pair.AccessToken,
		"user":        pair.User,
	})
}

// refresh handles POST /api/v1/users/refresh requests.
//
// The refresh credential is read from the cookie first, falling back to the
// JSON body for non-browser clients. On success BOTH cookies are rewritten
// with the new pair; the old refresh credential is spent.
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Credential Extraction ──────────────────────────────────────────

	refreshToken := ""
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		refreshToken = cookie.Value
	}

	if refreshToken == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(request.Body).Decode(&body); err == nil {
			refreshToken = body.RefreshToken
		}
	}

	if refreshToken == "" {
		respond.Error(writer, request, validate.RequiredError("refreshToken", "is required"))
		return
	}

	// ── 2. Rotation ───────────────────────────────────────────────────────

	pair, err := handler.authService.Refresh(request.Context(), refreshToken)
	if err != nil {
		// A dead session must not linger in the browser.
		handler.policy.ClearSession(writer)
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Session Cookies ────────────────────────────────────────────────

	handler.setSessionCookies(writer, pair)

	respond.OK(writer, map[string]any{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// logout handles POST /api/v1/users/logout requests.
//
// The stored refresh slot is cleared by the presented refresh cookie when
// there is one, otherwise by the acting account the session middleware
// resolved — bearer-header clients carry no cookies, and their slot must
// die all the same. Always clears both cookies and always reports success:
// logout of an already-dead session is not an error.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	refreshToken := ""
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		refreshToken = cookie.Value
	}

	var err error
	switch {
	case refreshToken != "":
		err = handler.authService.Logout(request.Context(), refreshToken)
	default:
		if actor := requestutil.Actor(request); actor != nil {
			err = handler.authService.LogoutAccount(request.Context(), actor.UserID)
		}
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.policy.ClearSession(writer)
	respond.OK(writer, map[string]string{"status": "logged out"})
}

// me handles GET /api/v1/users/me requests.
//
// Returns the acting account loaded fresh from storage, not the (possibly
// stale) claim snapshot. Route is guarded by RequireAuth in the router.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.resolver.Current(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// checkEmail handles GET /api/v1/users/check-email?email= requests.
func (handler *Handler) checkEmail(writer http.ResponseWriter, request *http.Request) {
	email := request.URL.Query().Get("email")
	if email == "" {
		respond.Error(writer, request, validate.RequiredError("email", "is required"))
		return
	}

	taken, err := handler.authService.userRepository.ExistsByEmail(request.Context(), email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"available": !taken})
}

// checkLoginID handles GET /api/v1/users/check-loginId?loginId= requests.
func (handler *Handler) checkLoginID(writer http.ResponseWriter, request *http.Request) {
	loginID := request.URL.Query().Get("loginId")
	if loginID == "" {
		respond.Error(writer, request, validate.RequiredError("loginId", "is required"))
		return
	}

	taken, err := handler.authService.userRepository.ExistsByLoginID(request.Context(), loginID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"available": !taken})
}

// setSessionCookies writes both credential cookies for a freshly issued pair.
// Cookie lifetimes mirror the credentials' own expiry.
func (handler *Handler) setSessionCookies(writer http.ResponseWriter, pair *TokenPair) {
	handler.policy.Set(writer, constants.AccessTokenCookieName, pair.AccessToken, handler.authService.tokenIssuer.AccessTTL())
	handler.policy.Set(writer, constants.RefreshTokenCookieName, pair.RefreshToken, handler.authService.tokenIssuer.RefreshTTL())
}
