// Copyright (c) 2026 Pofol. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pofol/folio/internal/platform/config"
	"github.com/pofol/folio/internal/platform/constants"
	"github.com/pofol/folio/internal/platform/cookies"
	"github.com/pofol/folio/internal/platform/middleware"
	"github.com/pofol/folio/internal/portfolio/category"
	"github.com/pofol/folio/internal/portfolio/post"
	"github.com/pofol/folio/internal/portfolio/profile"
	"github.com/pofol/folio/internal/portfolio/tab"
	"github.com/pofol/folio/internal/portfolio/tag"
	"github.com/pofol/folio/internal/storage"
	"github.com/pofol/folio/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the account lifecycle (signup, login, refresh, logout).
	Auth *auth.Handler

	// Category handles portfolio categories.
	Category *category.Handler

	// Tab handles category tabs and the basic-tab pair.
	Tab *tab.Handler

	// Post handles tab posts, view counts, and category introductions.
	Post *post.Handler

	// Tag handles category tags.
	Tag *tag.Handler

	// Profile handles the landing page: main block, skill cards, location.
	Profile *profile.Handler

	// Storage handles file uploads and presigned downloads.
	Storage *storage.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The session middleware runs on every /api/ request and only ever annotates
// the context; per-route authorization stays in the handlers and the
// [middleware.RequireAuth] guards.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, authenticator middleware.SessionAuthenticator, policy cookies.Policy, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Session(authenticator, policy, cfg.AccessTokenTTL, cfg.RefreshTokenTTL))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/users", h.Auth.Routes())

		h.Category.RegisterRoutes(api)
		h.Tab.RegisterRoutes(api)
		h.Post.RegisterRoutes(api)
		h.Tag.RegisterRoutes(api)
		h.Profile.RegisterRoutes(api)
		h.Storage.RegisterRoutes(api)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
