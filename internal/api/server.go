// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
page and action handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost presentation boundary.
  - It acts as the composition root for the HTTP transport (chi router).
  - Only this package and cmd/web are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taibuivan/postly/internal/auth"
	"github.com/taibuivan/postly/internal/platform/apperr"
	"github.com/taibuivan/postly/internal/platform/config"
	"github.com/taibuivan/postly/internal/platform/constants"
	"github.com/taibuivan/postly/internal/platform/middleware"
	"github.com/taibuivan/postly/internal/platform/respond"
	"github.com/taibuivan/postly/internal/post"
	"github.com/taibuivan/postly/internal/user"
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

// Handlers groups all HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when the content API and Redis answer.
	Readiness http.HandlerFunc

	// Metrics exposes the Prometheus registry.
	Metrics http.Handler

	// Auth handles login, registration, logout, and the current session.
	Auth *auth.Handler

	// Post serves the feed and post pages and their actions.
	Post *post.Handler

	// User serves profile pages.
	User *user.Handler
}

// Dependencies holds the cross-cutting collaborators of the middleware chain.
type Dependencies struct {
	// Sessions resolves the "jwt" cookie into the request user.
	Sessions middleware.SessionResolver

	// Registerer receives the inbound request metrics.
	Registerer prometheus.Registerer
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all routes.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, deps Dependencies, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Session runs before the logger so the user ID is part of every request log.
	r.Use(middleware.RequestID())
	r.Use(middleware.Session(deps.Sessions))
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.Metrics(deps.Registerer))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	r.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Page"))
	})
	r.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.FromStatus(http.StatusMethodNotAllowed, "Method not allowed", nil))
	})

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", h.Metrics)

	// # Pages and Actions
	r.Get("/", h.Post.Home)
	r.Get("/session", h.Auth.CurrentUser)
	r.Mount("/auth", h.Auth.Routes())
	r.Mount("/posts", h.Post.Routes())
	r.Mount("/users", h.User.Routes())

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

// Handler exposes the fully wired router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
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
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
