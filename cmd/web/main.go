// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command web is the entry point for the Postly web server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and .env in development).
//  3. Connect to Redis when configured.
//  4. Build the content API client, session manager, and credential forwarder.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/postly/internal/api"
	"github.com/taibuivan/postly/internal/auth"
	"github.com/taibuivan/postly/internal/platform/apiclient"
	"github.com/taibuivan/postly/internal/platform/config"
	"github.com/taibuivan/postly/internal/platform/constants"
	redisstore "github.com/taibuivan/postly/internal/platform/redis"
	"github.com/taibuivan/postly/internal/platform/sec"
	"github.com/taibuivan/postly/internal/platform/session"
	"github.com/taibuivan/postly/internal/post"
	"github.com/taibuivan/postly/internal/user"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Postly] service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("api_base_url", cfg.APIBaseURL),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives until shutdown; stops background loops such as rate-limit eviction.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. Redis (optional) ───────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")

	var revocations session.RevocationStore = session.NopRevocationStore{}
	var checkCache func(context.Context) error
	if rdb != nil {
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		revocations = session.NewRedisRevocationStore(rdb)
		checkCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}

	// ── 4. Content API, Sessions, Metrics ─────────────────────────────────
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	upstream := &http.Client{}
	client, err := apiclient.New(
		apiclient.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.APITimeout},
		apiclient.WithTransport(upstream),
		apiclient.WithMetrics(apiclient.NewMetrics(registry)),
	)
	must(log, err, "initialize content api client")

	forwarder, err := session.NewForwarder(upstream, client.BaseURL())
	must(log, err, "initialize credential forwarder")

	tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.TokenIssuer, constants.MinSessionSecretLength)
	must(log, err, "initialize token service")

	sessions := session.NewManager(tokens, revocations, session.CookieOptions{
		TTL:    cfg.SessionTTL,
		Secure: cfg.CookieSecure,
	})

	// ── 5. Health and Domain Wiring ───────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckAPI:   client.Ping,
		CheckCache: checkCache,
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Auth:      auth.NewHandler(auth.NewClient(client), forwarder, sessions),
		Post:      post.NewHandler(post.NewClient(client), forwarder),
		User:      user.NewHandler(user.NewClient(client), forwarder),
	}

	server := api.NewServer(appCtx, cfg, log, api.Dependencies{
		Sessions:   sessions,
		Registerer: registry,
	}, handlers)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
