// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/postly/internal/api"
	"github.com/taibuivan/postly/internal/auth"
	"github.com/taibuivan/postly/internal/platform/apiclient"
	"github.com/taibuivan/postly/internal/platform/config"
	"github.com/taibuivan/postly/internal/platform/constants"
	"github.com/taibuivan/postly/internal/platform/sec"
	"github.com/taibuivan/postly/internal/platform/session"
	"github.com/taibuivan/postly/internal/post"
	"github.com/taibuivan/postly/internal/user"
)

// newServer wires the whole application against a fake content API.
func newServer(t *testing.T, backend http.HandlerFunc, health api.HealthDependencies) http.Handler {
	t.Helper()

	upstream := httptest.NewServer(backend)
	t.Cleanup(upstream.Close)

	cfg, err := config.LoadFrom(map[string]string{
		"API_BASE_URL":   upstream.URL + "/api",
		"SESSION_SECRET": "0123456789abcdef0123456789abcdef",
		"ENVIRONMENT":    "production",
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	registry := prometheus.NewRegistry()

	client, err := apiclient.New(apiclient.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.APITimeout},
		apiclient.WithTransport(upstream.Client()),
		apiclient.WithMetrics(apiclient.NewMetrics(registry)),
	)
	require.NoError(t, err)

	forwarder, err := session.NewForwarder(upstream.Client(), cfg.APIBaseURL)
	require.NoError(t, err)

	tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.TokenIssuer, constants.MinSessionSecretLength)
	require.NoError(t, err)
	sessions := session.NewManager(tokens, nil, session.CookieOptions{TTL: cfg.SessionTTL, Secure: cfg.CookieSecure})

	liveness, readiness := api.NewHealthHandlers(health, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, cfg, logger, api.Dependencies{Sessions: sessions, Registerer: registry}, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Auth:      auth.NewHandler(auth.NewClient(client), forwarder, sessions),
		Post:      post.NewHandler(post.NewClient(client), forwarder),
		User:      user.NewHandler(user.NewClient(client), forwarder),
	})
	return server.Handler()
}

func serve(handler http.Handler, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestServer_LoginThenSession logs in, then uses the issued cookie on the next
requests: the session endpoint resolves the user and API calls carry the cookie.
*/
func TestServer_LoginThenSession(t *testing.T) {
	var forwarded string
	handler := newServer(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		switch request.URL.Path {
		case "/api/auth/login":
			_, _ = io.WriteString(writer, `{"user":{"id":7,"username":"alice","email":"alice@example.com","role":"USER"}}`)
		case "/api/posts/3/like":
			if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
				forwarded = cookie.Value
			}
			_, _ = io.WriteString(writer, `{}`)
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}, api.HealthDependencies{})

	login := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(url.Values{
		"username": {"alice"}, "password": {"secret1"},
	}.Encode()))
	login.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	recorder := serve(handler, login)
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)

	current := httptest.NewRequest(http.MethodGet, "/session", nil)
	current.AddCookie(cookies[0])
	recorder = serve(handler, current)
	assert.JSONEq(t, `{"data":{"id":7,"username":"alice","email":"alice@example.com","role":"USER"}}`, recorder.Body.String())

	like := httptest.NewRequest(http.MethodPost, "/posts/3/like", nil)
	like.AddCookie(cookies[0])
	recorder = serve(handler, like)
	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, cookies[0].Value, forwarded)
}

/*
TestServer_TamperedCookieIsAnonymous degrades a bad cookie to an anonymous request.
*/
func TestServer_TamperedCookieIsAnonymous(t *testing.T) {
	handler := newServer(t, func(http.ResponseWriter, *http.Request) {}, api.HealthDependencies{})

	request := httptest.NewRequest(http.MethodGet, "/session", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "eyJpZCI6MX0="})

	recorder := serve(handler, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":null}`, recorder.Body.String())
}

/*
TestServer_Infrastructure covers health, readiness, metrics, and unknown routes.
*/
func TestServer_Infrastructure(t *testing.T) {
	handler := newServer(t, func(http.ResponseWriter, *http.Request) {}, api.HealthDependencies{
		CheckAPI:   func(context.Context) error { return nil },
		CheckCache: func(context.Context) error { return errors.New("redis: ping failed") },
	})

	recorder := serve(handler, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())

	recorder = serve(handler, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"degraded","checks":[
		{"name":"content_api","ok":true},
		{"name":"redis","ok":false,"error":"redis: ping failed"}
	]}}`, recorder.Body.String())

	recorder = serve(handler, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "postly_http_requests_total")

	recorder = serve(handler, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"Page not found","code":"NOT_FOUND"}`, recorder.Body.String())

	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))
}
