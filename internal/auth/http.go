// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/postly/internal/platform/apiclient"
	"github.com/taibuivan/postly/internal/platform/apperr"
	"github.com/taibuivan/postly/internal/platform/ctxutil"
	"github.com/taibuivan/postly/internal/platform/outcome"
	requestutil "github.com/taibuivan/postly/internal/platform/request"
	"github.com/taibuivan/postly/internal/platform/respond"
	"github.com/taibuivan/postly/internal/platform/sec"
)

// API is the part of [Client] the handlers need.
type API interface {
	Login(ctx context.Context, transport apiclient.Transport, input LoginInput) (*AuthResult, error)
	Register(ctx context.Context, transport apiclient.Transport, input RegisterInput) (*AuthResult, error)
	Logout(ctx context.Context, transport apiclient.Transport) error
}

// Sessions starts and ends browser sessions. [*session.Manager] satisfies it.
type Sessions interface {
	Persist(writer http.ResponseWriter, user sec.AuthenticatedUser) error
	End(writer http.ResponseWriter, request *http.Request) error
}

// Handler implements the authentication form actions.
type Handler struct {
	api        API
	transports apiclient.TransportSource
	sessions   Sessions
}

// NewHandler constructs a new [Handler].
func NewHandler(api API, transports apiclient.TransportSource, sessions Sessions) *Handler {
	return &Handler{api: api, transports: transports, sessions: sessions}
}

// Routes returns a [chi.Router] configured with authentication actions.
//
// # Endpoints
//   - POST /login    : Verifies credentials and starts a session.
//   - POST /register : Creates an account and starts a session.
//   - POST /logout   : Ends the session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/register", handler.register)
	router.Post("/logout", handler.logout)

	return router
}

// CurrentUser handles GET /session: the resolved user, or null when anonymous.
func (handler *Handler) CurrentUser(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, requestutil.User(request))
}

// login handles POST /auth/login.
//
// # Returns
//   - 303 to the "redirect" target (default "/") with the session cookie on success.
//   - 400 with field errors when the form is invalid; the API is not called.
//   - The API status and message (e.g. 401 "Invalid credentials") as a same-page failure.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Form Extraction ────────────────────────────────────────────────

	form, err := requestutil.Form(request, "username", "password")
	if err != nil {
		respond.Error(writer, request, apperr.BadRequest("Invalid form submission"))
		return
	}

	input := LoginInput{Username: form["username"], Password: form["password"]}
	echo := map[string]string{"username": input.Username}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if fields := input.Validate(); fields.Len() > 0 {
		respond.Fail(writer, request, outcome.Invalid(fields, echo))
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	result, err := handler.api.Login(request.Context(), handler.transports.For(request), input)
	if err != nil {
		handler.fail(writer, request, err, echo)
		return
	}

	// ── 4. Session ────────────────────────────────────────────────────────

	handler.start(writer, request, result)
}

// register handles POST /auth/register. It mirrors [Handler.login].
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	form, err := requestutil.Form(request, "username", "email", "password", "confirmPassword")
	if err != nil {
		respond.Error(writer, request, apperr.BadRequest("Invalid form submission"))
		return
	}

	input := RegisterInput{
		Username:        form["username"],
		Email:           form["email"],
		Password:        form["password"],
		ConfirmPassword: form["confirmPassword"],
	}
	echo := map[string]string{"username": input.Username, "email": input.Email}

	if fields := input.Validate(); fields.Len() > 0 {
		respond.Fail(writer, request, outcome.Invalid(fields, echo))
		return
	}

	result, err := handler.api.Register(request.Context(), handler.transports.For(request), input)
	if err != nil {
		handler.fail(writer, request, err, echo)
		return
	}

	handler.start(writer, request, result)
}

// logout handles POST /auth/logout.
//
// The API logout and the token revocation are best effort: the cookie is
// always cleared and the browser is always sent home.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	if requestutil.User(request) != nil {
		if err := handler.api.Logout(ctx, handler.transports.For(request)); err != nil {
			logger.WarnContext(ctx, "api_logout_failed", slog.Any("error", err))
		}
	}

	if err := handler.sessions.End(writer, request); err != nil {
		logger.WarnContext(ctx, "session_end_failed", slog.Any("error", err))
	}

	respond.SeeOther(writer, request, "/")
}

// start persists the session for result and redirects.
func (handler *Handler) start(writer http.ResponseWriter, request *http.Request, result *AuthResult) {
	if err := handler.sessions.Persist(writer, result.User); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	ctx := request.Context()
	ctxutil.GetLogger(ctx).InfoContext(ctx, "session_started", slog.Int("user_id", result.User.ID))

	respond.SeeOther(writer, request, requestutil.RedirectTarget(request, "/"))
}

// fail renders an API error as a same-page failure, echoing the safe form values.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error, echo map[string]string) {
	failure, err := outcome.Action(err)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Fail(writer, request, failure.WithData(echo))
}
