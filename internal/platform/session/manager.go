// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements the cookie-based session protocol.

# Lifecycle

  - Persist: after a successful login or registration, a signed token derived
    from the returned user is written to the HTTP-only "jwt" cookie (path "/").
  - Resolve: on every request the cookie is verified; any failure degrades to
    an anonymous request and is never surfaced as an error.
  - End: on logout the token ID is revoked until expiry and the cookie is cleared.
  - Forward: calls to the content API made on behalf of the browser carry the
    inbound cookie so the API can authenticate the acting user itself.
*/
package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/postly/internal/platform/constants"
	"github.com/taibuivan/postly/internal/platform/ctxutil"
	"github.com/taibuivan/postly/internal/platform/sec"
)

// # Contracts

// TokenService issues and verifies session tokens. [*sec.TokenService] satisfies it.
type TokenService interface {
	Issue(user sec.AuthenticatedUser, timeToLive time.Duration) (string, *sec.SessionClaims, error)
	VerifyToken(tokenString string) (*sec.SessionClaims, error)
}

// RevocationStore remembers token IDs that were logged out before they expired.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// CookieOptions configures the session cookie.
type CookieOptions struct {
	// TTL is both the token lifetime and the cookie Max-Age.
	TTL time.Duration
	// Secure restricts the cookie to HTTPS.
	Secure bool
}

// # Manager

// Manager persists, resolves, and ends browser sessions.
type Manager struct {
	tokens      TokenService
	revocations RevocationStore
	options     CookieOptions
}

// NewManager constructs a [Manager]. A nil store disables revocation.
func NewManager(tokens TokenService, revocations RevocationStore, options CookieOptions) *Manager {
	if revocations == nil {
		revocations = NopRevocationStore{}
	}
	return &Manager{tokens: tokens, revocations: revocations, options: options}
}

// Persist issues a token for user and sets it as the session cookie.
func (manager *Manager) Persist(writer http.ResponseWriter, user sec.AuthenticatedUser) error {
	token, claims, err := manager.tokens.Issue(user, manager.options.TTL)
	if err != nil {
		return fmt.Errorf("session: issue token: %w", err)
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		Expires:  claims.ExpiresAt.Time,
		MaxAge:   int(manager.options.TTL / time.Second),
		Secure:   manager.options.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Clear expires the session cookie in the browser.
func (manager *Manager) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   manager.options.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// End revokes the inbound token (when it is still valid) and clears the cookie.
//
// The cookie is cleared even when revocation fails; the error is returned for logging.
func (manager *Manager) End(writer http.ResponseWriter, request *http.Request) error {
	manager.Clear(writer)

	claims, ok := manager.verify(request)
	if !ok {
		return nil
	}

	if err := manager.revocations.Revoke(request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("session: revoke token: %w", err)
	}

	return nil
}

// # Resolution

// Resolve returns the user of a valid, unrevoked session cookie, or nil.
//
// Missing, malformed, expired, tampered, and revoked tokens all resolve to nil.
// A failing revocation store also resolves to nil.
func (manager *Manager) Resolve(request *http.Request) *sec.AuthenticatedUser {
	ctx := request.Context()

	claims, ok := manager.verify(request)
	if !ok {
		return nil
	}

	revoked, err := manager.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "session_revocation_check_failed",
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("error", err),
		)
		return nil
	}

	if revoked {
		return nil
	}

	return claims.User()
}

// verify reads and verifies the session cookie.
func (manager *Manager) verify(request *http.Request) (*sec.SessionClaims, bool) {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	claims, err := manager.tokens.VerifyToken(cookie.Value)
	if err != nil {
		ctx := request.Context()
		ctxutil.GetLogger(ctx).DebugContext(ctx, "session_token_rejected",
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("error", err),
		)
		return nil, false
	}

	return claims, true
}
