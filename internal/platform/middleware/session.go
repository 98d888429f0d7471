// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/taibuivan/postly/internal/platform/ctxutil"
	"github.com/taibuivan/postly/internal/platform/sec"
)

// SessionResolver turns the inbound session cookie into a user.
//
// Defined here so the middleware does not depend on the session package and
// tests can inject a stub. [*session.Manager] satisfies it.
type SessionResolver interface {
	Resolve(request *http.Request) *sec.AuthenticatedUser
}

// Session resolves the request user before any handler runs.
//
// # Flow
//  1. Ask the resolver for the user behind the "jwt" cookie.
//  2. A nil user means anonymous; the request always proceeds.
//  3. A resolved user is stored in the request context ([ctxutil.GetAuthUser]).
func Session(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			user := resolver.Resolve(request)
			if user == nil {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), user)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
