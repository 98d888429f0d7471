// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Session: Token issuer and cookie configuration.
  - Upstream: Content API call limits.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "postly-web"
	AppVersion = "0.1.0-dev"

	// AppDomain is the production domain; it and its subdomains pass CORS.
	AppDomain = "postly.app"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// It must exceed the upstream API timeout so a 408 can still be written.
	DefaultWriteTimeout = 20 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Session

const (
	// TokenIssuer is the standard 'iss' claim in session tokens.
	TokenIssuer = "postly"

	// SessionCookieName is the cookie that carries the signed session token.
	SessionCookieName = "jwt"

	// SessionCookiePath scopes the session cookie to the whole site.
	SessionCookiePath = "/"

	// MinSessionSecretLength is the minimum HMAC key size in bytes.
	MinSessionSecretLength = 32
)

// # Upstream API

const (
	// DefaultAPITimeout bounds a single call to the content API.
	DefaultAPITimeout = 10 * time.Second

	// MaxResponseBytes caps how much of an upstream body is read.
	MaxResponseBytes = 4 << 20
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderCookie        = "Cookie"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldErrors  = "errors"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Redis Prefixes

const (
	// RedisPrefixRevokedSession keys the IDs of logged-out session tokens.
	RedisPrefixRevokedSession = "session:revoked:"
)
