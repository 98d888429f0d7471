// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the session token primitives.
//
// # Architecture
//
// This package isolates security-sensitive code (JWT signing and verification)
// from the web layer. It is injected into the session package through small
// interfaces so handlers never touch key material.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/postly/pkg/uuid"
)

var (
	// ErrWeakSecret is returned when the HMAC secret is shorter than required.
	ErrWeakSecret = errors.New("sec: session secret is too short")

	// ErrIncompleteUser is returned when a token is requested for a user that could never verify.
	ErrIncompleteUser = errors.New("sec: user needs a positive id and a known role")
)

// SessionClaims represents the payload embedded inside a session token.
//
// # Why custom claims?
//
// The full [AuthenticatedUser] travels inside the token, so resolving the
// session on each request needs no call to the content API.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the cookie small.
	UserID   int      `json:"uid"`
	Username string   `json:"unm"`
	Email    string   `json:"eml"`
	Role     UserRole `json:"rol"`
}

// User rebuilds the identity encoded in the claims.
func (c *SessionClaims) User() *AuthenticatedUser {
	return &AuthenticatedUser{
		ID:       c.UserID,
		Username: c.Username,
		Email:    c.Email,
		Role:     c.Role,
	}
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService.
//
// The secret must be at least minLength bytes long.
func NewTokenService(secret, issuer string, minLength int) (*TokenService, error) {
	if len(secret) < minLength {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrWeakSecret, len(secret), minLength)
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// Issue signs a session token for user that expires after timeToLive.
func (service *TokenService) Issue(user AuthenticatedUser, timeToLive time.Duration) (string, *SessionClaims, error) {
	if user.ID <= 0 || !user.Role.Valid() {
		return "", nil, ErrIncompleteUser
	}

	currentTime := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   strconv.Itoa(user.ID),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, claims, nil
}

// VerifyToken checks the signature, issuer, and expiry of a session token.
func (service *TokenService) VerifyToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	if claims.ID == "" || claims.UserID <= 0 || !claims.Role.Valid() {
		return nil, fmt.Errorf("sec: incomplete token claims")
	}

	return claims, nil
}
