// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth brokers login, registration, and logout with the content API.
//
// # Architecture
//
// The content API verifies credentials and owns the accounts. This package only
// validates the submitted forms, forwards them, and turns a successful result
// into a browser session via the session manager.
package auth

import (
	"regexp"

	"github.com/taibuivan/postly/internal/platform/apperr"
	"github.com/taibuivan/postly/internal/platform/sec"
	"github.com/taibuivan/postly/internal/platform/validate"
)

// usernamePattern restricts usernames to letters, digits, dots, underscores, and hyphens.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// AuthResult is the body returned by the login and register endpoints.
type AuthResult struct {
	User sec.AuthenticatedUser `json:"user"`
}

// LoginInput is the login form and the login request body.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks the form before it is sent.
func (input LoginInput) Validate() apperr.FieldErrors {
	v := &validate.Validator{}
	return v.
		MinLen("username", input.Username, 3, "Username must be at least 3 characters").
		MinLen("password", input.Password, 6, "Password must be at least 6 characters").
		Fields()
}

// RegisterInput is the registration form and the register request body.
type RegisterInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate checks the form before it is sent.
func (input RegisterInput) Validate() apperr.FieldErrors {
	v := &validate.Validator{}
	return v.
		MinLen("username", input.Username, 3, "Username must be at least 3 characters.").
		MaxLen("username", input.Username, 20, "Username must be at most 20 characters").
		Matches("username", input.Username, usernamePattern,
			"Username can only contain letters, numbers, dots, underscores, and hyphens").
		Email("email", input.Email, "Invalid email").
		MinLen("password", input.Password, 6, "Password must be at least 6 characters").
		Equal("confirmPassword", input.ConfirmPassword, input.Password, "Password do not match").
		Fields()
}
