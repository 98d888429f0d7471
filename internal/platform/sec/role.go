// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account by the content API.
type UserRole string

const (
	// Default role for standard registered users
	RoleUser UserRole = "USER"

	// Moderation and administrative access
	RoleAdmin UserRole = "ADMIN"
)

// Valid reports whether the role is one the content API issues.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}
