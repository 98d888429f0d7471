// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// AuthenticatedUser is the minimal identity derived from a verified session token.
//
// It lives only for the duration of one request and is never persisted
// server-side. The login and register endpoints of the content API return
// exactly this shape under the "user" key.
type AuthenticatedUser struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
}
