// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/postly/internal/platform/apiclient"
)

// Client calls the authentication endpoints of the content API.
//
// Every error it returns is an [*apiclient.Error].
type Client struct {
	api *apiclient.Client
}

// NewClient constructs a [Client].
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// Login sends POST /auth/login.
func (client *Client) Login(ctx context.Context, transport apiclient.Transport, input LoginInput) (*AuthResult, error) {
	var result AuthResult
	if err := client.api.Post(ctx, transport, "/auth/login", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register sends POST /auth/register.
func (client *Client) Register(ctx context.Context, transport apiclient.Transport, input RegisterInput) (*AuthResult, error) {
	var result AuthResult
	if err := client.api.Post(ctx, transport, "/auth/register", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout sends POST /auth/logout. The response body is ignored.
func (client *Client) Logout(ctx context.Context, transport apiclient.Transport) error {
	return client.api.Post(ctx, transport, "/auth/logout", nil, nil)
}
