// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package user serves the author profile page: a user and one page of their posts.
package user

import (
	"context"
	"fmt"

	"github.com/taibuivan/postly/internal/platform/apiclient"
	"github.com/taibuivan/postly/internal/post"
	"github.com/taibuivan/postly/pkg/pagination"
)

// UserResult is the profile page.
type UserResult struct {
	User       post.AuthorSummary    `json:"user"`
	Posts      []post.PostWithAuthor `json:"posts"`
	Pagination pagination.Meta       `json:"pagination"`
}

// Client calls the author endpoints of the content API.
//
// Every error it returns is an [*apiclient.Error].
type Client struct {
	api *apiclient.Client
}

// NewClient constructs a [Client].
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// GetUser sends GET /posts/authors/:id with optional page and limit.
func (client *Client) GetUser(ctx context.Context, transport apiclient.Transport, id int, params pagination.Params) (*UserResult, error) {
	var result UserResult
	if err := client.api.Get(ctx, transport, params.Endpoint(fmt.Sprintf("/posts/authors/%d", id)), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
