// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"fmt"

	"github.com/taibuivan/postly/internal/platform/apiclient"
	"github.com/taibuivan/postly/pkg/pagination"
)

// Client calls the post endpoints of the content API.
//
// Every error it returns is an [*apiclient.Error].
type Client struct {
	api *apiclient.Client
}

// NewClient constructs a [Client].
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// ListPosts sends GET /posts with optional page and limit.
func (client *Client) ListPosts(ctx context.Context, transport apiclient.Transport, params pagination.Params) (*PostsResult, error) {
	var result PostsResult
	if err := client.api.Get(ctx, transport, params.Endpoint("/posts"), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPost sends GET /posts/:id.
func (client *Client) GetPost(ctx context.Context, transport apiclient.Transport, id int) (*PostDetailResult, error) {
	var result PostDetailResult
	if err := client.api.Get(ctx, transport, fmt.Sprintf("/posts/%d", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LikePost sends POST /posts/:id/like. The API answers 429 when likes are rate limited.
func (client *Client) LikePost(ctx context.Context, transport apiclient.Transport, id int) error {
	return client.api.Post(ctx, transport, fmt.Sprintf("/posts/%d/like", id), nil, nil)
}

// CreateComment sends POST /posts/:id/comments.
func (client *Client) CreateComment(ctx context.Context, transport apiclient.Transport, id int, input CommentCreateInput) error {
	return client.api.Post(ctx, transport, fmt.Sprintf("/posts/%d/comments", id), input, nil)
}
