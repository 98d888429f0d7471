// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package post serves the home feed and the post page, and relays likes and
// comments to the content API.
//
// # Architecture
//
// The entities below mirror the content API's JSON. They are pass-through
// snapshots: decoded per request, never mutated, never cached.
package post

import (
	"time"

	"github.com/taibuivan/postly/internal/platform/sec"
	"github.com/taibuivan/postly/pkg/pagination"
)

// # Entities

// AuthorSummary is the public subset of a user shown next to posts and comments.
type AuthorSummary struct {
	ID       int          `json:"id"`
	Username string       `json:"username"`
	Role     sec.UserRole `json:"role"`
}

// Post is a published article.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  int       `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Counts holds the aggregate counters of a post.
type Counts struct {
	Comments int `json:"comments"`
	Likes    int `json:"likes"`
}

// PostWithAuthor is a feed entry.
type PostWithAuthor struct {
	Post
	Author AuthorSummary `json:"author"`
	Count  *Counts       `json:"_count,omitempty"`
}

// Comment is a reply on a post, written by a user or a named guest.
type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	PostID    int       `json:"postId"`
	AuthorID  *int      `json:"authorId"`
	GuestName *string   `json:"guestName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentWithAuthor is a comment with its author; Author is nil for guests.
type CommentWithAuthor struct {
	Comment
	Author *AuthorSummary `json:"author"`
}

// PostDetail is the full post page.
type PostDetail struct {
	PostWithAuthor
	Comments             []CommentWithAuthor `json:"comments"`
	IsLikedByCurrentUser bool                `json:"isLikedByCurrentUser"`
}

// # Results

// PostsResult is one page of the feed.
type PostsResult struct {
	Posts      []PostWithAuthor `json:"posts"`
	Pagination pagination.Meta  `json:"pagination"`
}

// PostDetailResult wraps a single post.
type PostDetailResult struct {
	Post PostDetail `json:"post"`
}

// # Inputs

// CommentCreateInput is the comment form and request body.
type CommentCreateInput struct {
	Content string `json:"content"`
}
