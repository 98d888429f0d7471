// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for paginated content API endpoints.
//
// # Overview
//
// It standardizes how optional page-based navigation is read from a page request,
// forwarded to the content API as query parameters, and described in list results.
package pagination

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/taibuivan/postly/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page the content API applies when none is sent.
	DefaultLimit = 10
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the optional page and limit of a list request.
//
// A zero field means "not provided" and is never sent upstream.
type Params struct {
	Page  int
	Limit int
}

// Encode renders the query string ("page=2&limit=10") without a leading "?".
// Only non-zero fields are included; page always precedes limit.
func (p Params) Encode() string {
	parts := make([]string, 0, 2)

	if p.Page != 0 {
		parts = append(parts, "page="+url.QueryEscape(strconv.Itoa(p.Page)))
	}

	if p.Limit != 0 {
		parts = append(parts, "limit="+url.QueryEscape(strconv.Itoa(p.Limit)))
	}

	return strings.Join(parts, "&")
}

// Endpoint appends the encoded query to path, or returns path unchanged when empty.
//
// Example:
//
//	Params{Page: 2}.Endpoint("/posts") // "/posts?page=2"
//	Params{}.Endpoint("/posts")        // "/posts"
func (p Params) Endpoint(path string) string {
	query := p.Encode()
	if query == "" {
		return path
	}
	return path + "?" + query
}

// Meta is the pagination metadata included in content API list results.
type Meta struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewMeta constructs pagination metadata.
//
// TotalPages is ceil(total/limit); HasNextPage is page < TotalPages;
// HasPrevPage is page > 1.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// FromRequest reads the optional "page" and "limit" query parameters.
//
// # Leniency
//
// Absent or non-numeric values become 0 (not provided); numeric values are
// forwarded as-is and left for the content API to clamp.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	return Params{
		Page:  convert.ToInt(query.Get("page")),
		Limit: convert.ToInt(query.Get("limit")),
	}
}
