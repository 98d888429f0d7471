// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the router's parameter extraction and form decoding so
handlers read route IDs, form values, and the session user the same way.
*/
package requestutil

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/postly/internal/platform/ctxutil"
	"github.com/taibuivan/postly/internal/platform/sec"
)

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
PositiveID parses a named URL parameter as a strictly positive decimal integer.

Returns false for anything else ("abc", "0", "-1", "1.5", "", overflow).
*/
func PositiveID(request *http.Request, name string) (int, bool) {
	raw := chi.URLParam(request, name)
	if raw == "" || strings.HasPrefix(raw, "+") {
		return 0, false
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

/*
Form parses a url-encoded form body and returns the named fields.

Missing fields map to "". The body is read at most once per request.
*/
func Form(request *http.Request, names ...string) (map[string]string, error) {
	if err := request.ParseForm(); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(names))
	for _, name := range names {
		values[name] = request.PostForm.Get(name)
	}

	return values, nil
}

/*
User returns the session user of the request, or nil when anonymous.
*/
func User(request *http.Request) *sec.AuthenticatedUser {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RedirectTarget returns the "redirect" query parameter when it is a same-origin
path, otherwise fallback.

Absolute URLs, scheme-relative URLs ("//host"), and backslash tricks are rejected.
*/
func RedirectTarget(request *http.Request, fallback string) string {
	target := request.URL.Query().Get("redirect")
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return fallback
	}

	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return fallback
	}

	return target
}
