// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/postly/internal/platform/apiclient"
	"github.com/taibuivan/postly/internal/platform/constants"
)

// Forwarder builds per-request transports that carry the browser's session cookie.
//
// Only requests whose URL falls under the content API base URL receive the
// cookie; any other outbound request passes through untouched.
type Forwarder struct {
	base   apiclient.Transport
	target *url.URL
}

// NewForwarder creates a [Forwarder] that sends through base and forwards to apiBaseURL.
func NewForwarder(base apiclient.Transport, apiBaseURL string) (*Forwarder, error) {
	target, err := url.Parse(apiBaseURL)
	if err != nil || target.Host == "" {
		return nil, fmt.Errorf("session: invalid API base URL %q", apiBaseURL)
	}

	if base == nil {
		base = http.DefaultClient
	}

	return &Forwarder{base: base, target: target}, nil
}

// For returns the transport to use for content API calls made while serving inbound.
//
// Without a session cookie it returns the base transport unchanged.
func (forwarder *Forwarder) For(inbound *http.Request) apiclient.Transport {
	cookie, err := inbound.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return forwarder.base
	}

	token := cookie.Value
	return apiclient.TransportFunc(func(outbound *http.Request) (*http.Response, error) {
		if forwarder.targets(outbound.URL) {
			outbound = outbound.Clone(outbound.Context())
			outbound.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: token})
		}
		return forwarder.base.Do(outbound)
	})
}

// targets reports whether u is under the API base URL (same scheme, host, and path prefix).
func (forwarder *Forwarder) targets(u *url.URL) bool {
	if !strings.EqualFold(u.Scheme, forwarder.target.Scheme) || !strings.EqualFold(u.Host, forwarder.target.Host) {
		return false
	}

	prefix := strings.TrimRight(forwarder.target.Path, "/")
	if prefix == "" {
		return true
	}

	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}
