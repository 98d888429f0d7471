// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

import "net/http"

// RequestOption customizes a single call.
type RequestOption func(*requestSettings)

type requestSettings struct {
	header http.Header
}

// WithHeader sets a request header. Caller headers override the client defaults.
func WithHeader(name, value string) RequestOption {
	return func(settings *requestSettings) {
		settings.header.Set(name, value)
	}
}

func newRequestSettings(opts []RequestOption) requestSettings {
	settings := requestSettings{header: make(http.Header)}
	for _, opt := range opts {
		opt(&settings)
	}
	return settings
}
