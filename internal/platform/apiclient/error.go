// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

import (
	"errors"
	"net/http"

	"github.com/taibuivan/postly/internal/platform/apperr"
)

// Origin identifies which failure path produced an [Error].
type Origin string

const (
	// OriginTimeout means the call exceeded its deadline or was canceled.
	OriginTimeout Origin = "timeout"

	// OriginHTTP means the content API answered with a non-2xx status.
	OriginHTTP Origin = "http"

	// OriginTransport means the request never produced a response.
	OriginTransport Origin = "transport"

	// OriginUnexpected covers everything else, such as a malformed success body.
	OriginUnexpected Origin = "unexpected"
)

// Error is the classified error returned for every failed content API call.
//
// No other error type leaves the [Client]; transport and decoding failures are
// wrapped and remain reachable through [errors.Unwrap].
type Error struct {
	// Message is the human-readable failure description.
	Message string
	// Status is the HTTP status, or 0 when no status applies.
	Status int
	// Origin tells which failure path produced the error.
	Origin Origin
	// Fields holds per-field messages; nil unless the body carried an "errors" array.
	Fields *apperr.FieldErrors
	// Response is the raw upstream response. Its body has already been consumed.
	Response *http.Response
	// Body is the raw upstream body of a non-2xx response.
	Body []byte

	cause error
}

// NewError constructs an [Error]. The origin is derived from status:
// 408 is a timeout, any other non-zero status is an HTTP failure, and 0 is unexpected.
func NewError(message string, status int, response *http.Response, fields *apperr.FieldErrors) *Error {
	origin := OriginUnexpected
	switch {
	case status == http.StatusRequestTimeout && response == nil:
		origin = OriginTimeout
	case status != 0:
		origin = OriginHTTP
	}

	return &Error{
		Message:  message,
		Status:   status,
		Origin:   origin,
		Fields:   fields,
		Response: response,
	}
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Unwrap exposes the transport or decoding error that caused the failure.
func (e *Error) Unwrap() error { return e.cause }

// HasStatus reports whether a status code is attached.
func (e *Error) HasStatus() bool { return e.Status != 0 }

// Timeout reports whether the call was aborted by its deadline or by cancellation.
func (e *Error) Timeout() bool { return e.Origin == OriginTimeout }

// AsError extracts the [*Error] from err's chain.
func AsError(err error) (*Error, bool) {
	var classified *Error
	if errors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// # Internal constructors

func timeoutError(cause error) *Error {
	return &Error{
		Message: "Request timeout",
		Status:  http.StatusRequestTimeout,
		Origin:  OriginTimeout,
		cause:   cause,
	}
}

func transportError(cause error) *Error {
	return &Error{
		Message: cause.Error(),
		Origin:  OriginTransport,
		cause:   cause,
	}
}

func unexpectedError(cause error) *Error {
	return &Error{
		Message: cause.Error(),
		Origin:  OriginUnexpected,
		cause:   cause,
	}
}
