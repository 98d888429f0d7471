// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apiclient is the typed HTTP client for the Postly content API.

Every call goes through one pipeline:

  - Deadline: a fixed per-call timeout (10s by default) covers the request and the body read.
  - Headers: "Content-Type: application/json" merged with caller headers (caller wins).
  - Decoding: 2xx bodies are decoded into the caller's value.
  - Classification: every failure becomes an [*Error] (timeout, HTTP, transport, unexpected).

The transport is an explicit parameter of every call so server-side handlers
can substitute one that forwards the browser's session cookie. A nil transport
selects the client's default. One attempt is made per call; retry policy
belongs to callers.
*/
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/postly/internal/platform/apperr"
	"github.com/taibuivan/postly/internal/platform/constants"
	"github.com/taibuivan/postly/internal/platform/ctxutil"
)

// # Contracts

// Transport sends a single HTTP request. [*http.Client] satisfies it.
type Transport interface {
	Do(request *http.Request) (*http.Response, error)
}

// TransportFunc adapts a function to the [Transport] interface.
type TransportFunc func(request *http.Request) (*http.Response, error)

// Do calls f(request).
func (f TransportFunc) Do(request *http.Request) (*http.Response, error) { return f(request) }

// TransportSource picks the transport for calls made while serving an inbound request.
type TransportSource interface {
	For(inbound *http.Request) Transport
}

// Config is the construction-time configuration of a [Client].
type Config struct {
	// BaseURL is prefixed to every endpoint, e.g. "http://api:8000/api".
	BaseURL string
	// Timeout bounds each call. Zero selects [constants.DefaultAPITimeout].
	Timeout time.Duration
}

// Option customizes a [Client].
type Option func(*Client)

// WithTransport replaces the default transport ([http.DefaultClient]).
func WithTransport(transport Transport) Option {
	return func(client *Client) { client.transport = transport }
}

// WithMetrics records every call in metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(client *Client) { client.metrics = metrics }
}

// # Client

// Client issues JSON requests against the content API.
//
// A Client holds no per-request state and is safe for concurrent use.
type Client struct {
	baseURL   string
	timeout   time.Duration
	transport Transport
	metrics   *Metrics
}

// New validates cfg and constructs a [Client].
func New(cfg Config, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("apiclient: invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: base URL must be absolute http(s), got %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultAPITimeout
	}

	client := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		timeout:   timeout,
		transport: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the normalized base URL (no trailing slash).
func (client *Client) BaseURL() string { return client.baseURL }

// Ping reports whether the content API answers at the base URL.
// Any HTTP status counts as reachable; only timeouts and transport failures fail.
func (client *Client) Ping(ctx context.Context) error {
	err := client.Get(ctx, nil, "", nil)
	if classified, ok := AsError(err); ok && classified.Origin == OriginHTTP {
		return nil
	}
	return err
}

// # Verbs

// Get issues a GET request and decodes the response into out.
func (client *Client) Get(ctx context.Context, transport Transport, endpoint string, out any, opts ...RequestOption) error {
	return client.do(ctx, transport, http.MethodGet, endpoint, nil, out, opts)
}

// Post issues a POST request. A nil body sends no payload; a nil out skips decoding.
func (client *Client) Post(ctx context.Context, transport Transport, endpoint string, body, out any, opts ...RequestOption) error {
	return client.do(ctx, transport, http.MethodPost, endpoint, body, out, opts)
}

// Put issues a PUT request.
func (client *Client) Put(ctx context.Context, transport Transport, endpoint string, body, out any, opts ...RequestOption) error {
	return client.do(ctx, transport, http.MethodPut, endpoint, body, out, opts)
}

// Delete issues a DELETE request.
func (client *Client) Delete(ctx context.Context, transport Transport, endpoint string, out any, opts ...RequestOption) error {
	return client.do(ctx, transport, http.MethodDelete, endpoint, nil, out, opts)
}

// # Pipeline

func (client *Client) do(ctx context.Context, transport Transport, method, endpoint string, body, out any, opts []RequestOption) (err error) {
	if transport == nil {
		transport = client.transport
	}

	settings := newRequestSettings(opts)
	logger := ctxutil.GetLogger(ctx)
	startTime := time.Now()

	// ── 1. Deadline ───────────────────────────────────────────────────────
	callCtx, cancel := context.WithTimeout(ctx, client.timeout)
	defer cancel()

	defer func() {
		outcome := "success"
		if classified, ok := AsError(err); ok {
			outcome = string(classified.Origin)
		}
		client.metrics.observe(method, outcome, time.Since(startTime))

		attrs := []any{
			slog.String("method", method),
			slog.String("endpoint", endpoint),
			slog.String("outcome", outcome),
			slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
		}
		if classified, ok := AsError(err); ok && classified.Origin != OriginHTTP {
			logger.WarnContext(ctx, "api_call_failed", append(attrs, slog.String("error", classified.Message))...)
			return
		}
		logger.DebugContext(ctx, "api_call_finished", attrs...)
	}()

	// ── 2. Request ────────────────────────────────────────────────────────
	request, err := client.newRequest(callCtx, method, endpoint, body, settings.header)
	if err != nil {
		return unexpectedError(err)
	}

	response, err := transport.Do(request)
	if err != nil {
		return classifyFailure(callCtx, err)
	}
	defer response.Body.Close()

	payload, readErr := io.ReadAll(io.LimitReader(response.Body, constants.MaxResponseBytes))
	if readErr != nil && callCtx.Err() != nil {
		return timeoutError(readErr)
	}

	// ── 3. Non-2xx ────────────────────────────────────────────────────────
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return httpError(response, payload)
	}

	if readErr != nil {
		return transportError(readErr)
	}

	// ── 4. Success ────────────────────────────────────────────────────────
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return unexpectedError(fmt.Errorf("decode %s %s: %w", method, endpoint, err))
	}

	return nil
}

// newRequest builds the outbound request with merged headers.
func (client *Client) newRequest(ctx context.Context, method, endpoint string, body any, header http.Header) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+endpoint, reader)
	if err != nil {
		return nil, err
	}

	request.Header.Set(constants.HeaderContentType, "application/json")
	request.Header.Set(constants.HeaderAccept, "application/json")
	for name, values := range header {
		request.Header[name] = append([]string(nil), values...)
	}

	return request, nil
}

// classifyFailure maps a failed round trip to a timeout or transport error.
func classifyFailure(ctx context.Context, err error) *Error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return timeoutError(err)
	}
	return transportError(err)
}

// errorEnvelope is the error body contract of the content API.
type errorEnvelope struct {
	Message json.RawMessage `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

// httpError classifies a non-2xx response. Unparseable bodies keep the generic message.
func httpError(response *http.Response, payload []byte) *Error {
	classified := &Error{
		Message:  fmt.Sprintf("API request failed: %d %s", response.StatusCode, statusText(response)),
		Status:   response.StatusCode,
		Origin:   OriginHTTP,
		Response: response,
		Body:     payload,
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return classified
	}

	var message string
	if hasValue(envelope.Message) && json.Unmarshal(envelope.Message, &message) == nil {
		classified.Message = message
	}

	var issues []apperr.FieldError
	if len(envelope.Errors) > 0 && json.Unmarshal(envelope.Errors, &issues) == nil && issues != nil {
		fields := apperr.FoldFieldErrors(issues)
		classified.Fields = &fields
	}

	return classified
}

// hasValue reports whether a raw JSON member is present and not null.
func hasValue(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// statusText returns the reason phrase of the response ("Not Found").
func statusText(response *http.Response) string {
	if text, ok := strings.CutPrefix(response.Status, strconv.Itoa(response.StatusCode)+" "); ok && text != "" {
		return text
	}
	return http.StatusText(response.StatusCode)
}
