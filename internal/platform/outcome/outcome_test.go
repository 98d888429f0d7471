// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package outcome_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/postly/internal/platform/apiclient"
	"github.com/taibuivan/postly/internal/platform/apperr"
	"github.com/taibuivan/postly/internal/platform/outcome"
)

/*
TestLoad covers navigation error translation.
*/
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"not_found", apiclient.NewError("Post not found", http.StatusNotFound, nil, nil), http.StatusNotFound, "Post not found"},
		{"timeout", apiclient.NewError("Request timeout", http.StatusRequestTimeout, nil, nil), http.StatusRequestTimeout, "Request timeout"},
		{"no_status", apiclient.NewError("connection refused", 0, nil, nil), http.StatusInternalServerError, "connection refused"},
		{"wrapped", fmt.Errorf("home: %w", apiclient.NewError("slow down", http.StatusTooManyRequests, nil, nil)), http.StatusTooManyRequests, "slow down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(outcome.Load(tt.err))
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
			assert.Equal(t, tt.wantMessage, ae.Message)
		})
	}
}

/*
TestLoad_PassesThroughOtherErrors keeps foreign errors untouched.
*/
func TestLoad_PassesThroughOtherErrors(t *testing.T) {
	fault := errors.New("nil map write")
	assert.Same(t, fault, outcome.Load(fault))
	assert.NoError(t, outcome.Load(nil))
}

/*
TestAction covers same-page failure translation.
*/
func TestAction(t *testing.T) {
	fields := apperr.FoldFieldErrors([]apperr.FieldError{{Field: "username", Message: "taken"}})

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantFields  bool
	}{
		{"unauthorized", apiclient.NewError("Invalid credentials", http.StatusUnauthorized, nil, nil), http.StatusUnauthorized, "Invalid credentials", false},
		{"rate_limited", apiclient.NewError("Too many likes", http.StatusTooManyRequests, nil, nil), http.StatusTooManyRequests, "Too many likes", false},
		{"validation", apiclient.NewError("Validation failed", http.StatusBadRequest, nil, &fields), http.StatusBadRequest, "Validation failed", true},
		{"no_status", apiclient.NewError("boom", 0, nil, nil), http.StatusInternalServerError, "boom", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failure, err := outcome.Action(tt.err)
			require.NoError(t, err)
			require.NotNil(t, failure)

			assert.Equal(t, tt.wantStatus, failure.Status)
			assert.Equal(t, tt.wantMessage, failure.Message)
			if tt.wantFields {
				require.NotNil(t, failure.Errors)
				assert.Equal(t, []string{"taken"}, failure.Errors.Messages("username"))
			} else {
				assert.Nil(t, failure.Errors)
			}
		})
	}
}

/*
TestAction_PassesThroughOtherErrors returns foreign errors as the second value.
*/
func TestAction_PassesThroughOtherErrors(t *testing.T) {
	fault := errors.New("template missing")

	failure, err := outcome.Action(fault)
	assert.Nil(t, failure)
	assert.Same(t, fault, err)

	failure, err = outcome.Action(nil)
	assert.Nil(t, failure)
	assert.NoError(t, err)
}

/*
TestInvalid builds the pre-flight validation failure and encodes it.
*/
func TestInvalid(t *testing.T) {
	fields := apperr.FoldFieldErrors([]apperr.FieldError{
		{Field: "username", Message: "Username must be at least 3 characters"},
		{Field: "password", Message: "Password must be at least 6 characters"},
	})

	failure := outcome.Invalid(fields, map[string]string{"username": "al"})
	assert.Equal(t, http.StatusBadRequest, failure.Status)

	raw, err := json.Marshal(failure)
	require.NoError(t, err)
	assert.Equal(t,
		`{"errors":{"username":["Username must be at least 3 characters"],"password":["Password must be at least 6 characters"]},"data":{"username":"al"}}`,
		string(raw))
}
