// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/postly/internal/platform/apiclient"
	"github.com/taibuivan/postly/internal/platform/session"
	"github.com/taibuivan/postly/internal/user"
)

func newRouter(t *testing.T, calls *atomic.Int32, backend http.HandlerFunc) http.Handler {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)
		backend(writer, request)
	}))
	t.Cleanup(server.Close)

	api, err := apiclient.New(apiclient.Config{BaseURL: server.URL + "/api", Timeout: time.Second})
	require.NoError(t, err)

	forwarder, err := session.NewForwarder(server.Client(), api.BaseURL())
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Mount("/users", user.NewHandler(user.NewClient(api), forwarder).Routes())
	return router
}

/*
TestProfile loads an author and their posts.
*/
func TestProfile(t *testing.T) {
	calls := &atomic.Int32{}
	router := newRouter(t, calls, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/posts/authors/7", request.URL.Path)
		assert.Equal(t, "page=2", request.URL.RawQuery)

		writer.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(writer, `{
			"user":{"id":7,"username":"alice","role":"USER"},
			"posts":[],
			"pagination":{"page":2,"limit":10,"total":11,"totalPages":2,"hasNextPage":false,"hasPrevPage":true}
		}`)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/users/7?page=2", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data user.UserResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "alice", body.Data.User.Username)
	assert.True(t, body.Data.Pagination.HasPrevPage)
	assert.Empty(t, body.Data.Posts)
}

/*
TestProfile_Errors covers the pre-flight 400 and a translated API error.
*/
func TestProfile_Errors(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		status    int
		body      string
		wantCalls int32
	}{
		{"non_numeric", "/users/abc", http.StatusBadRequest, `{"error":"Invalid user ID","code":"BAD_REQUEST"}`, 0},
		{"zero", "/users/0", http.StatusBadRequest, `{"error":"Invalid user ID","code":"BAD_REQUEST"}`, 0},
		{"missing", "/users/404", http.StatusNotFound, `{"error":"User not found","code":"NOT_FOUND"}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := &atomic.Int32{}
			router := newRouter(t, calls, func(writer http.ResponseWriter, _ *http.Request) {
				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(http.StatusNotFound)
				_, _ = io.WriteString(writer, `{"message":"User not found"}`)
			})

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.status, recorder.Code)
			assert.JSONEq(t, tt.body, recorder.Body.String())
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}
