// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/postly/internal/platform/apiclient"
	"github.com/taibuivan/postly/internal/platform/constants"
	"github.com/taibuivan/postly/internal/platform/session"
	"github.com/taibuivan/postly/internal/post"
)

const postJSON = `{"post":{
	"id":3,"title":"Hello","content":"World","published":true,"authorId":7,
	"createdAt":"2026-01-02T03:04:05.000Z","updatedAt":"2026-01-02T03:04:05.000Z",
	"author":{"id":7,"username":"alice","role":"USER"},
	"_count":{"comments":1,"likes":4},
	"comments":[{"id":1,"content":"hi","postId":3,"authorId":null,"guestName":"guest",
		"createdAt":"2026-01-02T03:04:05.000Z","updatedAt":"2026-01-02T03:04:05.000Z","author":null}],
	"isLikedByCurrentUser":true
}}`

type fixture struct {
	router http.Handler
	calls  *atomic.Int32
}

func newFixture(t *testing.T, timeout time.Duration, backend http.HandlerFunc) fixture {
	t.Helper()

	calls := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)
		backend(writer, request)
	}))
	t.Cleanup(server.Close)

	api, err := apiclient.New(apiclient.Config{BaseURL: server.URL + "/api", Timeout: timeout})
	require.NoError(t, err)

	forwarder, err := session.NewForwarder(server.Client(), api.BaseURL())
	require.NoError(t, err)

	handler := post.NewHandler(post.NewClient(api), forwarder)

	router := chi.NewRouter()
	router.Get("/", handler.Home)
	router.Mount("/posts", handler.Routes())

	return fixture{router: router, calls: calls}
}

func writeJSON(writer http.ResponseWriter, status int, body string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_, _ = io.WriteString(writer, body)
}

func serve(f fixture, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHome forwards pagination and wraps the result.
*/
func TestHome(t *testing.T) {
	tests := []struct {
		target    string
		wantQuery string
	}{
		{"/", ""},
		{"/?page=2", "page=2"},
		{"/?limit=5&page=3", "page=3&limit=5"},
		{"/?page=abc&limit=", ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			f := newFixture(t, time.Second, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, "/api/posts", request.URL.Path)
				assert.Equal(t, tt.wantQuery, request.URL.RawQuery)
				writeJSON(writer, http.StatusOK, `{"posts":[],"pagination":{"page":1,"limit":10,"total":0,"totalPages":0,"hasNextPage":false,"hasPrevPage":false}}`)
			})

			recorder := serve(f, httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.Equal(t, http.StatusOK, recorder.Code)

			var body struct {
				Data struct {
					PostsResult post.PostsResult `json:"postsResult"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, 1, body.Data.PostsResult.Pagination.Page)
		})
	}
}

/*
TestHome_Timeout turns a slow API into a 408 navigation error.
*/
func TestHome_Timeout(t *testing.T) {
	f := newFixture(t, 50*time.Millisecond, func(writer http.ResponseWriter, request *http.Request) {
		select {
		case <-request.Context().Done():
		case <-time.After(time.Second):
		}
		writeJSON(writer, http.StatusOK, `{}`)
	})

	recorder := serve(f, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusRequestTimeout, recorder.Code)
	assert.JSONEq(t, `{"error":"Request timeout","code":"TIMEOUT"}`, recorder.Body.String())
}

/*
TestDetail decodes the post page.
*/
func TestDetail(t *testing.T) {
	f := newFixture(t, time.Second, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/posts/3", request.URL.Path)
		writeJSON(writer, http.StatusOK, postJSON)
	})

	recorder := serve(f, httptest.NewRequest(http.MethodGet, "/posts/3", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data post.PostDetailResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	detail := body.Data.Post
	assert.Equal(t, "Hello", detail.Title)
	assert.Equal(t, "alice", detail.Author.Username)
	assert.Equal(t, 4, detail.Count.Likes)
	assert.True(t, detail.IsLikedByCurrentUser)
	require.Len(t, detail.Comments, 1)
	assert.Nil(t, detail.Comments[0].Author)
	require.NotNil(t, detail.Comments[0].GuestName)
	assert.Equal(t, "guest", *detail.Comments[0].GuestName)
}

/*
TestDetail_InvalidID rejects malformed IDs before any network call.
*/
func TestDetail_InvalidID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-4", "1.5"} {
		t.Run(id, func(t *testing.T) {
			f := newFixture(t, time.Second, func(http.ResponseWriter, *http.Request) {})

			recorder := serve(f, httptest.NewRequest(http.MethodGet, "/posts/"+id, nil))
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.JSONEq(t, `{"error":"Invalid post ID","code":"BAD_REQUEST"}`, recorder.Body.String())
			assert.Zero(t, f.calls.Load())
		})
	}
}

/*
TestDetail_NotFound keeps the API status and message.
*/
func TestDetail_NotFound(t *testing.T) {
	f := newFixture(t, time.Second, func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusNotFound, `{"message":"Post not found"}`)
	})

	recorder := serve(f, httptest.NewRequest(http.MethodGet, "/posts/99", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"Post not found","code":"NOT_FOUND"}`, recorder.Body.String())
}

/*
TestLike covers success with cookie forwarding and the rate-limited failure.
*/
func TestLike(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t, time.Second, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "/api/posts/3/like", request.URL.Path)

			cookie, err := request.Cookie(constants.SessionCookieName)
			if assert.NoError(t, err) {
				assert.Equal(t, "signed.token", cookie.Value)
			}
			writeJSON(writer, http.StatusOK, `{"liked":true}`)
		})

		request := httptest.NewRequest(http.MethodPost, "/posts/3/like", nil)
		request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "signed.token"})

		recorder := serve(f, request)
		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, "/posts/3", recorder.Header().Get("Location"))
	})

	t.Run("rate_limited", func(t *testing.T) {
		f := newFixture(t, time.Second, func(writer http.ResponseWriter, _ *http.Request) {
			writeJSON(writer, http.StatusTooManyRequests, `{"message":"Too many likes, slow down"}`)
		})

		recorder := serve(f, httptest.NewRequest(http.MethodPost, "/posts/3/like", nil))
		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		assert.JSONEq(t, `{"message":"Too many likes, slow down"}`, recorder.Body.String())
	})

	t.Run("invalid_id", func(t *testing.T) {
		f := newFixture(t, time.Second, func(http.ResponseWriter, *http.Request) {})

		recorder := serve(f, httptest.NewRequest(http.MethodPost, "/posts/x/like", nil))
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Zero(t, f.calls.Load())
	})
}

/*
TestComment covers validation, trimming, and API failures.
*/
func TestComment(t *testing.T) {
	submit := func(content string) *http.Request {
		request := httptest.NewRequest(http.MethodPost, "/posts/3/comments", strings.NewReader(url.Values{"content": {content}}.Encode()))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return request
	}

	t.Run("trimmed_and_sent", func(t *testing.T) {
		f := newFixture(t, time.Second, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/posts/3/comments", request.URL.Path)

			var input post.CommentCreateInput
			assert.NoError(t, json.NewDecoder(request.Body).Decode(&input))
			assert.Equal(t, "nice post", input.Content)
			writer.WriteHeader(http.StatusCreated)
		})

		recorder := serve(f, submit("  nice post \n"))
		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, "/posts/3", recorder.Header().Get("Location"))
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			message string
		}{
			{"blank", "   ", "Content is required"},
			{"too_long", strings.Repeat("a", 501), "Comment must be 500 characters or less"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t, time.Second, func(http.ResponseWriter, *http.Request) {})

				recorder := serve(f, submit(tt.content))
				assert.Equal(t, http.StatusBadRequest, recorder.Code)

				var failure struct {
					Errors map[string][]string `json:"errors"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &failure))
				assert.Equal(t, []string{tt.message}, failure.Errors["content"])
				assert.Zero(t, f.calls.Load())
			})
		}
	})

	t.Run("exactly_500_after_trim", func(t *testing.T) {
		f := newFixture(t, time.Second, func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusCreated)
		})

		recorder := serve(f, submit(" "+strings.Repeat("a", 500)+" "))
		assert.Equal(t, http.StatusSeeOther, recorder.Code)
	})

	t.Run("unauthorized", func(t *testing.T) {
		f := newFixture(t, time.Second, func(writer http.ResponseWriter, _ *http.Request) {
			writeJSON(writer, http.StatusUnauthorized, `{"message":"Login required"}`)
		})

		recorder := serve(f, submit("hello"))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"message":"Login required","data":{"content":"hello"}}`, recorder.Body.String())
	})
}
