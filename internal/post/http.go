// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/postly/internal/platform/apiclient"
	"github.com/taibuivan/postly/internal/platform/apperr"
	"github.com/taibuivan/postly/internal/platform/outcome"
	requestutil "github.com/taibuivan/postly/internal/platform/request"
	"github.com/taibuivan/postly/internal/platform/respond"
	"github.com/taibuivan/postly/internal/platform/validate"
	"github.com/taibuivan/postly/pkg/pagination"
)

const (
	// maxCommentLength bounds a comment after trimming.
	maxCommentLength = 500
	errInvalidPostID = "Invalid post ID"
)

// API is the part of [Client] the handlers need.
type API interface {
	ListPosts(ctx context.Context, transport apiclient.Transport, params pagination.Params) (*PostsResult, error)
	GetPost(ctx context.Context, transport apiclient.Transport, id int) (*PostDetailResult, error)
	LikePost(ctx context.Context, transport apiclient.Transport, id int) error
	CreateComment(ctx context.Context, transport apiclient.Transport, id int, input CommentCreateInput) error
}

// Handler serves the feed and post pages and their actions.
type Handler struct {
	api        API
	transports apiclient.TransportSource
}

// NewHandler constructs a new [Handler].
func NewHandler(api API, transports apiclient.TransportSource) *Handler {
	return &Handler{api: api, transports: transports}
}

// Routes returns a [chi.Router] for everything under /posts.
//
// # Endpoints
//   - GET  /{id}          : Post page.
//   - POST /{id}/like     : Like action.
//   - POST /{id}/comments : Comment action.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.detail)
	router.Post("/{id}/like", handler.like)
	router.Post("/{id}/comments", handler.comment)

	return router
}

// Home handles GET /: one page of the feed, honoring ?page and ?limit.
func (handler *Handler) Home(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.api.ListPosts(request.Context(), handler.transports.For(request), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, outcome.Load(err))
		return
	}

	respond.OK(writer, map[string]any{"postsResult": result})
}

// detail handles GET /posts/{id}.
//
// A malformed ID is rejected with 400 before any network call.
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	id, ok := requestutil.PositiveID(request, "id")
	if !ok {
		respond.Error(writer, request, apperr.BadRequest(errInvalidPostID))
		return
	}

	result, err := handler.api.GetPost(request.Context(), handler.transports.For(request), id)
	if err != nil {
		respond.Error(writer, request, outcome.Load(err))
		return
	}

	respond.OK(writer, result)
}

// like handles POST /posts/{id}/like.
//
// API failures, including 429 rate limiting, stay on the page.
func (handler *Handler) like(writer http.ResponseWriter, request *http.Request) {
	id, ok := requestutil.PositiveID(request, "id")
	if !ok {
		respond.Error(writer, request, apperr.BadRequest(errInvalidPostID))
		return
	}

	if err := handler.api.LikePost(request.Context(), handler.transports.For(request), id); err != nil {
		handler.fail(writer, request, err, nil)
		return
	}

	respond.SeeOther(writer, request, requestutil.RedirectTarget(request, postPath(id)))
}

// comment handles POST /posts/{id}/comments.
func (handler *Handler) comment(writer http.ResponseWriter, request *http.Request) {
	id, ok := requestutil.PositiveID(request, "id")
	if !ok {
		respond.Error(writer, request, apperr.BadRequest(errInvalidPostID))
		return
	}

	form, err := requestutil.Form(request, "content")
	if err != nil {
		respond.Error(writer, request, apperr.BadRequest("Invalid form submission"))
		return
	}

	input := CommentCreateInput{Content: strings.TrimSpace(form["content"])}
	echo := map[string]string{"content": form["content"]}

	v := &validate.Validator{}
	v.Required("content", input.Content, "Content is required").
		MaxLen("content", input.Content, maxCommentLength, "Comment must be 500 characters or less")
	if v.HasErrors() {
		respond.Fail(writer, request, outcome.Invalid(v.Fields(), echo))
		return
	}

	if err := handler.api.CreateComment(request.Context(), handler.transports.For(request), id, input); err != nil {
		handler.fail(writer, request, err, echo)
		return
	}

	respond.SeeOther(writer, request, requestutil.RedirectTarget(request, postPath(id)))
}

// fail renders an API error as a same-page failure.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error, echo map[string]string) {
	failure, err := outcome.Action(err)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Fail(writer, request, failure.WithData(echo))
}

func postPath(id int) string {
	return fmt.Sprintf("/posts/%d", id)
}
