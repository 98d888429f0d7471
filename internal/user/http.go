// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/postly/internal/platform/apiclient"
	"github.com/taibuivan/postly/internal/platform/apperr"
	"github.com/taibuivan/postly/internal/platform/outcome"
	requestutil "github.com/taibuivan/postly/internal/platform/request"
	"github.com/taibuivan/postly/internal/platform/respond"
	"github.com/taibuivan/postly/pkg/pagination"
)

// API is the part of [Client] the handler needs.
type API interface {
	GetUser(ctx context.Context, transport apiclient.Transport, id int, params pagination.Params) (*UserResult, error)
}

// Handler serves profile pages.
type Handler struct {
	api        API
	transports apiclient.TransportSource
}

// NewHandler constructs a new [Handler].
func NewHandler(api API, transports apiclient.TransportSource) *Handler {
	return &Handler{api: api, transports: transports}
}

// Routes returns a [chi.Router] for everything under /users.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{id}", handler.profile)
	return router
}

// profile handles GET /users/{id}?page&limit.
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	id, ok := requestutil.PositiveID(request, "id")
	if !ok {
		respond.Error(writer, request, apperr.BadRequest("Invalid user ID"))
		return
	}

	result, err := handler.api.GetUser(request.Context(), handler.transports.For(request), id, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, outcome.Load(err))
		return
	}

	respond.OK(writer, result)
}
