// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package outcome translates classified content API errors for the two kinds of call sites.

  - Load (read operations): the error becomes a terminal navigation error ([*apperr.AppError]).
  - Action (write operations): the error becomes a same-page [Failure] that the form re-renders.

Callers choose the translation by operation kind, not by error kind. Errors that
are not [*apiclient.Error] are returned unchanged so they reach the host's
fatal-error handling instead of being swallowed.
*/
package outcome

import (
	"net/http"

	"github.com/taibuivan/postly/internal/platform/apiclient"
	"github.com/taibuivan/postly/internal/platform/apperr"
)

// Failure is a non-fatal action result: the originating form is shown again with errors.
type Failure struct {
	// Status is the HTTP status of the response.
	Status int `json:"-"`
	// Message is the form-level error message.
	Message string `json:"message,omitempty"`
	// Errors holds per-field messages, when any.
	Errors *apperr.FieldErrors `json:"errors,omitempty"`
	// Data echoes the submitted non-secret form values.
	Data map[string]string `json:"data,omitempty"`
}

// Load converts err into a navigation error for a page load.
//
// A classified error keeps its status (500 when absent) and message.
// Any other error is returned unchanged.
func Load(err error) error {
	if err == nil {
		return nil
	}

	classified, ok := apiclient.AsError(err)
	if !ok {
		return err
	}

	return apperr.FromStatus(statusOr500(classified), classified.Message, classified)
}

// Action converts err into a same-page failure for a form action.
//
// For a classified error it returns the failure and a nil error. Any other
// error is returned unchanged as the second value with a nil failure.
func Action(err error) (*Failure, error) {
	if err == nil {
		return nil, nil
	}

	classified, ok := apiclient.AsError(err)
	if !ok {
		return nil, err
	}

	return &Failure{
		Status:  statusOr500(classified),
		Message: classified.Message,
		Errors:  classified.Fields,
	}, nil
}

// Invalid builds the 400 failure for input rejected before the content API is called.
func Invalid(fields apperr.FieldErrors, data map[string]string) *Failure {
	return &Failure{
		Status: http.StatusBadRequest,
		Errors: &fields,
		Data:   data,
	}
}

// WithData returns a copy of the failure that echoes data back to the form.
func (f Failure) WithData(data map[string]string) *Failure {
	f.Data = data
	return &f
}

func statusOr500(classified *apiclient.Error) int {
	if classified.HasStatus() {
		return classified.Status
	}
	return http.StatusInternalServerError
}
