// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	// ErrNotSingleRow is returned when an operation that expects exactly one
	// row sees zero or several.
	ErrNotSingleRow = errors.New("expected exactly one row")
	// ErrBadFilter reports a malformed filter or order expression.
	ErrBadFilter = errors.New("malformed query")
	// ErrNoSession is returned by calls that need a signed-in session.
	ErrNoSession = errors.New("no active session")
)

// APIError is a non-2xx answer of a remote service. Message is the
// human-readable text the service sent and is safe to show to users.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// ErrorMessage returns the user-facing text of err: the remote message for
// an [APIError], err.Error() otherwise.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
