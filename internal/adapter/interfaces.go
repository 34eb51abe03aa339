// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter defines the contracts of the two external collaborators
// the client core depends on, a relational data service and a passwordless
// identity provider, and ships REST implementations of both over resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-savings-jar/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// DataService is a generic query/mutation API over the user's tables.
// Implementations decode rows into dest with the JSON field names of the
// models package.
type DataService interface {
	// Select runs q and decodes every row into dest, a pointer to a slice.
	Select(ctx context.Context, q *Query, dest any) error

	// Insert writes one row into table. When dest is non-nil the stored row
	// is decoded into it.
	Insert(ctx context.Context, table string, row map[string]any, dest any) error

	// Update applies patch to every row matched by q. When dest is nil any
	// number of rows may match; otherwise exactly one row must match and is
	// decoded into dest, or [ErrNotSingleRow] is returned.
	Update(ctx context.Context, q *Query, patch map[string]any, dest any) error

	// Delete removes every row matched by q.
	Delete(ctx context.Context, q *Query) error
}

// Transactor is implemented by data services that can run several calls
// atomically. Calls made with the ctx handed to fn join the transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenSource yields the bearer token for data requests.
type TokenSource interface {
	AccessToken() string
}

// IdentityProvider is a passwordless (magic-link) authentication service.
type IdentityProvider interface {
	TokenSource

	// GetCurrentSession returns the live session, or nil when signed out.
	GetCurrentSession(ctx context.Context) (*models.Session, error)

	// OnSessionChange registers fn for every session transition. The
	// returned function removes the registration and is safe to call more
	// than once.
	OnSessionChange(fn func(models.SessionEvent)) (unsubscribe func())

	// RequestOTP sends a magic link for email that lands on redirectTo.
	RequestOTP(ctx context.Context, email, redirectTo string) error

	// VerifyOTP exchanges the token carried by a magic link for a session.
	VerifyOTP(ctx context.Context, tokenHash, otpType string) error

	// SignOut ends the session. The local session is dropped even when the
	// remote call fails.
	SignOut(ctx context.Context) error
}

// SessionStorage persists the signed-in session between runs.
type SessionStorage interface {
	// Load returns the stored session, or nil when none is stored.
	Load() (*models.Session, error)
	Save(session *models.Session) error
	Clear() error
}
