// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/internal/store"
	"github.com/MKhiriev/go-savings-jar/models"
)

//go:generate mockgen -source=interfaces.go -destination=mock/service_mock.go -package=mock -mock_names=DataService=MockScopedDataService

// IdentityConsumer is told about every change of the signed-in user. An
// empty userID means signed out.
type IdentityConsumer interface {
	SetIdentity(ctx context.Context, userID string) error
}

// SessionSource is the part of the Session Manager the identity watcher
// needs.
type SessionSource interface {
	Subscribe(fn func(SessionState)) (unsubscribe func())
	State() SessionState
}

// AuthService is the self-hosted passwordless identity provider.
type AuthService interface {
	// RequestOTP mails a single-use sign-in link for email that lands on
	// redirectTo.
	RequestOTP(ctx context.Context, email, redirectTo string) error

	// VerifyOTP consumes the token of a sign-in link and opens a session,
	// registering the user on first sign-in.
	VerifyOTP(ctx context.Context, token, otpType string) (models.SessionResponse, error)

	// ParseToken validates an access token issued by VerifyOTP.
	ParseToken(ctx context.Context, accessToken string) (models.Token, error)
}

// Mailer delivers sign-in links.
type Mailer interface {
	SendMagicLink(ctx context.Context, email, link string) error
}

// DataService serves the data-service tables to the owner of the rows
// only. Every query is narrowed to userID and every written row is stamped
// with it.
type DataService interface {
	Select(ctx context.Context, userID string, q *adapter.Query) ([]store.Row, error)
	Insert(ctx context.Context, userID, table string, rows []store.Row) ([]store.Row, error)
	Update(ctx context.Context, userID string, q *adapter.Query, patch store.Row) ([]store.Row, error)
	Delete(ctx context.Context, userID string, q *adapter.Query) error
}

// RowStore is the row-level API of [store.SQLDataService].
type RowStore interface {
	adapter.Transactor
	SelectRows(ctx context.Context, q *adapter.Query) ([]store.Row, error)
	InsertRow(ctx context.Context, table string, row map[string]any) (store.Row, error)
	UpdateRows(ctx context.Context, q *adapter.Query, patch map[string]any) ([]store.Row, error)
	Delete(ctx context.Context, q *adapter.Query) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
