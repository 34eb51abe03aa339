// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-savings-jar/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository stores accounts of the self-hosted identity provider.
type UserRepository interface {
	// FindOrCreateUser returns the account registered for email, creating
	// it on first use.
	FindOrCreateUser(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
}

// OneTimeTokenRepository stores pending magic-link tokens by their keyed
// hash.
type OneTimeTokenRepository interface {
	SaveOneTimeToken(ctx context.Context, token models.OneTimeToken) error

	// ConsumeOneTimeToken marks the token used and returns it. It fails with
	// [ErrTokenNotFound] when the token is unknown, expired at now or
	// already consumed.
	ConsumeOneTimeToken(ctx context.Context, tokenHash string, now time.Time) (models.OneTimeToken, error)

	// DeleteStaleTokens removes consumed tokens and tokens expired at now.
	DeleteStaleTokens(ctx context.Context, now time.Time) (int64, error)
}

// ErrorClassification is the result type returned by
// [ErrorClassificator.Classify]. It indicates whether a failed database
// operation should be retried or abandoned.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors, constraint
	// violations, syntax errors, and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again (e.g. after a transient connection loss or a deadlock rollback).
	Retryable
)

// ErrorClassificator knows the error codes of one database driver.
type ErrorClassificator interface {
	// Classify tells whether a transaction failing with err may be retried.
	Classify(err error) ErrorClassification

	// Translate maps integrity violations to the package sentinels and
	// returns any other error unchanged.
	Translate(err error) error
}
