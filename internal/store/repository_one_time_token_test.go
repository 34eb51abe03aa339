// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/models"
)

func newTestTokenRepo(t *testing.T) (*oneTimeTokenRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &oneTimeTokenRepository{db: db, logger: logger.Nop()}, mock
}

func TestSaveOneTimeToken(t *testing.T) {
	repo, mock := newTestTokenRepo(t)
	token := models.OneTimeToken{
		TokenHash:  "hash",
		Email:      "ana@example.com",
		RedirectTo: "http://localhost:3000",
		ExpiresAt:  testNow.Add(15 * time.Minute),
		CreatedAt:  testNow,
	}

	mock.ExpectExec("INSERT INTO auth_otp").
		WithArgs("hash", "ana@example.com", "http://localhost:3000", token.ExpiresAt, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveOneTimeToken(context.Background(), token))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveOneTimeToken_Duplicate(t *testing.T) {
	repo, mock := newTestTokenRepo(t)

	mock.ExpectExec("INSERT INTO auth_otp").WillReturnError(pgError(pgerrcode.UniqueViolation, "auth_otp_pkey"))

	err := repo.SaveOneTimeToken(context.Background(), models.OneTimeToken{TokenHash: "hash"})
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestConsumeOneTimeToken(t *testing.T) {
	repo, mock := newTestTokenRepo(t)

	mock.ExpectQuery("UPDATE auth_otp SET consumed_at").
		WithArgs(testNow, "hash", testNow).
		WillReturnRows(sqlmock.NewRows([]string{"token_hash", "email", "redirect_to", "expires_at", "consumed_at", "created_at"}).
			AddRow("hash", "ana@example.com", "", testNow.Add(time.Minute), testNow, testNow.Add(-time.Minute)))

	token, err := repo.ConsumeOneTimeToken(context.Background(), "hash", testNow)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", token.Email)
	require.NotNil(t, token.ConsumedAt)
	assert.False(t, token.Usable(testNow))
}

func TestConsumeOneTimeToken_UsedOrExpired(t *testing.T) {
	repo, mock := newTestTokenRepo(t)

	mock.ExpectQuery("UPDATE auth_otp SET consumed_at").
		WillReturnRows(sqlmock.NewRows([]string{"token_hash", "email", "redirect_to", "expires_at", "consumed_at", "created_at"}))

	_, err := repo.ConsumeOneTimeToken(context.Background(), "hash", testNow)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestDeleteStaleTokens(t *testing.T) {
	repo, mock := newTestTokenRepo(t)

	mock.ExpectExec("DELETE FROM auth_otp").
		WithArgs(testNow).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteStaleTokens(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
