// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/utils"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &userRepository{
		db:     db,
		logger: logger.Nop(),
		ids:    utils.NewUUIDGenerator(),
		now:    func() time.Time { return testNow },
	}, mock
}

func TestFindOrCreateUser_CreatesOnFirstUse(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users \\(id,email,created_at\\) VALUES \\(\\$1,\\$2,\\$3\\) ON CONFLICT \\(email\\) DO NOTHING").
		WithArgs(sqlmock.AnyArg(), "ana@example.com", testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, email, created_at FROM users WHERE email = \\$1").
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at"}).AddRow("user-1", "ana@example.com", testNow))
	mock.ExpectCommit()

	user, err := repo.FindOrCreateUser(context.Background(), "  Ana@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateUser_InsertError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("db network error"))
	mock.ExpectRollback()

	_, err := repo.FindOrCreateUser(context.Background(), "ana@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected DB error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByID(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT id, email, created_at FROM users WHERE id = \\$1").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at"}).AddRow("user-1", "ana@example.com", testNow))

	user, err := repo.FindUserByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT id, email, created_at FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at"}))

	_, err := repo.FindUserByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
