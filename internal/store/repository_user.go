// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/utils"
	"github.com/MKhiriev/go-savings-jar/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
type userRepository struct {
	logger *logger.Logger
	db     *DB
	ids    *utils.UUIDGenerator
	now    func() time.Time
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
	}
}

// FindOrCreateUser inserts the account unless the email is taken, then reads
// it back. Emails are compared lower-cased.
func (r *userRepository) FindOrCreateUser(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	candidate := models.User{UserID: r.ids.Generate(), Email: email, CreatedAt: r.now()}

	var user models.User
	err := r.db.WithinTx(ctx, func(ctx context.Context) error {
		query, args, err := buildInsertUserQuery(r.db.builder, candidate)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		// create user in db unless the email is registered
		if _, err = r.db.querier(ctx).ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*userRepository.FindOrCreateUser").Msg("error inserting user")
			return fmt.Errorf("unexpected DB error: %w", r.db.translate(err))
		}

		user, err = r.findUser(ctx, sq.Eq{columnUserEmail: email})
		return err
	})
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{models.ColumnID: userID})
}

func (r *userRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(r.db.builder, where)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	row := r.db.querier(ctx).QueryRowContext(ctx, query, args...)
	// scan found user from db
	if err = row.Scan(&user.UserID, &user.Email, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}
