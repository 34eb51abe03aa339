// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/models"
)

type oneTimeTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewOneTimeTokenRepository constructs a [OneTimeTokenRepository] over the
// "auth_otp" table.
func NewOneTimeTokenRepository(db *DB, logger *logger.Logger) OneTimeTokenRepository {
	logger.Debug().Msg("creating one-time token repository")
	return &oneTimeTokenRepository{
		db:     db,
		logger: logger,
	}
}

func (r *oneTimeTokenRepository) SaveOneTimeToken(ctx context.Context, token models.OneTimeToken) error {
	query, args, err := buildInsertOneTimeTokenQuery(r.db.builder, token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.querier(ctx).ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*oneTimeTokenRepository.SaveOneTimeToken").Msg("error saving token")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.translate(err))
	}

	return nil
}

// ConsumeOneTimeToken flips consumed_at in one conditional UPDATE, so a
// token can be exchanged once even under concurrent verifications.
func (r *oneTimeTokenRepository) ConsumeOneTimeToken(ctx context.Context, tokenHash string, now time.Time) (models.OneTimeToken, error) {
	query, args, err := buildConsumeOneTimeTokenQuery(r.db.builder, tokenHash, now)
	if err != nil {
		return models.OneTimeToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		token      models.OneTimeToken
		consumedAt sql.NullTime
	)
	row := r.db.querier(ctx).QueryRowContext(ctx, query, args...)
	err = row.Scan(&token.TokenHash, &token.Email, &token.RedirectTo, &token.ExpiresAt, &consumedAt, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OneTimeToken{}, ErrTokenNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*oneTimeTokenRepository.ConsumeOneTimeToken").Msg("error consuming token")
		return models.OneTimeToken{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if consumedAt.Valid {
		token.ConsumedAt = &consumedAt.Time
	}

	return token, nil
}

func (r *oneTimeTokenRepository) DeleteStaleTokens(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := buildDeleteStaleTokensQuery(r.db.builder, now)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.querier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return result.RowsAffected()
}
