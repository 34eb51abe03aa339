// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Errors that are not PostgreSQL
// driver errors are [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if pgErr, ok := postgresError(err); ok {
		return ClassifyPgError(pgErr)
	}
	return NonRetryable
}

// Translate implements [ErrorClassificator] for class 23 errors.
func (c *PostgresErrorClassifier) Translate(err error) error {
	pgErr, ok := postgresError(err)
	if !ok || !pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return err
	}

	if pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == primaryGoalIndex {
		return fmt.Errorf("%w: %w", ErrPrimaryGoalConflict, err)
	}
	return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification] based on
// the PostgreSQL error code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
//
// Retryable codes:
//   - Class 08: connection exceptions
//   - Class 40: serialization failure, deadlock
//   - 57P03: cannot connect now
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch {
	case pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsTransactionRollback(pgErr.Code),
		pgErr.Code == pgerrcode.CannotConnectNow:
		return Retryable
	}

	return NonRetryable
}
