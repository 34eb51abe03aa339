// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
)

// Sentinel errors returned by the data service and repositories to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrUnknownTable is returned when a query names a table the data
	// service does not expose.
	ErrUnknownTable = errors.New("unknown table")

	// ErrUnknownColumn is returned when a filter, order key or written field
	// names a column the table does not have.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidValue is returned when a written or filtered value cannot be
	// converted to the column's type.
	ErrInvalidValue = errors.New("invalid column value")

	// ErrNotSingleRow is returned by a single-row update that matched zero
	// or several rows. It is the adapter sentinel so that callers match one
	// value for every data service.
	ErrNotSingleRow = adapter.ErrNotSingleRow

	// ErrEmptyPatch is returned by an update without any column to set.
	ErrEmptyPatch = errors.New("nothing to update")

	// ErrPrimaryGoalConflict is returned when a write would leave a user
	// with two primary goals.
	ErrPrimaryGoalConflict = errors.New("user already has a primary goal")

	// ErrConstraintViolation is returned for any other integrity violation
	// (missing required column, duplicate key, failed check).
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrUserNotFound is returned when no account matches the lookup.
	ErrUserNotFound = errors.New("no user was found")

	// ErrTokenNotFound is returned when a one-time token is unknown, expired
	// or already consumed.
	ErrTokenNotFound = errors.New("one-time token is invalid or expired")
)

// Low-level database operation errors. These wrap the driver error when a
// SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRows is returned when reading a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
