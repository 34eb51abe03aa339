// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/store"
	"github.com/MKhiriev/go-savings-jar/internal/validators"
	"github.com/MKhiriev/go-savings-jar/models"
)

// dataService narrows every request to the caller's rows and checks written
// values against validator. Unknown tables and columns are rejected by the
// row store.
type dataService struct {
	rows      RowStore
	validator validators.Validator
	logger    *logger.Logger
}

func NewDataService(rows RowStore, validator validators.Validator, logger *logger.Logger) DataService {
	return &dataService{rows: rows, validator: validator, logger: logger}
}

// scope adds the owner filter. A filter on another user's id is refused
// rather than silently narrowed to nothing.
func scope(userID string, q *adapter.Query) (*adapter.Query, error) {
	if userID == "" {
		return nil, ErrOwnershipViolation
	}

	for _, f := range q.Filters {
		if f.Column == models.ColumnUserID && adapter.FormatValue(f.Value) != userID {
			return nil, ErrOwnershipViolation
		}
	}

	scoped := *q
	scoped.Filters = append([]adapter.Filter{{Column: models.ColumnUserID, Op: adapter.OpEq, Value: userID}}, q.Filters...)
	return &scoped, nil
}

func (s *dataService) Select(ctx context.Context, userID string, q *adapter.Query) ([]store.Row, error) {
	scoped, err := scope(userID, q)
	if err != nil {
		return nil, err
	}
	return s.rows.SelectRows(ctx, scoped)
}

// Insert stamps every row with userID and writes them all or none.
func (s *dataService) Insert(ctx context.Context, userID, table string, rows []store.Row) ([]store.Row, error) {
	if userID == "" {
		return nil, ErrOwnershipViolation
	}
	if len(rows) == 0 {
		return nil, ErrInvalidDataProvided
	}

	stored := make([]store.Row, 0, len(rows))
	err := s.rows.WithinTx(ctx, func(ctx context.Context) error {
		stored = stored[:0]
		for _, row := range rows {
			if owner, ok := row[models.ColumnUserID]; ok && owner != nil && adapter.FormatValue(owner) != userID {
				return ErrOwnershipViolation
			}

			if err := s.validator.Validate(ctx, validators.NewRow{Table: table, Values: row}); err != nil {
				return fmt.Errorf("%w: %w", ErrRowRejected, err)
			}

			owned := make(store.Row, len(row)+1)
			for column, value := range row {
				owned[column] = value
			}
			owned[models.ColumnUserID] = userID

			created, err := s.rows.InsertRow(ctx, table, owned)
			if err != nil {
				return err
			}
			stored = append(stored, created)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("table", table).Str("user_id", userID).Msg("insert failed")
		return nil, fmt.Errorf("insert into %s: %w", table, err)
	}

	return stored, nil
}

// Update never moves rows to another owner.
func (s *dataService) Update(ctx context.Context, userID string, q *adapter.Query, patch store.Row) ([]store.Row, error) {
	if _, ok := patch[models.ColumnUserID]; ok {
		return nil, ErrOwnershipViolation
	}
	if err := s.validator.Validate(ctx, validators.RowPatch{Table: q.Table, Values: patch}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRowRejected, err)
	}

	scoped, err := scope(userID, q)
	if err != nil {
		return nil, err
	}
	return s.rows.UpdateRows(ctx, scoped, patch)
}

func (s *dataService) Delete(ctx context.Context, userID string, q *adapter.Query) error {
	scoped, err := scope(userID, q)
	if err != nil {
		return err
	}
	return s.rows.Delete(ctx, scoped)
}
