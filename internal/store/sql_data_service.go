// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/utils"
)

// Row is one table row in wire form, keyed by column name.
type Row = map[string]any

// SQLDataService implements [adapter.DataService] and [adapter.Transactor]
// on a relational database. Query results are decoded into dest through
// their JSON form, exactly as the REST implementation does, so the models
// package needs a single set of field tags.
type SQLDataService struct {
	db     *DB
	ids    *utils.UUIDGenerator
	now    func() time.Time
	logger *logger.Logger
}

var (
	_ adapter.DataService = (*SQLDataService)(nil)
	_ adapter.Transactor  = (*SQLDataService)(nil)
)

// NewSQLDataService constructs a data service over db. Row ids are UUIDv7
// and created_at is stamped with the server clock.
func NewSQLDataService(db *DB, logger *logger.Logger) *SQLDataService {
	logger.Debug().Msg("creating sql data service")
	return &SQLDataService{
		db:     db,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		logger: logger,
	}
}

// WithinTx implements [adapter.Transactor].
func (s *SQLDataService) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.db.WithinTx(ctx, fn)
}

// Select implements [adapter.DataService].
func (s *SQLDataService) Select(ctx context.Context, q *adapter.Query, dest any) error {
	rows, err := s.SelectRows(ctx, q)
	if err != nil {
		return err
	}
	return decodeInto(rows, dest)
}

// SelectRows returns the rows matched by q in wire form.
func (s *SQLDataService) SelectRows(ctx context.Context, q *adapter.Query) ([]Row, error) {
	query, args, err := buildSelectQuery(s.db.builder, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.queryRows(ctx, q.Table, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SQLDataService.SelectRows").Str("table", q.Table).Msg("select failed")
		return nil, err
	}
	return rows, nil
}

// Insert implements [adapter.DataService].
func (s *SQLDataService) Insert(ctx context.Context, table string, row map[string]any, dest any) error {
	stored, err := s.InsertRow(ctx, table, row)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	return decodeInto(stored, dest)
}

// InsertRow writes row and returns it as stored, generated columns
// included.
func (s *SQLDataService) InsertRow(ctx context.Context, table string, row map[string]any) (Row, error) {
	query, args, err := buildInsertQuery(s.db.builder, table, row, s.ids.Generate, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.queryRows(ctx, table, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SQLDataService.InsertRow").Str("table", table).Msg("insert failed")
		return nil, err
	}
	if len(rows) != 1 {
		return nil, fmt.Errorf("%w: insert returned %d rows", ErrNotSingleRow, len(rows))
	}
	return rows[0], nil
}

// Update implements [adapter.DataService]. A single-row update that matches
// zero or several rows is rolled back.
func (s *SQLDataService) Update(ctx context.Context, q *adapter.Query, patch map[string]any, dest any) error {
	if dest == nil {
		_, err := s.UpdateRows(ctx, q, patch)
		return err
	}

	var updated []Row
	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		rows, err := s.UpdateRows(ctx, q, patch)
		if err != nil {
			return err
		}
		if len(rows) != 1 {
			return fmt.Errorf("%w: %d rows matched", ErrNotSingleRow, len(rows))
		}
		updated = rows
		return nil
	})
	if err != nil {
		return err
	}

	return decodeInto(updated[0], dest)
}

// UpdateRows applies patch to every row matched by q and returns the
// updated rows.
func (s *SQLDataService) UpdateRows(ctx context.Context, q *adapter.Query, patch map[string]any) ([]Row, error) {
	query, args, err := buildUpdateQuery(s.db.builder, q, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.queryRows(ctx, q.Table, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SQLDataService.UpdateRows").Str("table", q.Table).Msg("update failed")
		return nil, err
	}
	return rows, nil
}

// Delete implements [adapter.DataService].
func (s *SQLDataService) Delete(ctx context.Context, q *adapter.Query) error {
	query, args, err := buildDeleteQuery(s.db.builder, q)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.querier(ctx).ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SQLDataService.Delete").Str("table", q.Table).Msg("delete failed")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, s.db.translate(err))
	}

	return nil
}

// queryRows runs a row-returning statement and reads the whole result set
// in wire form.
func (s *SQLDataService) queryRows(ctx context.Context, table, query string, args []any) ([]Row, error) {
	schema, err := lookupTable(table)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, s.db.translate(err))
	}
	defer rows.Close()

	return scanRows(schema, rows)
}

func scanRows(schema tableSchema, rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	result := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err = rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		row := make(Row, len(columns))
		for i, column := range columns {
			kind := schema.columns[column]
			row[column] = kind.normalize(values[i])
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

// decodeInto copies wire-form rows into dest via JSON. A *[]Row or *Row
// destination is filled directly.
func decodeInto(src any, dest any) error {
	if dest == nil {
		return nil
	}

	switch d := dest.(type) {
	case *[]Row:
		if rows, ok := src.([]Row); ok {
			*d = rows
			return nil
		}
	case *Row:
		if row, ok := src.(Row); ok {
			*d = row
			return nil
		}
	}

	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	if err = json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}
	return nil
}
