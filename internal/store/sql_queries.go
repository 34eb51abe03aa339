// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/models"
)

const returningAll = "RETURNING *"

// whereClause converts the query filters into squirrel predicates, checking
// every column against the schema.
func whereClause(schema tableSchema, q *adapter.Query) (sq.And, error) {
	where := make(sq.And, 0, len(q.Filters))
	for _, f := range q.Filters {
		kind, err := schema.kind(f.Column)
		if err != nil {
			return nil, err
		}

		value, err := kind.coerceFilter(f.Value)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", f.Column, err)
		}

		switch f.Op {
		case adapter.OpEq:
			where = append(where, sq.Eq{f.Column: value})
		case adapter.OpNeq:
			if value == nil {
				where = append(where, sq.NotEq{f.Column: nil})
				continue
			}
			// NULL columns count as different from any value.
			where = append(where, sq.Or{sq.NotEq{f.Column: value}, sq.Eq{f.Column: nil}})
		default:
			return nil, fmt.Errorf("%w: unsupported operator %q", adapter.ErrBadFilter, f.Op)
		}
	}
	return where, nil
}

// assignments validates and coerces a column → value map. Keys are sorted so
// the generated SQL is stable.
func assignments(schema tableSchema, values map[string]any) ([]string, []any, error) {
	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	args := make([]any, 0, len(columns))
	for _, column := range columns {
		kind, err := schema.kind(column)
		if err != nil {
			return nil, nil, err
		}
		value, err := kind.coerce(values[column])
		if err != nil {
			return nil, nil, fmt.Errorf("column %s: %w", column, err)
		}
		args = append(args, value)
	}
	return columns, args, nil
}

func buildSelectQuery(builder sq.StatementBuilderType, q *adapter.Query) (string, []any, error) {
	schema, err := lookupTable(q.Table)
	if err != nil {
		return "", nil, err
	}

	where, err := whereClause(schema, q)
	if err != nil {
		return "", nil, err
	}

	query := builder.Select("*").From(schema.name)
	if len(where) > 0 {
		query = query.Where(where)
	}
	for _, o := range q.Orders {
		if _, err = schema.kind(o.Column); err != nil {
			return "", nil, err
		}
		dir := "DESC"
		if o.Ascending {
			dir = "ASC"
		}
		query = query.OrderBy(o.Column + " " + dir)
	}

	return query.ToSql()
}

// buildInsertQuery fills the generated id and created_at columns when the
// row does not carry them.
func buildInsertQuery(builder sq.StatementBuilderType, table string, row map[string]any, newID func() string, now time.Time) (string, []any, error) {
	schema, err := lookupTable(table)
	if err != nil {
		return "", nil, err
	}

	values := make(map[string]any, len(row)+2)
	for column, value := range row {
		values[column] = value
	}
	if id, ok := values[models.ColumnID]; !ok || id == nil || id == "" {
		values[models.ColumnID] = newID()
	}
	if _, ok := values[models.ColumnCreatedAt]; !ok {
		values[models.ColumnCreatedAt] = now
	}

	columns, args, err := assignments(schema, values)
	if err != nil {
		return "", nil, err
	}

	return builder.Insert(schema.name).
		Columns(columns...).
		Values(args...).
		Suffix(returningAll).
		ToSql()
}

func buildUpdateQuery(builder sq.StatementBuilderType, q *adapter.Query, patch map[string]any) (string, []any, error) {
	schema, err := lookupTable(q.Table)
	if err != nil {
		return "", nil, err
	}
	if len(patch) == 0 {
		return "", nil, ErrEmptyPatch
	}

	columns, args, err := assignments(schema, patch)
	if err != nil {
		return "", nil, err
	}

	where, err := whereClause(schema, q)
	if err != nil {
		return "", nil, err
	}

	query := builder.Update(schema.name)
	for i, column := range columns {
		query = query.Set(column, args[i])
	}
	if len(where) > 0 {
		query = query.Where(where)
	}

	return query.Suffix(returningAll).ToSql()
}

func buildDeleteQuery(builder sq.StatementBuilderType, q *adapter.Query) (string, []any, error) {
	schema, err := lookupTable(q.Table)
	if err != nil {
		return "", nil, err
	}

	where, err := whereClause(schema, q)
	if err != nil {
		return "", nil, err
	}

	query := builder.Delete(schema.name)
	if len(where) > 0 {
		query = query.Where(where)
	}

	return query.ToSql()
}

// ── users ────────────────────────────────────────────────────────────────────

const (
	columnUserEmail = "email"

	columnOTPTokenHash  = "token_hash"
	columnOTPEmail      = "email"
	columnOTPRedirectTo = "redirect_to"
	columnOTPExpiresAt  = "expires_at"
	columnOTPConsumedAt = "consumed_at"
)

func buildInsertUserQuery(builder sq.StatementBuilderType, user models.User) (string, []any, error) {
	return builder.Insert(user.TableName()).
		Columns(models.ColumnID, columnUserEmail, models.ColumnCreatedAt).
		Values(user.UserID, user.Email, user.CreatedAt.UTC()).
		Suffix("ON CONFLICT (" + columnUserEmail + ") DO NOTHING").
		ToSql()
}

func buildFindUserQuery(builder sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return builder.Select(models.ColumnID, columnUserEmail, models.ColumnCreatedAt).
		From(models.User{}.TableName()).
		Where(where).
		ToSql()
}

// ── one-time tokens ──────────────────────────────────────────────────────────

func buildInsertOneTimeTokenQuery(builder sq.StatementBuilderType, token models.OneTimeToken) (string, []any, error) {
	return builder.Insert(token.TableName()).
		Columns(columnOTPTokenHash, columnOTPEmail, columnOTPRedirectTo, columnOTPExpiresAt, models.ColumnCreatedAt).
		Values(token.TokenHash, token.Email, token.RedirectTo, token.ExpiresAt.UTC(), token.CreatedAt.UTC()).
		ToSql()
}

func buildConsumeOneTimeTokenQuery(builder sq.StatementBuilderType, tokenHash string, now time.Time) (string, []any, error) {
	return builder.Update(models.OneTimeToken{}.TableName()).
		Set(columnOTPConsumedAt, now.UTC()).
		Where(sq.Eq{columnOTPTokenHash: tokenHash, columnOTPConsumedAt: nil}).
		Where(sq.Gt{columnOTPExpiresAt: now.UTC()}).
		Suffix("RETURNING " + columnOTPTokenHash + ", " + columnOTPEmail + ", " + columnOTPRedirectTo + ", " +
			columnOTPExpiresAt + ", " + columnOTPConsumedAt + ", " + models.ColumnCreatedAt).
		ToSql()
}

func buildDeleteStaleTokensQuery(builder sq.StatementBuilderType, now time.Time) (string, []any, error) {
	return builder.Delete(models.OneTimeToken{}.TableName()).
		Where(sq.Or{
			sq.LtOrEq{columnOTPExpiresAt: now.UTC()},
			sq.NotEq{columnOTPConsumedAt: nil},
		}).
		ToSql()
}
