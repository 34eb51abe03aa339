// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/models"
)

var (
	dollar   = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	question = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

// ── select ───────────────────────────────────────────────────────────────────

func Test_buildSelectQuery_GoalsOfUser(t *testing.T) {
	q := adapter.From(adapter.TableGoals).
		Eq(models.ColumnUserID, "user-1").
		Order(models.ColumnGoalIsPrimary, false).
		Order(models.ColumnCreatedAt, true)

	query, args, err := buildSelectQuery(dollar, q)
	require.NoError(t, err)

	assert.Equal(t, "SELECT * FROM metas WHERE (user_id = $1) ORDER BY es_principal DESC, created_at ASC", query)
	assert.Equal(t, []any{"user-1"}, args)
}

func Test_buildSelectQuery_Filters(t *testing.T) {
	tests := []struct {
		name      string
		q         *adapter.Query
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "bool filter from string",
			q:         adapter.From(adapter.TableGoals).Eq(models.ColumnGoalIsPrimary, "true"),
			wantWhere: "es_principal = ?",
			wantArgs:  []any{true},
		},
		{
			name:      "null literal",
			q:         adapter.From(adapter.TableRecords).Eq(models.ColumnRecordGoalID, "null"),
			wantWhere: "meta_id IS NULL",
		},
		{
			name:      "neq keeps null rows",
			q:         adapter.From(adapter.TableGoals).Neq(models.ColumnID, "goal-1"),
			wantWhere: "(id <> ? OR id IS NULL)",
			wantArgs:  []any{"goal-1"},
		},
		{
			name:      "date filter",
			q:         adapter.From(adapter.TableRecords).Eq(models.ColumnRecordDate, "2024-01-15T00:00:00Z"),
			wantWhere: "fecha = ?",
			wantArgs:  []any{"2024-01-15"},
		},
		{
			name:      "numeric filter",
			q:         adapter.From(adapter.TableRecords).Eq(models.ColumnRecordAmount, decimal.NewFromInt(500)),
			wantWhere: "monto = ?",
			wantArgs:  []any{"500"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildSelectQuery(question, tt.q)
			require.NoError(t, err)
			assert.Contains(t, query, tt.wantWhere)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func Test_buildSelectQuery_Rejects(t *testing.T) {
	tests := []struct {
		name string
		q    *adapter.Query
		want error
	}{
		{"unknown table", adapter.From("users"), ErrUnknownTable},
		{"unknown filter column", adapter.From(adapter.TableGoals).Eq("password", "x"), ErrUnknownColumn},
		{"unknown order column", adapter.From(adapter.TableGoals).Order("1; DROP TABLE metas", true), ErrUnknownColumn},
		{"bad bool", adapter.From(adapter.TableGoals).Eq(models.ColumnGoalIsPrimary, "maybe"), ErrInvalidValue},
		{"bad operator", &adapter.Query{Table: adapter.TableGoals, Filters: []adapter.Filter{{Column: "id", Op: "like", Value: "x"}}}, adapter.ErrBadFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := buildSelectQuery(dollar, tt.q)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ── insert / update / delete ─────────────────────────────────────────────────

func Test_buildInsertQuery_FillsGeneratedColumns(t *testing.T) {
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	row := models.RecordInput{Amount: decimal.NewFromInt(500)}.Row(models.MustParseDate("2024-01-15"))
	row[models.ColumnUserID] = "user-1"

	query, args, err := buildInsertQuery(dollar, adapter.TableRecords, row, func() string { return "rec-1" }, now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO registros (created_at,descripcion,fecha,id,meta_id,monto,user_id)"), query)
	assert.True(t, strings.HasSuffix(query, "RETURNING *"), query)
	assert.Equal(t, []any{now, nil, "2024-01-15", "rec-1", nil, "500", "user-1"}, args)
}

func Test_buildInsertQuery_KeepsGivenID(t *testing.T) {
	row := map[string]any{models.ColumnID: "given", models.ColumnUserID: "u"}

	_, args, err := buildInsertQuery(question, adapter.TableGoals, row, func() string { return "generated" }, time.Now())
	require.NoError(t, err)
	assert.Contains(t, args, "given")
	assert.NotContains(t, args, "generated")
}

func Test_buildUpdateQuery(t *testing.T) {
	q := adapter.From(adapter.TableRecords).Eq(models.ColumnID, "rec-1").Eq(models.ColumnUserID, "user-1")
	patch := models.RecordPatch{Amount: models.Some(decimal.NewFromInt(600))}.Fields()

	query, args, err := buildUpdateQuery(dollar, q, patch)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE registros SET monto = $1 WHERE (id = $2 AND user_id = $3) RETURNING *", query)
	assert.Equal(t, []any{"600", "rec-1", "user-1"}, args)
}

func Test_buildUpdateQuery_EmptyPatch(t *testing.T) {
	_, _, err := buildUpdateQuery(dollar, adapter.From(adapter.TableGoals), map[string]any{})
	assert.ErrorIs(t, err, ErrEmptyPatch)
}

func Test_buildDeleteQuery(t *testing.T) {
	q := adapter.From(adapter.TableGoals).Eq(models.ColumnID, "goal-1").Eq(models.ColumnUserID, "user-1")

	query, args, err := buildDeleteQuery(question, q)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM metas WHERE (id = ? AND user_id = ?)", query)
	assert.Equal(t, []any{"goal-1", "user-1"}, args)
}

// ── one-time tokens ──────────────────────────────────────────────────────────

func Test_buildConsumeOneTimeTokenQuery(t *testing.T) {
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

	query, args, err := buildConsumeOneTimeTokenQuery(dollar, "hash", now)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "update auth_otp set consumed_at = $1")
	assert.Contains(t, q, "consumed_at is null")
	assert.Contains(t, q, "expires_at > $3")
	assert.Contains(t, q, "returning token_hash")
	assert.Equal(t, []any{now, "hash", now}, args)
}

func Test_buildDeleteStaleTokensQuery(t *testing.T) {
	now := time.Now()

	query, args, err := buildDeleteStaleTokensQuery(question, now)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM auth_otp WHERE (expires_at <= ? OR consumed_at IS NOT NULL)", query)
	assert.Len(t, args, 1)
}
