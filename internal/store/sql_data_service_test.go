// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/utils"
	"github.com/MKhiriev/go-savings-jar/models"
)

var testNow = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return newDB(conn, "pgx", sq.Dollar, NewPostgresErrorClassifier(), logger.Nop()), mock
}

func newTestDataService(t *testing.T) (*SQLDataService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newTestDB(t)
	return &SQLDataService{
		db:     db,
		ids:    utils.NewUUIDGenerator(),
		now:    func() time.Time { return testNow },
		logger: logger.Nop(),
	}, mock
}

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

var goalColumns = []string{"id", "user_id", "nombre", "icono", "meta_total", "es_principal", "created_at"}

// ── Select ───────────────────────────────────────────────────────────────────

func TestSQLDataService_Select_DecodesGoals(t *testing.T) {
	svc, mock := newTestDataService(t)

	rows := sqlmock.NewRows(goalColumns).
		AddRow("goal-1", "user-1", "Viaje", "plane", []byte("15000.00"), true, testNow).
		AddRow("goal-2", "user-1", "Laptop", "laptop", float64(8000), false, testNow.Add(time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM metas WHERE (user_id = $1) ORDER BY es_principal DESC, created_at ASC")).
		WithArgs("user-1").
		WillReturnRows(rows)

	var goals models.Goals
	q := adapter.From(adapter.TableGoals).
		Eq(models.ColumnUserID, "user-1").
		Order(models.ColumnGoalIsPrimary, false).
		Order(models.ColumnCreatedAt, true)
	require.NoError(t, svc.Select(context.Background(), q, &goals))

	require.Len(t, goals, 2)
	assert.Equal(t, "goal-1", goals[0].ID)
	assert.True(t, goals[0].IsPrimary)
	assert.Equal(t, models.GoalIconPlane, goals[0].Icon)
	assert.True(t, decimal.NewFromInt(15000).Equal(goals[0].Target))
	assert.True(t, decimal.NewFromInt(8000).Equal(goals[1].Target))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDataService_Select_NormalizesRecordDates(t *testing.T) {
	svc, mock := newTestDataService(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "meta_id", "fecha", "monto", "descripcion", "created_at"}).
		AddRow("rec-1", "user-1", nil, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), int64(-200), nil, testNow)
	mock.ExpectQuery("SELECT \\* FROM registros").WillReturnRows(rows)

	var raw []Row
	require.NoError(t, svc.Select(context.Background(), adapter.From(adapter.TableRecords), &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "2024-01-15", raw[0]["fecha"])

	mock.ExpectQuery("SELECT \\* FROM registros").WillReturnRows(
		sqlmock.NewRows([]string{"id", "fecha", "monto", "meta_id"}).AddRow("rec-1", "2024-01-15", int64(-200), nil),
	)
	var records models.Records
	require.NoError(t, svc.Select(context.Background(), adapter.From(adapter.TableRecords), &records))
	require.Len(t, records, 1)
	assert.True(t, records[0].IsWithdrawal())
	assert.Nil(t, records[0].GoalID)
	assert.Equal(t, models.MustParseDate("2024-01-15"), records[0].Date)
}

func TestSQLDataService_Select_UnknownTable(t *testing.T) {
	svc, mock := newTestDataService(t)

	var rows []Row
	err := svc.Select(context.Background(), adapter.From("users"), &rows)
	assert.ErrorIs(t, err, ErrUnknownTable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── Insert ───────────────────────────────────────────────────────────────────

func TestSQLDataService_Insert_ReturnsStoredRow(t *testing.T) {
	svc, mock := newTestDataService(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO metas (created_at,es_principal,icono,id,meta_total,nombre,user_id) VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING *")).
		WithArgs(testNow, false, "piggy-bank", sqlmock.AnyArg(), "1000", "Fondo", "user-1").
		WillReturnRows(sqlmock.NewRows(goalColumns).
			AddRow("goal-9", "user-1", "Fondo", "piggy-bank", "1000", false, testNow))

	row := models.GoalInput{Name: "Fondo", Target: decimal.NewFromInt(1000)}.Row()
	row[models.ColumnUserID] = "user-1"

	var goal models.Goal
	require.NoError(t, svc.Insert(context.Background(), adapter.TableGoals, row, &goal))
	assert.Equal(t, "goal-9", goal.ID)
	assert.Equal(t, "Fondo", goal.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDataService_Insert_PrimaryConflict(t *testing.T) {
	svc, mock := newTestDataService(t)

	mock.ExpectQuery("INSERT INTO metas").
		WillReturnError(pgError(pgerrcode.UniqueViolation, primaryGoalIndex))

	row := models.GoalInput{Name: "Fondo", Target: decimal.NewFromInt(1000), IsPrimary: true}.Row()
	err := svc.Insert(context.Background(), adapter.TableGoals, row, nil)
	assert.ErrorIs(t, err, ErrPrimaryGoalConflict)
}

func TestSQLDataService_UpdateRows_ReturnsEveryMatch(t *testing.T) {
	svc, mock := newTestDataService(t)

	mock.ExpectQuery("UPDATE metas SET icono").
		WillReturnRows(sqlmock.NewRows(goalColumns).
			AddRow("goal-1", "user-1", "A", "car", "10", false, testNow).
			AddRow("goal-2", "user-1", "B", "car", "20", false, testNow))

	rows, err := svc.UpdateRows(context.Background(),
		adapter.From(adapter.TableGoals).Eq(models.ColumnUserID, "user-1"),
		map[string]any{models.ColumnGoalIcon: "car"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "goal-2", rows[1]["id"])
}

func TestSQLDataService_Insert_UnknownColumn(t *testing.T) {
	svc, _ := newTestDataService(t)

	err := svc.Insert(context.Background(), adapter.TableGoals, map[string]any{"owner": "x"}, nil)
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestSQLDataService_Update_MultiRow(t *testing.T) {
	svc, mock := newTestDataService(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE metas SET es_principal = $1 WHERE (user_id = $2 AND es_principal = $3) RETURNING *")).
		WithArgs(false, "user-1", true).
		WillReturnRows(sqlmock.NewRows(goalColumns))

	q := adapter.From(adapter.TableGoals).Eq(models.ColumnUserID, "user-1").Eq(models.ColumnGoalIsPrimary, true)
	err := svc.Update(context.Background(), q, map[string]any{models.ColumnGoalIsPrimary: false}, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDataService_Update_SingleRow(t *testing.T) {
	svc, mock := newTestDataService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE registros SET monto").
		WithArgs("600", "rec-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "monto", "fecha"}).AddRow("rec-1", "600.00", "2024-01-15"))
	mock.ExpectCommit()

	q := adapter.From(adapter.TableRecords).Eq(models.ColumnID, "rec-1").Eq(models.ColumnUserID, "user-1")
	var record models.Record
	err := svc.Update(context.Background(), q, map[string]any{models.ColumnRecordAmount: decimal.NewFromInt(600)}, &record)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(600).Equal(record.Amount))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDataService_Update_SingleRowMissing(t *testing.T) {
	svc, mock := newTestDataService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE registros").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	q := adapter.From(adapter.TableRecords).Eq(models.ColumnID, "missing")
	var record models.Record
	err := svc.Update(context.Background(), q, map[string]any{models.ColumnRecordAmount: "1"}, &record)
	assert.ErrorIs(t, err, ErrNotSingleRow)
	assert.ErrorIs(t, err, adapter.ErrNotSingleRow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestSQLDataService_Delete(t *testing.T) {
	svc, mock := newTestDataService(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM metas WHERE (id = $1 AND user_id = $2)")).
		WithArgs("goal-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	q := adapter.From(adapter.TableGoals).Eq(models.ColumnID, "goal-1").Eq(models.ColumnUserID, "user-1")
	require.NoError(t, svc.Delete(context.Background(), q))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDataService_Delete_DBError(t *testing.T) {
	svc, mock := newTestDataService(t)

	mock.ExpectExec("DELETE FROM metas").WillReturnError(errors.New("connection reset"))

	err := svc.Delete(context.Background(), adapter.From(adapter.TableGoals))
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

// ── WithinTx ─────────────────────────────────────────────────────────────────

func TestSQLDataService_WithinTx_ClearThenInsert(t *testing.T) {
	svc, mock := newTestDataService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE metas SET es_principal").WillReturnRows(sqlmock.NewRows(goalColumns))
	mock.ExpectQuery("INSERT INTO metas").WillReturnRows(sqlmock.NewRows(goalColumns).
		AddRow("goal-1", "user-1", "Fondo", "piggy-bank", "1000", true, testNow))
	mock.ExpectCommit()

	err := svc.WithinTx(context.Background(), func(ctx context.Context) error {
		clear := adapter.From(adapter.TableGoals).Eq(models.ColumnUserID, "user-1")
		if err := svc.Update(ctx, clear, map[string]any{models.ColumnGoalIsPrimary: false}, nil); err != nil {
			return err
		}
		return svc.Insert(ctx, adapter.TableGoals, map[string]any{models.ColumnUserID: "user-1"}, nil)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDataService_WithinTx_RollsBackOnError(t *testing.T) {
	svc, mock := newTestDataService(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.WithinTx(context.Background(), func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDataService_WithinTx_RetriesSerializationFailure(t *testing.T) {
	svc, mock := newTestDataService(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM registros").WillReturnError(pgError(pgerrcode.SerializationFailure, ""))
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM registros").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.WithinTx(context.Background(), func(ctx context.Context) error {
		return svc.Delete(ctx, adapter.From(adapter.TableRecords).Eq(models.ColumnID, "rec-1"))
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
