// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validGoalRow() NewRow {
	return NewRow{Table: adapter.TableGoals, Values: map[string]any{
		models.ColumnGoalName:      "Viaje",
		models.ColumnGoalIcon:      "plane",
		models.ColumnGoalTarget:    json.Number("5000"),
		models.ColumnGoalIsPrimary: true,
	}}
}

func validRecordRow() NewRow {
	return NewRow{Table: adapter.TableRecords, Values: map[string]any{
		models.ColumnRecordAmount:      json.Number("-99.50"),
		models.ColumnRecordDate:        "2024-01-20",
		models.ColumnRecordGoalID:      nil,
		models.ColumnRecordDescription: "cena",
	}}
}

// ---------------------------------------------------------------------------
// TestValidate_Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewRowValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, "a string"), ErrUnsupportedType)
	})

	t.Run("NewRow value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, validGoalRow()))
	})

	t.Run("NewRow pointer", func(t *testing.T) {
		row := validRecordRow()
		require.NoError(t, v.Validate(ctx, &row))
	})

	t.Run("RowPatch pointer", func(t *testing.T) {
		patch := RowPatch{Table: adapter.TableGoals, Values: map[string]any{models.ColumnGoalIsPrimary: false}}
		require.NoError(t, v.Validate(ctx, &patch))
	})

	t.Run("table without rules", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, NewRow{Table: "usuarios", Values: map[string]any{"x": 1}}))
	})
}

// ---------------------------------------------------------------------------
// Goals
// ---------------------------------------------------------------------------

func TestValidate_GoalRow(t *testing.T) {
	v := NewRowValidator()
	ctx := context.Background()

	tests := []struct {
		name   string
		modify func(values map[string]any)
		want   error
	}{
		{"missing name", func(m map[string]any) { delete(m, models.ColumnGoalName) }, ErrInvalidGoalName},
		{"blank name", func(m map[string]any) { m[models.ColumnGoalName] = "   " }, ErrInvalidGoalName},
		{"unknown icon", func(m map[string]any) { m[models.ColumnGoalIcon] = "castle" }, ErrInvalidGoalIcon},
		{"null icon", func(m map[string]any) { m[models.ColumnGoalIcon] = nil }, ErrInvalidGoalIcon},
		{"missing target", func(m map[string]any) { delete(m, models.ColumnGoalTarget) }, ErrInvalidGoalTarget},
		{"zero target", func(m map[string]any) { m[models.ColumnGoalTarget] = json.Number("0") }, ErrInvalidGoalTarget},
		{"negative target", func(m map[string]any) { m[models.ColumnGoalTarget] = decimal.NewFromInt(-1) }, ErrInvalidGoalTarget},
		{"text target", func(m map[string]any) { m[models.ColumnGoalTarget] = "mucho" }, ErrInvalidGoalTarget},
		{"primary as text", func(m map[string]any) { m[models.ColumnGoalIsPrimary] = "yes" }, ErrInvalidPrimary},
		{"icon omitted", func(m map[string]any) { delete(m, models.ColumnGoalIcon) }, nil},
		{"typed icon", func(m map[string]any) { m[models.ColumnGoalIcon] = models.GoalIconCar }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validGoalRow()
			tt.modify(row.Values)

			err := v.Validate(ctx, row)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// Records
// ---------------------------------------------------------------------------

func TestValidate_RecordRow(t *testing.T) {
	v := NewRowValidator()
	ctx := context.Background()

	tests := []struct {
		name   string
		modify func(values map[string]any)
		want   error
	}{
		{"zero amount", func(m map[string]any) { m[models.ColumnRecordAmount] = json.Number("0.00") }, ErrInvalidAmount},
		{"missing amount", func(m map[string]any) { delete(m, models.ColumnRecordAmount) }, ErrInvalidAmount},
		{"missing date", func(m map[string]any) { delete(m, models.ColumnRecordDate) }, ErrInvalidDate},
		{"bad date", func(m map[string]any) { m[models.ColumnRecordDate] = "20/01/2024" }, ErrInvalidDate},
		{"empty goal id", func(m map[string]any) { m[models.ColumnRecordGoalID] = "" }, ErrInvalidGoalID},
		{"goal id", func(m map[string]any) { m[models.ColumnRecordGoalID] = "g-1" }, nil},
		{"typed values", func(m map[string]any) {
			m[models.ColumnRecordAmount] = decimal.NewFromInt(250)
			m[models.ColumnRecordDate] = models.MustParseDate("2024-01-20")
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRecordRow()
			tt.modify(row.Values)

			err := v.Validate(ctx, row)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// Patches and field scoping
// ---------------------------------------------------------------------------

func TestValidate_RowPatch(t *testing.T) {
	v := NewRowValidator()
	ctx := context.Background()

	t.Run("empty patch", func(t *testing.T) {
		err := v.Validate(ctx, RowPatch{Table: adapter.TableGoals})
		require.ErrorIs(t, err, ErrNoFieldsToUpdate)
	})

	t.Run("only present columns are checked", func(t *testing.T) {
		err := v.Validate(ctx, RowPatch{Table: adapter.TableGoals, Values: map[string]any{models.ColumnGoalIcon: "home"}})
		require.NoError(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		err := v.Validate(ctx, RowPatch{Table: adapter.TableGoals, Values: map[string]any{models.ColumnGoalName: ""}})
		require.ErrorIs(t, err, ErrInvalidGoalName)
	})

	t.Run("amount set to zero", func(t *testing.T) {
		err := v.Validate(ctx, RowPatch{Table: adapter.TableRecords, Values: map[string]any{models.ColumnRecordAmount: 0}})
		require.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("goal cleared", func(t *testing.T) {
		var none *string
		err := v.Validate(ctx, RowPatch{Table: adapter.TableRecords, Values: map[string]any{models.ColumnRecordGoalID: none}})
		require.NoError(t, err)
	})
}

func TestValidate_FieldScoping(t *testing.T) {
	v := NewRowValidator()
	ctx := context.Background()

	row := validGoalRow()
	row.Values[models.ColumnGoalIcon] = "castle"

	require.NoError(t, v.Validate(ctx, row, models.ColumnGoalName, models.ColumnGoalTarget))
	require.ErrorIs(t, v.Validate(ctx, row, models.ColumnGoalIcon), ErrInvalidGoalIcon)
	require.ErrorIs(t, v.Validate(ctx, row, "descripcion"), ErrUnknownField)
}
