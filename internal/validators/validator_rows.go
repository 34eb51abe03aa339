// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/models"
)

// NewRow is a row about to be inserted into Table.
type NewRow struct {
	Table  string
	Values map[string]any
}

// RowPatch holds the column values about to be written to existing rows of
// Table.
type RowPatch struct {
	Table  string
	Values map[string]any
}

// columnRule checks one column value. Rules see values the way the API
// decoded them: strings, bools, json.Number, or typed values from Go callers.
type columnRule func(v any) error

// tableRules lists the checked columns of a table and the ones an insert
// must carry.
type tableRules struct {
	columns  map[string]columnRule
	required []string
}

var rulesByTable = map[string]tableRules{
	adapter.TableGoals: {
		columns: map[string]columnRule{
			models.ColumnGoalName:      validateGoalName,
			models.ColumnGoalIcon:      validateGoalIcon,
			models.ColumnGoalTarget:    validateGoalTarget,
			models.ColumnGoalIsPrimary: validatePrimary,
		},
		required: []string{models.ColumnGoalName, models.ColumnGoalTarget},
	},
	adapter.TableRecords: {
		columns: map[string]columnRule{
			models.ColumnRecordAmount: validateAmount,
			models.ColumnRecordDate:   validateDate,
			models.ColumnRecordGoalID: validateGoalID,
		},
		required: []string{models.ColumnRecordAmount, models.ColumnRecordDate},
	},
}

// RowValidator implements Validator for rows of the goal and record tables.
// Tables it has no rules for pass untouched; the row store decides whether
// they exist.
type RowValidator struct {
}

// NewRowValidator constructs a new RowValidator and returns it as the
// Validator interface.
func NewRowValidator() Validator {
	return &RowValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Supported types:
//   - NewRow / *NewRow: required columns plus every checked column present
//   - RowPatch / *RowPatch: every checked column present; an empty patch fails
//
// Optional fields restrict validation to the named columns.
func (v *RowValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case NewRow:
		return v.validateNewRow(ctx, value, fields...)
	case *NewRow:
		return v.validateNewRow(ctx, *value, fields...)

	case RowPatch:
		return v.validateRowPatch(ctx, value, fields...)
	case *RowPatch:
		return v.validateRowPatch(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RowValidator) validateNewRow(_ context.Context, row NewRow, fields ...string) error {
	rules, ok := rulesByTable[row.Table]
	if !ok {
		return nil
	}

	if len(fields) == 0 {
		fields = append(fields, rules.required...)
		fields = append(fields, presentColumns(rules, row.Values)...)
	}
	return checkColumns(rules, row.Values, fields)
}

func (v *RowValidator) validateRowPatch(_ context.Context, patch RowPatch, fields ...string) error {
	if len(patch.Values) == 0 {
		return ErrNoFieldsToUpdate
	}

	rules, ok := rulesByTable[patch.Table]
	if !ok {
		return nil
	}

	if len(fields) == 0 {
		fields = presentColumns(rules, patch.Values)
	}
	return checkColumns(rules, patch.Values, fields)
}

// presentColumns returns the checked columns values carries.
func presentColumns(rules tableRules, values map[string]any) []string {
	present := make([]string, 0, len(values))
	for column := range values {
		if _, ok := rules.columns[column]; ok {
			present = append(present, column)
		}
	}
	return present
}

// checkColumns runs the rule of every named column. A missing column is
// checked as nil.
func checkColumns(rules tableRules, values map[string]any, fields []string) error {
	for _, column := range fields {
		rule, ok := rules.columns[column]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, column)
		}
		if err := rule(values[column]); err != nil {
			return fmt.Errorf("%s: %w", column, err)
		}
	}
	return nil
}

func validateGoalName(v any) error {
	name, ok := v.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return ErrInvalidGoalName
	}
	return nil
}

func validateGoalIcon(v any) error {
	var icon models.GoalIcon
	switch value := v.(type) {
	case string:
		icon = models.GoalIcon(value)
	case models.GoalIcon:
		icon = value
	}
	if !icon.Valid() {
		return ErrInvalidGoalIcon
	}
	return nil
}

func validateGoalTarget(v any) error {
	target, ok := numeric(v)
	if !ok || !target.IsPositive() {
		return ErrInvalidGoalTarget
	}
	return nil
}

func validatePrimary(v any) error {
	if _, ok := v.(bool); !ok {
		return ErrInvalidPrimary
	}
	return nil
}

func validateAmount(v any) error {
	amount, ok := numeric(v)
	if !ok || amount.IsZero() {
		return ErrInvalidAmount
	}
	return nil
}

func validateDate(v any) error {
	switch value := v.(type) {
	case models.Date:
		if !value.IsZero() {
			return nil
		}
	case string:
		if _, err := models.ParseDate(value); err == nil {
			return nil
		}
	}
	return ErrInvalidDate
}

func validateGoalID(v any) error {
	switch value := v.(type) {
	case nil:
		return nil
	case string:
		if value != "" {
			return nil
		}
	case *string:
		if value == nil || *value != "" {
			return nil
		}
	}
	return ErrInvalidGoalID
}

// numeric reads a decimal from the forms an amount arrives in.
func numeric(v any) (decimal.Decimal, bool) {
	switch value := v.(type) {
	case decimal.Decimal:
		return value, true
	case json.Number:
		d, err := decimal.NewFromString(value.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(value)
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(value), true
	case int:
		return decimal.NewFromInt(int64(value)), true
	case int64:
		return decimal.NewFromInt(value), true
	default:
		return decimal.Decimal{}, false
	}
}
