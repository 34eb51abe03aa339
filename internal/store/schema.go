// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/models"
)

const (
	// primaryGoalIndex keeps at most one primary goal per user.
	primaryGoalIndex = "metas_one_primary_per_user"
	// primaryGoalIndexColumn is how sqlite names the same violation.
	primaryGoalIndexColumn = "metas.user_id"
)

type columnKind int

const (
	kindText columnKind = iota
	kindBool
	kindNumeric
	kindDate
	kindTimestamp
)

// tableSchema whitelists the columns of a data-service table.
type tableSchema struct {
	name    string
	columns map[string]columnKind
}

var dataTables = map[string]tableSchema{
	adapter.TableGoals: {
		name: adapter.TableGoals,
		columns: map[string]columnKind{
			models.ColumnID:            kindText,
			models.ColumnUserID:        kindText,
			models.ColumnGoalName:      kindText,
			models.ColumnGoalIcon:      kindText,
			models.ColumnGoalTarget:    kindNumeric,
			models.ColumnGoalIsPrimary: kindBool,
			models.ColumnCreatedAt:     kindTimestamp,
		},
	},
	adapter.TableRecords: {
		name: adapter.TableRecords,
		columns: map[string]columnKind{
			models.ColumnID:                kindText,
			models.ColumnUserID:            kindText,
			models.ColumnRecordGoalID:      kindText,
			models.ColumnRecordDate:        kindDate,
			models.ColumnRecordAmount:      kindNumeric,
			models.ColumnRecordDescription: kindText,
			models.ColumnCreatedAt:         kindTimestamp,
		},
	},
}

func lookupTable(table string) (tableSchema, error) {
	schema, ok := dataTables[table]
	if !ok {
		return tableSchema{}, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return schema, nil
}

func (s tableSchema) kind(column string) (columnKind, error) {
	kind, ok := s.columns[column]
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, s.name, column)
	}
	return kind, nil
}

// coerce converts a written or filtered value to what the driver binds for
// the column. Values arrive typed from Go callers and as strings or JSON
// numbers from the HTTP API.
func (k columnKind) coerce(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch k {
	case kindText:
		switch value := v.(type) {
		case string:
			return value, nil
		case *string:
			if value == nil {
				return nil, nil
			}
			return *value, nil
		case fmt.Stringer:
			return value.String(), nil
		}

	case kindBool:
		switch value := v.(type) {
		case bool:
			return value, nil
		case string:
			b, err := strconv.ParseBool(value)
			if err == nil {
				return b, nil
			}
		}

	case kindNumeric:
		switch value := v.(type) {
		case decimal.Decimal:
			return value.String(), nil
		case float64:
			return decimal.NewFromFloat(value).String(), nil
		case int:
			return strconv.Itoa(value), nil
		case int64:
			return strconv.FormatInt(value, 10), nil
		case json.Number:
			if d, err := decimal.NewFromString(value.String()); err == nil {
				return d.String(), nil
			}
		case string:
			if d, err := decimal.NewFromString(value); err == nil {
				return d.String(), nil
			}
		}

	case kindDate:
		switch value := v.(type) {
		case models.Date:
			return value.String(), nil
		case *models.Date:
			if value == nil {
				return nil, nil
			}
			return value.String(), nil
		case time.Time:
			return models.DateOf(value).String(), nil
		case string:
			if d, err := models.ParseDate(value); err == nil {
				return d.String(), nil
			}
		}

	case kindTimestamp:
		switch value := v.(type) {
		case time.Time:
			return value.UTC(), nil
		case string:
			if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
				return t.UTC(), nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %v (%T)", ErrInvalidValue, v, v)
}

// coerceFilter is coerce for filter operands, where the literal "null"
// means SQL NULL.
func (k columnKind) coerceFilter(v any) (any, error) {
	if s, ok := v.(string); ok && s == "null" {
		return nil, nil
	}
	return k.coerce(v)
}

// normalize turns a scanned value into its wire form.
func (k columnKind) normalize(v any) any {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}

	switch k {
	case kindBool:
		if n, ok := v.(int64); ok {
			return n != 0
		}
	case kindDate:
		switch value := v.(type) {
		case time.Time:
			return models.DateOf(value).String()
		case string:
			if d, err := models.ParseDate(value); err == nil {
				return d.String()
			}
		}
	case kindNumeric:
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}

	return v
}
