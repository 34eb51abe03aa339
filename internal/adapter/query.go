// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"
	"strconv"
	"strings"
)

// Tables of the data service.
const (
	TableGoals   = "metas"
	TableRecords = "registros"
)

// Operator is a filter comparison.
type Operator string

const (
	OpEq  Operator = "eq"
	OpNeq Operator = "neq"
)

// Filter restricts a query to rows where Column compares to Value.
type Filter struct {
	Column string
	Op     Operator
	Value  any
}

// OrderBy is one sort key.
type OrderBy struct {
	Column    string
	Ascending bool
}

// Query selects rows of one table. Filters are combined with AND.
type Query struct {
	Table   string
	Filters []Filter
	Orders  []OrderBy
}

// From starts a query on table.
//
//	adapter.From(adapter.TableGoals).Eq("user_id", id).Order("created_at", true)
func From(table string) *Query {
	return &Query{Table: table}
}

func (q *Query) Eq(column string, value any) *Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: OpEq, Value: value})
	return q
}

func (q *Query) Neq(column string, value any) *Query {
	q.Filters = append(q.Filters, Filter{Column: column, Op: OpNeq, Value: value})
	return q
}

func (q *Query) Order(column string, ascending bool) *Query {
	q.Orders = append(q.Orders, OrderBy{Column: column, Ascending: ascending})
	return q
}

// String renders the query in the REST dialect, for logs.
func (q *Query) String() string {
	parts := make([]string, 0, len(q.Filters)+1)
	for _, f := range q.Filters {
		parts = append(parts, f.Column+"="+string(f.Op)+"."+FormatValue(f.Value))
	}
	if order := q.orderParam(); order != "" {
		parts = append(parts, "order="+order)
	}
	return q.Table + "?" + strings.Join(parts, "&")
}

func (q *Query) orderParam() string {
	keys := make([]string, 0, len(q.Orders))
	for _, o := range q.Orders {
		dir := "desc"
		if o.Ascending {
			dir = "asc"
		}
		keys = append(keys, o.Column+"."+dir)
	}
	return strings.Join(keys, ",")
}

// FormatValue renders a filter value as the REST dialect expects it.
func FormatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return "null"
	case string:
		return value
	case *string:
		if value == nil {
			return "null"
		}
		return *value
	case bool:
		return strconv.FormatBool(value)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}

// ParseOperator reads "eq.value" style filter expressions.
func ParseOperator(expr string) (Operator, string, error) {
	op, value, found := strings.Cut(expr, ".")
	if !found {
		return "", "", fmt.Errorf("%w: %q", ErrBadFilter, expr)
	}
	switch Operator(op) {
	case OpEq, OpNeq:
		return Operator(op), value, nil
	default:
		return "", "", fmt.Errorf("%w: unsupported operator %q", ErrBadFilter, op)
	}
}

// ParseOrder reads "col.desc,col2.asc" order expressions. A key without a
// direction sorts ascending.
func ParseOrder(expr string) ([]OrderBy, error) {
	if expr == "" {
		return nil, nil
	}
	keys := strings.Split(expr, ",")
	orders := make([]OrderBy, 0, len(keys))
	for _, key := range keys {
		column, dir, _ := strings.Cut(strings.TrimSpace(key), ".")
		if column == "" {
			return nil, fmt.Errorf("%w: empty order column", ErrBadFilter)
		}
		switch dir {
		case "", "asc":
			orders = append(orders, OrderBy{Column: column, Ascending: true})
		case "desc":
			orders = append(orders, OrderBy{Column: column})
		default:
			return nil, fmt.Errorf("%w: unsupported order direction %q", ErrBadFilter, dir)
		}
	}
	return orders, nil
}
