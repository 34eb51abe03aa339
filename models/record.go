// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record columns.
const (
	ColumnRecordGoalID      = "meta_id"
	ColumnRecordDate        = "fecha"
	ColumnRecordAmount      = "monto"
	ColumnRecordDescription = "descripcion"
)

// Record is one deposit (positive Amount) or withdrawal (negative Amount).
// A nil GoalID means the movement belongs to the general jar.
type Record struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	GoalID      *string         `json:"meta_id"`
	Date        Date            `json:"fecha"`
	Amount      decimal.Decimal `json:"monto"`
	Description *string         `json:"descripcion"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (r Record) IsDeposit() bool {
	return r.Amount.IsPositive()
}

func (r Record) IsWithdrawal() bool {
	return r.Amount.IsNegative()
}

// BelongsTo reports whether the record is attached to goalID. A nil goalID
// matches general records.
func (r Record) BelongsTo(goalID *string) bool {
	if goalID == nil || r.GoalID == nil {
		return goalID == nil && r.GoalID == nil
	}
	return *goalID == *r.GoalID
}

// RecordInput carries the fields of a record to create. Nil GoalID and
// Description are stored as NULL; a nil Date is filled in by the caller.
type RecordInput struct {
	Amount      decimal.Decimal
	GoalID      *string
	Date        *Date
	Description *string
}

// Row returns the insert payload for the given record date.
func (in RecordInput) Row(date Date) map[string]any {
	return map[string]any{
		ColumnRecordAmount:      in.Amount,
		ColumnRecordGoalID:      in.GoalID,
		ColumnRecordDate:        date,
		ColumnRecordDescription: in.Description,
	}
}

// RecordPatch is a sparse record update. A set pointer field holding nil
// writes NULL.
type RecordPatch struct {
	GoalID      Optional[*string]
	Date        Optional[Date]
	Amount      Optional[decimal.Decimal]
	Description Optional[*string]
}

// Fields returns the columns to update.
func (p RecordPatch) Fields() map[string]any {
	fields := make(map[string]any, 4)
	if p.GoalID.Set {
		fields[ColumnRecordGoalID] = p.GoalID.Value
	}
	if p.Date.Set {
		fields[ColumnRecordDate] = p.Date.Value
	}
	if p.Amount.Set {
		fields[ColumnRecordAmount] = p.Amount.Value
	}
	if p.Description.Set {
		fields[ColumnRecordDescription] = p.Description.Value
	}
	return fields
}

func (p RecordPatch) IsEmpty() bool {
	return !p.GoalID.Set && !p.Date.Set && !p.Amount.Set && !p.Description.Set
}

// Records is a user's record collection ordered newest first.
type Records []Record

// ByGoal returns the records attached to goalID, keeping order.
func (rs Records) ByGoal(goalID string) Records {
	out := make(Records, 0)
	for _, r := range rs {
		if r.BelongsTo(&goalID) {
			out = append(out, r)
		}
	}
	return out
}

// Total sums every amount.
func (rs Records) Total() decimal.Decimal {
	total := decimal.Zero
	for _, r := range rs {
		total = total.Add(r.Amount)
	}
	return total
}

// GoalTotal sums the amounts attached to goalID.
func (rs Records) GoalTotal(goalID string) decimal.Decimal {
	return rs.ByGoal(goalID).Total()
}

// Last returns the head of the collection, which is the most recent record
// under the storage ordering.
func (rs Records) Last() (Record, bool) {
	if len(rs) == 0 {
		return Record{}, false
	}
	return rs[0], true
}
