// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column names shared by the goals and records tables.
const (
	ColumnID        = "id"
	ColumnUserID    = "user_id"
	ColumnCreatedAt = "created_at"
)

// Goal columns.
const (
	ColumnGoalName      = "nombre"
	ColumnGoalIcon      = "icono"
	ColumnGoalTarget    = "meta_total"
	ColumnGoalIsPrimary = "es_principal"
)

// progressMax caps the goal progress percentage.
const progressMax = 100

// Goal is a named savings target owned by one user. At most one goal per
// user has IsPrimary set.
type Goal struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"nombre"`
	Icon      GoalIcon        `json:"icono"`
	Target    decimal.Decimal `json:"meta_total"`
	IsPrimary bool            `json:"es_principal"`
	CreatedAt time.Time       `json:"created_at"`
}

// Progress returns how far current is towards the target as a whole
// percentage in [0, 100]. Targets that are not positive yield 0.
func (g Goal) Progress(current decimal.Decimal) int {
	if !g.Target.IsPositive() {
		return 0
	}
	pct := current.Div(g.Target).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	switch {
	case pct < 0:
		return 0
	case pct > progressMax:
		return progressMax
	default:
		return int(pct)
	}
}

// GoalInput carries the fields of a goal to create. A nil Icon becomes
// DefaultGoalIcon and IsPrimary defaults to false.
type GoalInput struct {
	Name      string
	Target    decimal.Decimal
	Icon      *GoalIcon
	IsPrimary bool
}

// Row returns the insert payload without ownership columns.
func (in GoalInput) Row() map[string]any {
	icon := DefaultGoalIcon
	if in.Icon != nil {
		icon = *in.Icon
	}
	return map[string]any{
		ColumnGoalName:      in.Name,
		ColumnGoalTarget:    in.Target,
		ColumnGoalIcon:      string(icon),
		ColumnGoalIsPrimary: in.IsPrimary,
	}
}

// GoalPatch is a sparse goal update. Only set fields are written.
type GoalPatch struct {
	Name      Optional[string]
	Icon      Optional[GoalIcon]
	Target    Optional[decimal.Decimal]
	IsPrimary Optional[bool]
}

// Fields returns the columns to update.
func (p GoalPatch) Fields() map[string]any {
	fields := make(map[string]any, 4)
	if p.Name.Set {
		fields[ColumnGoalName] = p.Name.Value
	}
	if p.Icon.Set {
		fields[ColumnGoalIcon] = string(p.Icon.Value)
	}
	if p.Target.Set {
		fields[ColumnGoalTarget] = p.Target.Value
	}
	if p.IsPrimary.Set {
		fields[ColumnGoalIsPrimary] = p.IsPrimary.Value
	}
	return fields
}

func (p GoalPatch) IsEmpty() bool {
	return !p.Name.Set && !p.Icon.Set && !p.Target.Set && !p.IsPrimary.Set
}

// MakesPrimary reports whether applying p marks the goal as primary.
func (p GoalPatch) MakesPrimary() bool {
	return p.IsPrimary.Set && p.IsPrimary.Value
}

// Goals is a user's goal collection in storage order.
type Goals []Goal

// Primary returns the first goal flagged as primary.
func (gs Goals) Primary() (Goal, bool) {
	for _, g := range gs {
		if g.IsPrimary {
			return g, true
		}
	}
	return Goal{}, false
}

// PrimaryCount is the number of goals flagged as primary. Anything above one
// means the single-primary invariant was broken by a concurrent writer.
func (gs Goals) PrimaryCount() int {
	n := 0
	for _, g := range gs {
		if g.IsPrimary {
			n++
		}
	}
	return n
}

// Find looks a goal up by id.
func (gs Goals) Find(id string) (Goal, bool) {
	for _, g := range gs {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}
