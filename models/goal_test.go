// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGoals() Goals {
	return Goals{
		{ID: "goal-1", Name: "Vacaciones", Target: decimal.NewFromInt(10000), IsPrimary: true},
		{ID: "goal-2", Name: "Nueva laptop", Target: decimal.NewFromInt(25000)},
		{ID: "goal-3", Name: "Fondo de emergencia", Target: decimal.NewFromInt(50000)},
	}
}

// ── Goals ─────────────────────────────────────────────────────────────────────

func TestGoals_Primary(t *testing.T) {
	primary, ok := testGoals().Primary()
	require.True(t, ok)
	assert.Equal(t, "goal-1", primary.ID)
}

func TestGoals_Primary_None(t *testing.T) {
	goals := testGoals()
	goals[0].IsPrimary = false

	_, ok := goals.Primary()
	assert.False(t, ok)

	_, ok = Goals(nil).Primary()
	assert.False(t, ok)
}

func TestGoals_Primary_FirstMatchWins(t *testing.T) {
	goals := testGoals()
	goals[0].IsPrimary = false
	goals[1].IsPrimary = true
	goals[2].IsPrimary = true

	primary, ok := goals.Primary()
	require.True(t, ok)
	assert.Equal(t, "goal-2", primary.ID)
	assert.Equal(t, 2, goals.PrimaryCount())
}

func TestGoals_Find(t *testing.T) {
	g, ok := testGoals().Find("goal-3")
	require.True(t, ok)
	assert.Equal(t, "Fondo de emergencia", g.Name)

	_, ok = testGoals().Find("missing")
	assert.False(t, ok)
}

// ── Progress ──────────────────────────────────────────────────────────────────

func TestGoal_Progress(t *testing.T) {
	goal := Goal{Target: decimal.NewFromInt(10000)}

	assert.Equal(t, 5, goal.Progress(decimal.NewFromInt(500)))
	assert.Equal(t, 0, goal.Progress(decimal.Zero))
	assert.Equal(t, 0, goal.Progress(decimal.NewFromInt(-300)))
	assert.Equal(t, 100, goal.Progress(decimal.NewFromInt(12000)))
	assert.Equal(t, 1, goal.Progress(decimal.NewFromInt(50)))
	assert.Equal(t, 0, goal.Progress(decimal.NewFromInt(49)))
	assert.Equal(t, 0, Goal{}.Progress(decimal.NewFromInt(100)))
}

// ── GoalInput / GoalPatch ─────────────────────────────────────────────────────

func TestGoalInput_Row_Defaults(t *testing.T) {
	row := GoalInput{Name: "Viaje", Target: decimal.NewFromInt(5000)}.Row()

	assert.Equal(t, "Viaje", row[ColumnGoalName])
	assert.Equal(t, string(DefaultGoalIcon), row[ColumnGoalIcon])
	assert.Equal(t, false, row[ColumnGoalIsPrimary])
	assert.True(t, decimal.NewFromInt(5000).Equal(row[ColumnGoalTarget].(decimal.Decimal)))
	assert.NotContains(t, row, ColumnUserID)
}

func TestGoalInput_Row_ExplicitIcon(t *testing.T) {
	icon := GoalIconPlane
	row := GoalInput{Name: "Viaje", Icon: &icon, IsPrimary: true}.Row()

	assert.Equal(t, "plane", row[ColumnGoalIcon])
	assert.Equal(t, true, row[ColumnGoalIsPrimary])
}

func TestGoalPatch_Fields(t *testing.T) {
	patch := GoalPatch{Name: Some("Nuevo nombre"), IsPrimary: Some(false)}

	assert.Equal(t, map[string]any{
		ColumnGoalName:      "Nuevo nombre",
		ColumnGoalIsPrimary: false,
	}, patch.Fields())
	assert.False(t, patch.IsEmpty())
	assert.False(t, patch.MakesPrimary())
	assert.True(t, GoalPatch{}.IsEmpty())
	assert.True(t, GoalPatch{IsPrimary: Some(true)}.MakesPrimary())
}

// ── GoalIcon ──────────────────────────────────────────────────────────────────

func TestGoalIcon_OrDefault(t *testing.T) {
	assert.Equal(t, GoalIconHeart, GoalIconHeart.OrDefault())
	assert.Equal(t, DefaultGoalIcon, GoalIcon("rocket").OrDefault())
	assert.Equal(t, DefaultGoalIcon, GoalIcon("").OrDefault())
	assert.Len(t, GoalIcons, 10)
}

// ── JSON ──────────────────────────────────────────────────────────────────────

func TestGoal_UnmarshalJSON_NumericStrings(t *testing.T) {
	body := `{"id":"goal-1","user_id":"u","nombre":"Vacaciones","icono":"plane",
		"meta_total":"10000.50","es_principal":true,"created_at":"2024-01-01T00:00:00Z"}`

	var g Goal
	require.NoError(t, json.Unmarshal([]byte(body), &g))
	assert.Equal(t, "10000.5", g.Target.String())
	assert.True(t, g.IsPrimary)
	assert.Equal(t, GoalIconPlane, g.Icon)

	body = `{"id":"goal-2","meta_total":25000}`
	require.NoError(t, json.Unmarshal([]byte(body), &g))
	assert.Equal(t, "25000", g.Target.String())
}
