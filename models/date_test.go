// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.January, Day: 15}, d)

	d, err = ParseDate("2024-01-15T23:10:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", d.String())

	_, err = ParseDate("15/01/2024")
	assert.Error(t, err)
}

func TestDate_DaysSince(t *testing.T) {
	assert.Equal(t, 365, MustParseDate("2024-01-20").DaysSince(MustParseDate("2023-01-20")))
	assert.Equal(t, -1, MustParseDate("2024-02-28").DaysSince(MustParseDate("2024-02-29")))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-13", d.String())

	require.NoError(t, d.Scan("2024-01-14"))
	assert.Equal(t, "2024-01-14", d.String())

	require.NoError(t, d.Scan([]byte("2024-01-15 00:00:00")))
	assert.Equal(t, "2024-01-15", d.String())

	assert.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := MustParseDate("2024-01-15").Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", v)
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

	var nilSession *Session
	assert.True(t, nilSession.Expired(now))
	assert.False(t, (&Session{}).Expired(now))
	assert.True(t, (&Session{ExpiresAt: now}).Expired(now))
	assert.False(t, (&Session{ExpiresAt: now.Add(time.Minute)}).Expired(now))
}
