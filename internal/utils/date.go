// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-savings-jar/models"
)

const (
	labelNoRecords = "No records"
	labelToday     = "Today"
	labelYesterday = "Yesterday"
)

// DaysAgo describes how long ago date was, relative to now's calendar day:
// "Today", "Yesterday" or "N days ago". A nil date reads "No records".
// Future dates are measured by absolute distance.
func DaysAgo(date *models.Date, now time.Time) string {
	if date == nil || date.IsZero() {
		return labelNoRecords
	}

	days := models.DateOf(now).DaysSince(*date)
	if days < 0 {
		days = -days
	}

	switch days {
	case 0:
		return labelToday
	case 1:
		return labelYesterday
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

// TodayISO returns now's calendar day in now's location.
func TodayISO(now time.Time) models.Date {
	return models.DateOf(now)
}
