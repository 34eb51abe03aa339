// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
)

// ClientServices is the client core: authentication state, the two
// collection stores and the job keeping the stores on the signed-in user.
type ClientServices struct {
	Sessions *SessionManager
	Goals    *GoalStore
	Records  *RecordStore
	Watcher  *IdentityWatcher
}

// NewClientServices wires the core around explicitly injected
// collaborators.
func NewClientServices(provider adapter.IdentityProvider, data adapter.DataService, redirectURL string, logger *logger.Logger) *ClientServices {
	sessions := NewSessionManager(provider, redirectURL, logger)
	goals := NewGoalStore(data, logger)
	records := NewRecordStore(data, logger)

	return &ClientServices{
		Sessions: sessions,
		Goals:    goals,
		Records:  records,
		Watcher:  NewIdentityWatcher(sessions, logger, goals, records),
	}
}
