// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/internal/config"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
)

// ClientStorages groups the client's local persistence.
type ClientStorages struct {
	// Session keeps the signed-in session between runs.
	Session adapter.SessionStorage

	// Data is a local SQL data service. It is nil unless cfg.DB.DSN is set,
	// in which case the client uses it instead of the REST data service.
	Data *SQLDataService

	db *DB
}

// NewClientStorages initialises the client storage layer. When a local
// database is configured it is opened (created if missing) and migrated.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	storages := &ClientStorages{
		Session: NewFileSessionStorage(cfg.SessionPath),
	}
	if cfg.DB.DSN == "" {
		return storages, nil
	}

	logger.Info().Msg("opening local database...")
	db, err := NewConnect(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("local database connection error: %w", err)
	}
	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	storages.db = db
	storages.Data = NewSQLDataService(db, logger)
	return storages, nil
}

func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
