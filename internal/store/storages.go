// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-savings-jar/internal/config"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
)

// Storages groups the server-side persistence components around one
// database pool.
type Storages struct {
	DB *DB

	// Data serves the goal and record tables.
	Data *SQLDataService

	// Users and Tokens back the self-hosted identity provider.
	Users  UserRepository
	Tokens OneTimeTokenRepository
}

// NewStorages connects to the database named by cfg, applies pending
// migrations and wires the repositories.
func NewStorages(ctx context.Context, cfg config.DB, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("driver", cfg.Driver()).Msg("creating new storages...")

	db, err := NewConnect(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		DB:     db,
		Data:   NewSQLDataService(db, logger),
		Users:  NewUserRepository(db, logger),
		Tokens: NewOneTimeTokenRepository(db, logger),
	}, nil
}

func (s *Storages) Close() error {
	return s.DB.Close()
}
