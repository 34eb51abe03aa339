// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-savings-jar/internal/config"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/store"
	"github.com/MKhiriev/go-savings-jar/internal/validators"
	"github.com/MKhiriev/go-savings-jar/models"
)

// Services groups the server-side services.
type Services struct {
	AuthService    AuthService
	DataService    DataService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	return &Services{
		AuthService:    NewAuthService(storages.Users, storages.Tokens, NewLogMailer(logger), cfg.App, cfg.Server.AllowedRedirects, logger),
		DataService:    NewDataService(storages.Data, validators.NewRowValidator(), logger),
		AppInfoService: appInfo,
	}, nil
}
