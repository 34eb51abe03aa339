// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command server runs the self-hosted savings-jar API: the REST data
// service for goals and records and the magic-link identity provider.
package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-savings-jar/internal/config"
	handler "github.com/MKhiriev/go-savings-jar/internal/handler/http"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/server"
	"github.com/MKhiriev/go-savings-jar/internal/service"
	"github.com/MKhiriev/go-savings-jar/internal/store"
	"github.com/MKhiriev/go-savings-jar/internal/workers"
	"github.com/MKhiriev/go-savings-jar/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("savings-jar-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("driver", cfg.Storage.DB.Driver()).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Info().
		Str("build_version", orNA(build.BuildVersion())).
		Str("build_date", orNA(build.BuildDate())).
		Str("build_commit", orNA(build.BuildCommit())).
		Msg("starting server")

	services, err := service.NewServices(storages, cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	background := workers.NewWorkers(
		workers.NewTokenCleanupWorker(storages.Tokens, cfg.Server.TokenCleanupInterval, log),
	)

	srv, err := server.NewServer(handler.NewHandler(services, log).Init(), cfg.Server, background, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo() {
	fmt.Printf("Build version: %s\n", orNA(buildVersion))
	fmt.Printf("Build date: %s\n", orNA(buildDate))
	fmt.Printf("Build commit: %s\n", orNA(buildCommit))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
