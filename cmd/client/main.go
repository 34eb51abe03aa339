// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command client is the savings-jar command line: sign in with a magic
// link, record deposits and withdrawals and follow goal progress.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-savings-jar/internal/client"
	"github.com/MKhiriev/go-savings-jar/internal/config"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}

	log := logger.NewClientLogger("savings-jar-client", cfg.App.LogPath)
	log.Debug().
		Str("version", orNA(buildVersion)).
		Str("date", orNA(buildDate)).
		Str("commit", orNA(buildCommit)).
		Msg("client started")

	args := flag.Args()
	if len(args) > 0 && args[0] == "version" {
		printBuildInfo()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := client.NewApp(ctx, cfg, os.Stdout, log)
	if err != nil {
		log.Error().Err(err).Msg("init client app error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	err = app.Run(ctx, args)
	if closeErr := app.Close(); closeErr != nil {
		log.Err(closeErr).Msg("close client storage")
	}
	if err != nil {
		log.Error().Err(err).Strs("args", args).Msg("command failed")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
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
