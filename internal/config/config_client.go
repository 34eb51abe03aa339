// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Client-side defaults applied when no source sets a value.
const (
	DefaultLocale         = "es-MX"
	DefaultClientTimeout  = 10 * time.Second
	DefaultSessionPath    = ".savings-jar-session.json"
	DefaultOTPTTL         = 15 * time.Minute
	DefaultTokenDuration  = time.Hour
	DefaultTokenIssuer    = "go-savings-jar"
	DefaultServerTimeout  = 30 * time.Second
	DefaultServerAddress  = "localhost:8080"
	DefaultServerDatabase = "file:savings-jar.db?_foreign_keys=on"

	DefaultTokenCleanupInterval = time.Hour
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// Locale selects how amounts are formatted.
	Locale string
	// LogPath is the client log file; empty means next to the executable.
	LogPath string
}

// ClientAdapter holds the endpoints and timeout of the external services.
type ClientAdapter struct {
	DataURL        string
	AuthURL        string
	APIKey         string
	RedirectURL    string
	RequestTimeout time.Duration
}

// ClientStorage groups client persistence settings.
type ClientStorage struct {
	// SessionPath is the JSON file the signed-in session survives restarts in.
	SessionPath string
	// DB, when its DSN is set, replaces the REST data service with a local
	// SQL database.
	DB DB
}

// ClientConfig is the client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Locale:  cfg.App.Locale,
			LogPath: cfg.App.LogPath,
		},
		Adapter: ClientAdapter{
			DataURL:        cfg.Adapter.DataURL,
			AuthURL:        cfg.Adapter.AuthURL,
			APIKey:         cfg.Adapter.APIKey,
			RedirectURL:    cfg.Adapter.RedirectURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			SessionPath: cfg.Storage.Session.Path,
			DB:          cfg.Storage.DB,
		},
	}

	if clientCfg.App.Locale == "" {
		clientCfg.App.Locale = DefaultLocale
	}
	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultClientTimeout
	}
	if clientCfg.Storage.SessionPath == "" {
		clientCfg.Storage.SessionPath = DefaultSessionPath
	}

	return clientCfg
}
