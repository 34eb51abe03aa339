// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// GetServerConfig loads the structured configuration, fills server defaults
// and validates the settings the server cannot start without.
func GetServerConfig() (*StructuredConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	cfg.applyServerDefaults()
	return cfg, cfg.validateServer()
}

func (cfg *StructuredConfig) applyServerDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultServerAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultServerTimeout
	}
	if cfg.Server.TokenCleanupInterval == 0 {
		cfg.Server.TokenCleanupInterval = DefaultTokenCleanupInterval
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultServerDatabase
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.OTPTTL == 0 {
		cfg.App.OTPTTL = DefaultOTPTTL
	}
}
