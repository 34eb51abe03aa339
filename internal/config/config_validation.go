// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

// validate checks invariants that hold for every binary. Role-specific
// checks live in validateServer and ClientConfig.validate.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.Locale != "" && strings.ContainsAny(cfg.App.Locale, " /") {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *StructuredConfig) validateServer() error {
	if cfg.App.TokenSignKey == "" || cfg.App.OTPHashKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	for _, origin := range cfg.Server.AllowedRedirects {
		if !isHTTPURL(origin) {
			return ErrInvalidServerConfigs
		}
	}

	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, ":memory:") {
		return ErrInvalidStorageConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if !isHTTPURL(cfg.Adapter.AuthURL) || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DB.DSN == "" && !isHTTPURL(cfg.Adapter.DataURL) {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Adapter.RedirectURL != "" && !isHTTPURL(cfg.Adapter.RedirectURL) {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.SessionPath == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
