// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validStructuredClientConfig() *StructuredConfig {
	return &StructuredConfig{
		Adapter: Adapter{
			DataURL: "http://localhost:8080/rest/v1",
			AuthURL: "http://localhost:8080/auth/v1",
		},
	}
}

// ── ClientConfig ──────────────────────────────────────────────────────────────

func TestNewClientConfig_Defaults(t *testing.T) {
	cfg := newClientConfig(validStructuredClientConfig())

	assert.Equal(t, DefaultLocale, cfg.App.Locale)
	assert.Equal(t, DefaultClientTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultSessionPath, cfg.Storage.SessionPath)
	assert.NoError(t, cfg.validate())
}

func TestNewClientConfig_KeepsExplicitValues(t *testing.T) {
	src := validStructuredClientConfig()
	src.App.Locale = "en-US"
	src.Adapter.RequestTimeout = 3 * time.Second
	src.Storage.Session.Path = "/tmp/s.json"

	cfg := newClientConfig(src)

	assert.Equal(t, "en-US", cfg.App.Locale)
	assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/tmp/s.json", cfg.Storage.SessionPath)
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *ClientConfig)
		want   error
	}{
		{"valid", func(cfg *ClientConfig) {}, nil},
		{"missing data url", func(cfg *ClientConfig) { cfg.Adapter.DataURL = "" }, ErrInvalidAdapterConfigs},
		{"local database instead of data url", func(cfg *ClientConfig) {
			cfg.Adapter.DataURL = ""
			cfg.Storage.DB.DSN = "file:jar.db"
		}, nil},
		{"relative auth url", func(cfg *ClientConfig) { cfg.Adapter.AuthURL = "/auth/v1" }, ErrInvalidAdapterConfigs},
		{"bad redirect", func(cfg *ClientConfig) { cfg.Adapter.RedirectURL = "jar://callback" }, ErrInvalidAdapterConfigs},
		{"zero timeout", func(cfg *ClientConfig) { cfg.Adapter.RequestTimeout = 0 }, ErrInvalidAdapterConfigs},
		{"no session path", func(cfg *ClientConfig) { cfg.Storage.SessionPath = "" }, ErrInvalidStorageConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newClientConfig(validStructuredClientConfig())
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ── Server ────────────────────────────────────────────────────────────────────

func TestApplyServerDefaults(t *testing.T) {
	cfg := &StructuredConfig{App: App{TokenSignKey: "k", OTPHashKey: "h"}}
	cfg.applyServerDefaults()

	assert.Equal(t, DefaultServerAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultServerTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultServerDatabase, cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultTokenIssuer, cfg.App.TokenIssuer)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, DefaultOTPTTL, cfg.App.OTPTTL)
	assert.NoError(t, cfg.validateServer())
}

func TestValidateServer(t *testing.T) {
	base := func() *StructuredConfig {
		cfg := &StructuredConfig{App: App{TokenSignKey: "k", OTPHashKey: "h"}}
		cfg.applyServerDefaults()
		return cfg
	}

	cfg := base()
	cfg.App.TokenSignKey = ""
	assert.ErrorIs(t, cfg.validateServer(), ErrInvalidAppConfigs)

	cfg = base()
	cfg.Storage.DB.DSN = "file::memory:?cache=shared"
	assert.ErrorIs(t, cfg.validateServer(), ErrInvalidStorageConfigs)

	cfg = base()
	cfg.Server.RequestTimeout = -time.Second
	assert.ErrorIs(t, cfg.validateServer(), ErrInvalidServerConfigs)

	cfg = base()
	cfg.Server.AllowedRedirects = []string{"https://jar.example.com", "jar://callback"}
	assert.ErrorIs(t, cfg.validateServer(), ErrInvalidServerConfigs)

	cfg = base()
	cfg.Server.AllowedRedirects = []string{"http://localhost:5173"}
	assert.NoError(t, cfg.validateServer())
}
