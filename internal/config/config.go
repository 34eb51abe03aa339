// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// client and server binaries. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, one-time code, locale and logging settings.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database and the client session file.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and timeouts of the HTTP API.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the endpoints the client talks to.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// TokenSignKey signs and verifies access tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of an access token (e.g. "1h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// OTPHashKey is the HMAC key one-time sign-in tokens are stored under.
	// Env: APP_OTP_HASH_KEY
	OTPHashKey string `env:"OTP_HASH_KEY"`

	// OTPTTL is how long a magic link stays valid (e.g. "15m").
	// Env: APP_OTP_TTL
	OTPTTL time.Duration `env:"OTP_TTL"`

	// Locale selects number formatting (e.g. "es-MX").
	// Env: APP_LOCALE
	Locale string `env:"LOCALE"`

	// LogPath is where the client writes its log.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the persistence settings.
type Storage struct {
	DB      DB      `envPrefix:"DB_"`
	Session Session `envPrefix:"SESSION_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is either a Postgres URL ("postgres://...") or a SQLite file path
	// ("file:jar.db?_foreign_keys=on").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Session holds where the client keeps the signed-in session between runs.
type Session struct {
	// Path of the JSON session file.
	// Env: STORAGE_SESSION_PATH
	Path string `env:"PATH"`
}

// Server holds network and timeout settings of the inbound HTTP API.
type Server struct {
	// HTTPAddress is the "host:port" the server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request (e.g. "30s").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TokenCleanupInterval is how often consumed and expired sign-in
	// tokens are purged (e.g. "1h").
	// Env: SERVER_TOKEN_CLEANUP_INTERVAL
	TokenCleanupInterval time.Duration `env:"TOKEN_CLEANUP_INTERVAL"`

	// AllowedRedirects lists the origins ("https://jar.example.com") a
	// magic link may land on. A sign-in request naming any other origin is
	// refused; an empty redirect is always accepted.
	// Env: SERVER_ALLOWED_REDIRECTS (comma separated)
	AllowedRedirects []string `env:"ALLOWED_REDIRECTS" envSeparator:","`
}

// Adapter holds the client's view of the external services.
type Adapter struct {
	// DataURL is the base of the data service (e.g. "http://localhost:8080/rest/v1").
	// Env: ADAPTER_DATA_URL
	DataURL string `env:"DATA_URL"`

	// AuthURL is the base of the identity provider (e.g. "http://localhost:8080/auth/v1").
	// Env: ADAPTER_AUTH_URL
	AuthURL string `env:"AUTH_URL"`

	// APIKey is the public project key sent as the "apikey" header.
	// Env: ADAPTER_API_KEY
	APIKey string `env:"API_KEY"`

	// RedirectURL is where magic links send the user back to.
	// Env: ADAPTER_REDIRECT_URL
	RedirectURL string `env:"REDIRECT_URL"`

	// RequestTimeout bounds a single outbound request (e.g. "10s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Database drivers accepted by the store package.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Driver picks the database/sql driver for the DSN.
func (db DB) Driver() string {
	if strings.HasPrefix(db.DSN, "postgres://") || strings.HasPrefix(db.DSN, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// GetStructuredConfig loads and merges the configuration from all sources
// in the following priority order (later sources override non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
