// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from flag.CommandLine. The
// remaining positional arguments stay available through flag.Args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-otp-hash-key one-time token hash key
//	-otp-ttl magic link lifetime (e.g., "15m")
//	-request-timeout server request timeout (e.g., "30s")
//	-allowed-redirects comma separated magic link origins
//	-data-url data service base URL
//	-auth-url identity provider base URL
//	-api-key public project key
//	-redirect-url magic link redirect URL
//	-adapter-timeout client request timeout (e.g., "10s")
//	-session-path client session file
//	-locale number formatting locale (e.g., "es-MX")
//	-log-path client log file
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN, jsonConfigPath string
	var tokenSignKey, tokenIssuer, otpHashKey string
	var tokenDuration, otpTTL, requestTimeout, adapterTimeout time.Duration
	var dataURL, authURL, apiKey, redirectURL string
	var sessionPath, locale, logPath string
	var allowedRedirects string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.StringVar(&otpHashKey, "otp-hash-key", "", "One-time token hash key")
	flag.DurationVar(&otpTTL, "otp-ttl", 0, "Magic link lifetime (e.g., 15m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Server request timeout (e.g., 30s, 1m)")
	flag.StringVar(&allowedRedirects, "allowed-redirects", "", "Comma separated magic link origins")
	flag.StringVar(&dataURL, "data-url", "", "Data service base URL")
	flag.StringVar(&authURL, "auth-url", "", "Identity provider base URL")
	flag.StringVar(&apiKey, "api-key", "", "Public project key")
	flag.StringVar(&redirectURL, "redirect-url", "", "Magic link redirect URL")
	flag.DurationVar(&adapterTimeout, "adapter-timeout", 0, "Client request timeout (e.g., 10s)")
	flag.StringVar(&sessionPath, "session-path", "", "Client session file")
	flag.StringVar(&locale, "locale", "", "Number formatting locale")
	flag.StringVar(&logPath, "log-path", "", "Client log file")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			OTPHashKey:    otpHashKey,
			OTPTTL:        otpTTL,
			Locale:        locale,
			LogPath:       logPath,
		},
		Storage: Storage{
			DB:      DB{DSN: databaseDSN},
			Session: Session{Path: sessionPath},
		},
		Server: Server{
			HTTPAddress:      serverAddress.String(),
			RequestTimeout:   requestTimeout,
			AllowedRedirects: splitList(allowedRedirects),
		},
		Adapter: Adapter{
			DataURL:        dataURL,
			AuthURL:        authURL,
			APIKey:         apiKey,
			RedirectURL:    redirectURL,
			RequestTimeout: adapterTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress, or "" when
// neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses "host:port". The host must be "localhost" or an IP address and
// the port a positive integer.
func (a *NetAddress) Set(s string) error {
	host, portStr, found := strings.Cut(s, ":")
	if !found || strings.Contains(portStr, ":") {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// splitList splits a comma separated flag value, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
