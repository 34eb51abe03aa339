// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		OTPHashKey    string   `json:"otp_hash_key"`
		OTPTTL        Duration `json:"otp_ttl"`
		Locale        string   `json:"locale"`
		LogPath       string   `json:"log_path"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Session struct {
			Path string `json:"path"`
		} `json:"session,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress          string   `json:"http_address"`
		RequestTimeout       Duration `json:"request_timeout"`
		TokenCleanupInterval Duration `json:"token_cleanup_interval"`
		AllowedRedirects     []string `json:"allowed_redirects"`
	} `json:"server,omitempty"`

	Adapter struct {
		DataURL        string   `json:"data_url"`
		AuthURL        string   `json:"auth_url"`
		APIKey         string   `json:"api_key"`
		RedirectURL    string   `json:"redirect_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			OTPHashKey:    jsonCfg.App.OTPHashKey,
			OTPTTL:        time.Duration(jsonCfg.App.OTPTTL),
			Locale:        jsonCfg.App.Locale,
			LogPath:       jsonCfg.App.LogPath,
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB:      DB{DSN: jsonCfg.Storage.DB.DSN},
			Session: Session{Path: jsonCfg.Storage.Session.Path},
		},
		Server: Server{
			HTTPAddress:          jsonCfg.Server.HTTPAddress,
			RequestTimeout:       time.Duration(jsonCfg.Server.RequestTimeout),
			TokenCleanupInterval: time.Duration(jsonCfg.Server.TokenCleanupInterval),
			AllowedRedirects:     jsonCfg.Server.AllowedRedirects,
		},
		Adapter: Adapter{
			DataURL:        jsonCfg.Adapter.DataURL,
			AuthURL:        jsonCfg.Adapter.AuthURL,
			APIKey:         jsonCfg.Adapter.APIKey,
			RedirectURL:    jsonCfg.Adapter.RedirectURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
