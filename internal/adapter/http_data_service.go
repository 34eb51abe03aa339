// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-savings-jar/internal/config"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/utils"
	"github.com/go-resty/resty/v2"
)

const (
	headerAPIKey = "apikey"
	headerPrefer = "Prefer"

	preferRepresentation = "return=representation"
	preferMinimal        = "return=minimal"
)

type httpDataService struct {
	client *utils.HTTPClient
	apiKey string
	tokens TokenSource

	logger *logger.Logger
}

// NewHTTPDataService constructs a REST implementation of [DataService]
// speaking the PostgREST dialect: one resource per table, filters as
// "col=eq.value" query parameters and "order=col.desc" sort keys.
//
// Requests carry the project key in the "apikey" header and, when tokens
// yields one, the user's bearer token.
func NewHTTPDataService(cfg config.ClientAdapter, tokens TokenSource, logger *logger.Logger) (DataService, error) {
	baseURL, err := normalizeBaseURL(cfg.DataURL)
	if err != nil {
		return nil, fmt.Errorf("invalid data service url: %w", err)
	}

	return &httpDataService{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		apiKey: cfg.APIKey,
		tokens: tokens,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Select implements [DataService] with GET /{table}.
func (h *httpDataService) Select(ctx context.Context, q *Query, dest any) error {
	resp, err := h.request(ctx).
		SetQueryParamsFromValues(queryParams(q)).
		Get("/" + q.Table)
	if err != nil {
		return fmt.Errorf("select %s request: %w", q.Table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Err(err).Str("func", "httpDataService.Select").Str("query", q.String()).Msg("select failed")
		return err
	}

	if err = json.Unmarshal(resp.Body(), dest); err != nil {
		return fmt.Errorf("decode %s rows: %w", q.Table, err)
	}
	return nil
}

// Insert implements [DataService] with POST /{table}.
func (h *httpDataService) Insert(ctx context.Context, table string, row map[string]any, dest any) error {
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(headerPrefer, preferFor(dest)).
		SetBody(row).
		Post("/" + table)
	if err != nil {
		return fmt.Errorf("insert %s request: %w", table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Err(err).Str("func", "httpDataService.Insert").Str("table", table).Msg("insert failed")
		return err
	}

	if dest == nil {
		return nil
	}
	return decodeSingle(resp.Body(), dest)
}

// Update implements [DataService] with PATCH /{table}.
func (h *httpDataService) Update(ctx context.Context, q *Query, patch map[string]any, dest any) error {
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(headerPrefer, preferFor(dest)).
		SetQueryParamsFromValues(queryParams(q)).
		SetBody(patch).
		Patch("/" + q.Table)
	if err != nil {
		return fmt.Errorf("update %s request: %w", q.Table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Err(err).Str("func", "httpDataService.Update").Str("query", q.String()).Msg("update failed")
		return err
	}

	if dest == nil {
		return nil
	}
	return decodeSingle(resp.Body(), dest)
}

// Delete implements [DataService] with DELETE /{table}.
func (h *httpDataService) Delete(ctx context.Context, q *Query) error {
	resp, err := h.request(ctx).
		SetHeader(headerPrefer, preferMinimal).
		SetQueryParamsFromValues(queryParams(q)).
		Delete("/" + q.Table)
	if err != nil {
		return fmt.Errorf("delete %s request: %w", q.Table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Err(err).Str("func", "httpDataService.Delete").Str("query", q.String()).Msg("delete failed")
		return err
	}
	return nil
}

func (h *httpDataService) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.apiKey != "" {
		req.SetHeader(headerAPIKey, h.apiKey)
	}

	token := ""
	if h.tokens != nil {
		token = h.tokens.AccessToken()
	}
	if token == "" {
		token = h.apiKey
	}
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func queryParams(q *Query) url.Values {
	params := url.Values{}
	params.Set("select", "*")
	for _, f := range q.Filters {
		params.Add(f.Column, string(f.Op)+"."+FormatValue(f.Value))
	}
	if order := q.orderParam(); order != "" {
		params.Set("order", order)
	}
	return params
}

func preferFor(dest any) string {
	if dest == nil {
		return preferMinimal
	}
	return preferRepresentation
}

// decodeSingle decodes a one-element representation array into dest.
func decodeSingle(body []byte, dest any) error {
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("decode representation: %w", err)
	}
	if len(rows) != 1 {
		return fmt.Errorf("%w: got %d", ErrNotSingleRow, len(rows))
	}
	if err := json.Unmarshal(rows[0], dest); err != nil {
		return fmt.Errorf("decode representation: %w", err)
	}
	return nil
}
