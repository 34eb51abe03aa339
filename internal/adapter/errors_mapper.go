// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// remoteError covers the error bodies of the data service and the identity
// provider, which name the message field differently.
type remoteError struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	return &APIError{
		StatusCode: resp.StatusCode(),
		Message:    extractMessage(resp),
		kind:       statusKind(resp.StatusCode()),
	}
}

func statusKind(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusNotAcceptable:
		return ErrNotSingleRow
	case http.StatusBadGateway:
		return ErrBadGateway
	case http.StatusInternalServerError:
		return ErrInternalServerError
	default:
		return ErrUnexpectedStatus
	}
}

func extractMessage(resp *resty.Response) string {
	body := strings.TrimSpace(string(resp.Body()))

	var re remoteError
	if err := json.Unmarshal(resp.Body(), &re); err == nil {
		for _, msg := range []string{re.Message, re.Msg, re.ErrorDescription} {
			if msg != "" {
				return msg
			}
		}
	}

	if body == "" {
		return http.StatusText(resp.StatusCode())
	}
	return body
}
