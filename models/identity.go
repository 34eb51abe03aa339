// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Identity is the authenticated principal the client core works on behalf of.
// Only UserID is needed to scope data; Email is kept for display.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
}
