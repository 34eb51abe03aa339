// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// OTPTypeEmail is the verification flow of email magic links.
const OTPTypeEmail = "email"

// OTPRequest asks the identity provider to send a magic link.
type OTPRequest struct {
	Email      string `json:"email"`
	CreateUser bool   `json:"create_user"`
}

// VerifyRequest exchanges the token carried by a magic link for a session.
type VerifyRequest struct {
	TokenHash string `json:"token_hash"`
	Type      string `json:"type"`
}

// SessionResponse is the identity provider's answer to a successful
// verification.
type SessionResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"`
	ExpiresAt   int64    `json:"expires_at"`
	User        Identity `json:"user"`
}

// ErrorResponse is the error body shared by the auth and data endpoints.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
