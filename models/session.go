// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is the credential set issued by the identity provider after a
// successful magic-link verification.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        Identity  `json:"user"`
}

// Expired reports whether the access token is no longer usable at now.
// A zero ExpiresAt means the provider did not report an expiry.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt)
}

// Identity returns a copy of the session owner, or nil for a nil session.
func (s *Session) Identity() *Identity {
	if s == nil {
		return nil
	}
	id := s.User
	return &id
}

// SessionEventType names a transition of the identity provider's session.
type SessionEventType string

const (
	SessionEventInitial   SessionEventType = "INITIAL_SESSION"
	SessionEventSignedIn  SessionEventType = "SIGNED_IN"
	SessionEventSignedOut SessionEventType = "SIGNED_OUT"
)

// SessionEvent is delivered to session-change listeners. Session is nil when
// the user is signed out.
type SessionEvent struct {
	Type    SessionEventType
	Session *Session
}
