// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is an account of the self-hosted identity provider. Accounts are
// created on first successful magic-link verification.
type User struct {
	// UserID is the UUID handed out as the token subject.
	UserID string `json:"id"`

	// Email is the unique address magic links are sent to.
	Email string `json:"email"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Identity projects the account onto the principal used by the client core.
func (u User) Identity() Identity {
	return Identity{UserID: u.UserID, Email: u.Email}
}

// OneTimeToken is a pending magic-link verification. Only the keyed hash of
// the token travels to storage.
type OneTimeToken struct {
	TokenHash  string
	Email      string
	RedirectTo string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// TableName returns the name of the database table
// associated with the OneTimeToken model.
func (t OneTimeToken) TableName() string {
	return "auth_otp"
}

// Usable reports whether the token may still be exchanged at now.
func (t OneTimeToken) Usable(now time.Time) bool {
	return t.ConsumedAt == nil && now.Before(t.ExpiresAt)
}
