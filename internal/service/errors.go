// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrNoIdentity is returned by store operations issued before an
	// identity is established. No remote call is made.
	ErrNoIdentity = errors.New("no identity established")

	// ErrEmptyPatch is returned by updates that set no field.
	ErrEmptyPatch = errors.New("patch sets no field")

	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrRowRejected wraps a validator error for a row the data API refuses
	// to write.
	ErrRowRejected = errors.New("row violates a check constraint")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrUnsupportedOTPType  = errors.New("unsupported verification type")
	ErrRedirectNotAllowed  = errors.New("redirect url is not allowed")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrLinkIsExpiredOrInvalid  = errors.New("email link is invalid or has expired")

	// ErrOwnershipViolation is returned when a request tries to read or write
	// another user's rows.
	ErrOwnershipViolation = errors.New("rows belong to a different user")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
