// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType  = errors.New("unsupported type for validation")
	ErrUnknownField     = errors.New("unknown field for validation")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")

	ErrInvalidGoalName   = errors.New("goal name must not be empty")
	ErrInvalidGoalIcon   = errors.New("unknown goal icon")
	ErrInvalidGoalTarget = errors.New("goal target must be greater than zero")
	ErrInvalidPrimary    = errors.New("primary flag must be a boolean")

	ErrInvalidAmount = errors.New("record amount must not be zero")
	ErrInvalidDate   = errors.New("record date is required and must be YYYY-MM-DD")
	ErrInvalidGoalID = errors.New("record goal id must be null or a non-empty string")
)
