// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Input limits applied by forms before anything reaches the stores.
const (
	MinNameLength     = 3
	ProgressMax       = 100
	ProgressThreshold = 50
)

var (
	// MinAmount is the smallest amount a form accepts.
	MinAmount = decimal.RequireFromString("0.01")
	// AmountStep is the input granularity of amount fields.
	AmountStep = decimal.RequireFromString("0.01")
)

var (
	ErrInvalidAmount  = errors.New("amount is not a number")
	ErrAmountTooSmall = errors.New("amount is below the minimum")
	ErrAmountTooFine  = errors.New("amount has more than two decimals")
	ErrNameTooShort   = errors.New("name is too short")
)

// ParseAmount reads a user-typed amount. Both "." and "," are accepted as
// the decimal separator; the result must be at least MinAmount and a whole
// multiple of AmountStep.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if amount.LessThan(MinAmount) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAmountTooSmall, amount)
	}
	if !amount.Mod(AmountStep).IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAmountTooFine, amount)
	}
	return amount, nil
}

// ValidateGoalName checks the trimmed name has at least MinNameLength
// characters.
func ValidateGoalName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < MinNameLength {
		return ErrNameTooShort
	}
	return nil
}
