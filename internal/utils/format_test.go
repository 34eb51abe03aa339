// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ── FormatCurrency ────────────────────────────────────────────────────────────

func TestFormatCurrency_Defaults(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"1000", "1,000.00"},
		{"-1234.56", "-1,234.56"},
		{"0", "0.00"},
		{"100", "100.00"},
		{"1234567.891", "1,234,567.89"},
		{"0.005", "0.01"},
		{"-0.005", "-0.01"},
		{"-0.001", "0.00"},
		{"999999.999", "1,000,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(dec(tt.amount)))
		})
	}
}

func TestFormatCurrency_FractionDigits(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		opts   []CurrencyOption
		want   string
	}{
		{"min 0 whole", "100", []CurrencyOption{WithMinFractionDigits(0)}, "100"},
		{"min 0 half", "100.5", []CurrencyOption{WithMinFractionDigits(0)}, "100.5"},
		{"max 3", "100.123456", []CurrencyOption{WithMaxFractionDigits(3)}, "100.123"},
		{"min 0 max 1", "100.56", []CurrencyOption{WithMinFractionDigits(0), WithMaxFractionDigits(1)}, "100.6"},
		{"max below min clamps", "1.23456", []CurrencyOption{WithMinFractionDigits(3), WithMaxFractionDigits(1)}, "1.235"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(dec(tt.amount), tt.opts...))
		})
	}
}

func TestFormatCurrency_Locales(t *testing.T) {
	tests := []struct {
		locale string
		amount string
		want   string
	}{
		{"en-US", "1000.5", "1,000.50"},
		{"es-MX", "1000.5", "1,000.50"},
		{"de-DE", "1234567.5", "1.234.567,50"},
		{"es-ES", "1000.5", "1000,50"},
		{"es-ES", "10000.5", "10.000,50"},
		{"pt-BR", "-2500", "-2.500,00"},
		{"not a locale!", "1000", "1,000.00"},
		{"ja-JP", "1000", "1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(dec(tt.amount), WithLocale(tt.locale)))
		})
	}
}

// ── FormatCurrencyParts ───────────────────────────────────────────────────────

func TestFormatCurrencyParts(t *testing.T) {
	tests := []struct {
		amount string
		want   CurrencyParts
	}{
		{"1000.5", CurrencyParts{IntPart: "1,000", Separator: ".", DecPart: "50"}},
		{"-500.25", CurrencyParts{IntPart: "-500", Separator: ".", DecPart: "25"}},
		{"100.05", CurrencyParts{IntPart: "100", Separator: ".", DecPart: "05"}},
		{"0", CurrencyParts{IntPart: "0", Separator: ".", DecPart: "00"}},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrencyParts(dec(tt.amount)))
		})
	}
}

func TestFormatCurrencyParts_NoFraction(t *testing.T) {
	got := FormatCurrencyParts(dec("100"), WithMinFractionDigits(0))
	assert.Equal(t, CurrencyParts{IntPart: "100", Separator: ".", DecPart: "00"}, got)
}

func TestFormatCurrencyParts_CommaDecimalLocale(t *testing.T) {
	got := FormatCurrencyParts(dec("1234.5"), WithLocale("de-DE"))
	assert.Equal(t, CurrencyParts{IntPart: "1.234", Separator: ",", DecPart: "50"}, got)
}
