// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// DefaultLocale is the locale amounts are rendered in unless overridden.
const DefaultLocale = "es-MX"

const defaultFractionDigits = 2

// numberSymbols describes how a locale writes plain decimal numbers.
type numberSymbols struct {
	group   string
	decimal string
	// minGrouping is the number of integer digits below which no group
	// separator is inserted (5 for locales that write "1000" but "10.000").
	minGrouping int
}

var (
	supportedLocales = []language.Tag{
		language.MustParse(DefaultLocale),
		language.AmericanEnglish,
		language.BritishEnglish,
		language.EuropeanSpanish,
		language.MustParse("de-DE"),
		language.BrazilianPortuguese,
		language.MustParse("fr-FR"),
	}
	localeSymbols = []numberSymbols{
		{group: ",", decimal: ".", minGrouping: 4},
		{group: ",", decimal: ".", minGrouping: 4},
		{group: ",", decimal: ".", minGrouping: 4},
		{group: ".", decimal: ",", minGrouping: 5},
		{group: ".", decimal: ",", minGrouping: 4},
		{group: ".", decimal: ",", minGrouping: 4},
		{group: " ", decimal: ",", minGrouping: 4},
	}
	localeMatcher = language.NewMatcher(supportedLocales)
)

func symbolsFor(tag language.Tag) numberSymbols {
	_, idx, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return localeSymbols[0]
	}
	return localeSymbols[idx]
}

type currencyFormat struct {
	locale  language.Tag
	minFrac int
	maxFrac int
}

// CurrencyOption customises FormatCurrency.
type CurrencyOption func(*currencyFormat)

// WithLocale selects the separators of locale (a BCP 47 tag such as
// "en-US"). Unparseable or unsupported tags fall back to DefaultLocale.
func WithLocale(locale string) CurrencyOption {
	return func(f *currencyFormat) {
		tag, err := language.Parse(locale)
		if err != nil {
			return
		}
		f.locale = tag
	}
}

// WithMinFractionDigits sets how many fraction digits are always shown.
func WithMinFractionDigits(n int) CurrencyOption {
	return func(f *currencyFormat) {
		if n >= 0 {
			f.minFrac = n
		}
	}
}

// WithMaxFractionDigits sets the rounding precision.
func WithMaxFractionDigits(n int) CurrencyOption {
	return func(f *currencyFormat) {
		if n >= 0 {
			f.maxFrac = n
		}
	}
}

// FormatCurrency renders amount as a grouped decimal number without a
// currency symbol: 1000 → "1,000.00", -1234.56 → "-1,234.56".
//
// The amount is rounded half away from zero to the maximum fraction digits,
// then trailing zeros are dropped down to the minimum.
func FormatCurrency(amount decimal.Decimal, opts ...CurrencyOption) string {
	f := currencyFormat{
		locale:  language.MustParse(DefaultLocale),
		minFrac: defaultFractionDigits,
		maxFrac: defaultFractionDigits,
	}
	for _, opt := range opts {
		opt(&f)
	}
	if f.maxFrac < f.minFrac {
		f.maxFrac = f.minFrac
	}

	symbols := symbolsFor(f.locale)
	rounded := amount.Round(int32(f.maxFrac))

	digits := rounded.Abs().StringFixed(int32(f.maxFrac))
	intPart, fracPart, _ := strings.Cut(digits, ".")
	for len(fracPart) > f.minFrac && strings.HasSuffix(fracPart, "0") {
		fracPart = fracPart[:len(fracPart)-1]
	}

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(groupDigits(intPart, symbols))
	if fracPart != "" {
		b.WriteString(symbols.decimal)
		b.WriteString(fracPart)
	}
	return b.String()
}

func groupDigits(intPart string, symbols numberSymbols) string {
	if len(intPart) < symbols.minGrouping {
		return intPart
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(symbols.group)
		b.WriteString(intPart[i : i+3])
	}
	return b.String()
}

// CurrencyParts is a formatted amount split at the decimal separator so the
// integer and cents can be styled separately.
type CurrencyParts struct {
	IntPart string
	// Separator is the locale's decimal separator.
	Separator string
	DecPart   string
}

// FormatCurrencyParts formats amount like FormatCurrency and splits the
// result. A missing integer part reads "0" and a missing fraction "00".
func FormatCurrencyParts(amount decimal.Decimal, opts ...CurrencyOption) CurrencyParts {
	f := currencyFormat{locale: language.MustParse(DefaultLocale)}
	for _, opt := range opts {
		opt(&f)
	}

	formatted := FormatCurrency(amount, opts...)
	separator := symbolsFor(f.locale).decimal
	intPart, decPart, _ := strings.Cut(formatted, separator)
	if intPart == "" {
		intPart = "0"
	}
	if decPart == "" {
		decPart = "00"
	}
	return CurrencyParts{IntPart: intPart, Separator: separator, DecPart: decPart}
}
