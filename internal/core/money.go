// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts and month
// quantities typed by a user.
package core

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrSubCentAmount = fmt.Errorf("%w: more than two decimals", ErrInvalidAmount)
)

// ParseAmount converts a decimal string to a money amount in cents precision.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Zero is
// accepted; signs, anything that is not a plain decimal and fractions of a
// cent are rejected.
//
// Examples:
//
//	ParseAmount("7500")    -> 7500, nil
//	ParseAmount("12,34")   -> 12.34, nil
//	ParseAmount("12.340")  -> 12.34, nil
//	ParseAmount("12.345")  -> ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := parseUnsignedDecimal(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.Equal(d.Round(2)) {
		return decimal.Zero, ErrSubCentAmount
	}
	return d, nil
}

// ParseQuantity parses a non-negative decimal without rounding, e.g. months
// paid ("1.5").
func ParseQuantity(s string) (decimal.Decimal, error) {
	return parseUnsignedDecimal(s)
}

func parseUnsignedDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return decimal.Zero, ErrInvalidAmount
	}
	digits := 0
	for _, part := range parts {
		for _, r := range part {
			if !unicode.IsDigit(r) {
				return decimal.Zero, ErrInvalidAmount
			}
			digits++
		}
	}
	if digits == 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
