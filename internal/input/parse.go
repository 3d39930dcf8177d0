// Package input turns raw text into validated contract fields. It backs both
// the interactive prompter and the batch file loader.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"rentas/internal/core"
)

var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func ParseTenant(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid("tenant name cannot be empty")
	}
	return s, nil
}

// ParseUnit accepts any non-empty code, e.g. D101.
func ParseUnit(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid("unit code cannot be empty")
	}
	return s, nil
}

func ParseBedrooms(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || (n != 3 && n != 4) {
		return 0, invalid("only 3 or 4 bedroom units exist, got %q", s)
	}
	return n, nil
}

func ParseMonth(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !core.ValidMonth(n) {
		return 0, invalid("month must be between 1 and 12, got %q", s)
	}
	return n, nil
}

func ParseYear(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, invalid("year must be a positive number, got %q", s)
	}
	return n, nil
}

// ParseCount parses how many contracts will be captured; zero is allowed.
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, invalid("count must be zero or more, got %q", s)
	}
	return n, nil
}

// ParseRent parses a historic monthly rent, which must be positive.
func ParseRent(s string) (decimal.Decimal, error) {
	d, err := core.ParseAmount(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, invalid("rent must be an amount greater than 0 with at most two decimals, got %q", s)
	}
	return d, nil
}

// ParseMonthsPaid accepts fractions such as 1.5; zero means unknown.
func ParseMonthsPaid(s string) (decimal.Decimal, error) {
	d, err := core.ParseQuantity(s)
	if err != nil {
		return decimal.Zero, invalid("months paid must be zero or more, got %q", s)
	}
	return d, nil
}

// ParseAmountPaid accepts zero, meaning unknown.
func ParseAmountPaid(s string) (decimal.Decimal, error) {
	d, err := core.ParseAmount(s)
	if err != nil {
		return decimal.Zero, invalid("amount paid must be zero or more with at most two decimals, got %q", s)
	}
	return d, nil
}
