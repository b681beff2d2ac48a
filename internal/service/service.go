package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"casebook/internal/model"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount      = errors.New("amount must be a non-negative number")
	ErrInvalidDate        = errors.New("date must be in YYYY-MM-DD format")
	ErrEmptyName          = errors.New("name must not be empty")
	ErrEmptyNote          = errors.New("note must not be empty")
	ErrNothingToUndo      = errors.New("no status change to undo")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrFieldNotLinked     = errors.New("custom field is not enabled for this client")
	ErrChargeTypeMismatch = errors.New("only charge entries can reference the charge catalogue")
	ErrInvalidFieldValue  = errors.New("value does not match the field type")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// parseAmount accepts a non-negative decimal string.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// parseOptionalAmount treats an empty string as zero.
func parseOptionalAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return parseAmount(s)
}

// parseOptionalDate returns nil for an empty string.
func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return &t, nil
}

// dateOrToday parses s, defaulting to today when empty.
func dateOrToday(s string) (time.Time, error) {
	t, err := parseOptionalDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return model.Today(), nil
	}
	return *t, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
