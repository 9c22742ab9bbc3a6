package tradesim

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeTicker strips surrounding whitespace and upper-cases a raw ticker.
func NormalizeTicker(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidateTicker normalizes a raw ticker and rejects empty results.
func ValidateTicker(raw string) (string, error) {
	clean := NormalizeTicker(raw)
	if clean == "" {
		return "", fmt.Errorf("ticker symbol cannot be empty: %w", ErrInvalidTicker)
	}
	return clean, nil
}

// ParseQuantity converts a raw string into a strictly positive Quantity.
func ParseQuantity(raw string) (Quantity, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Quantity{}, fmt.Errorf("quantity %q is not a valid number: %w", raw, ErrInvalidQuantity)
	}
	q := Q(value)
	if err := validateQuantity(q); err != nil {
		return Quantity{}, err
	}
	return q, nil
}

// validateQuantity rejects zero and negative quantities.
func validateQuantity(q Quantity) error {
	if !q.IsPositive() {
		return fmt.Errorf("quantity %s must be greater than zero: %w", q, ErrInvalidQuantity)
	}
	return nil
}
