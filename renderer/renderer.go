// Package renderer turns simulator data structures into markdown reports.
//
// It is a pure presentation layer: it never fetches prices or mutates state,
// it only formats what it is given.
package renderer

import (
	"github.com/etnz/tradesim"
)

// amount renders a monetary value as a plain rounded number. P/L figures
// reconstructed from history records carry no currency of their own, so the
// symbol-and-grouping formatter is not usable here.
func amount(m tradesim.Money) string {
	return m.Amount().Round(4).String()
}

// signedAmount is amount with an explicit sign, and zero as "-".
func signedAmount(m tradesim.Money) string {
	if m.IsZero() {
		return "-"
	}
	if m.IsPositive() {
		return "+" + amount(m)
	}
	return amount(m)
}
