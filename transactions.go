package tradesim

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Side identifies the direction of a trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide normalizes a raw side string.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	default:
		return "", fmt.Errorf("unknown side %q", s)
	}
}

// Transaction is the immutable record of one completed trade. It is created
// once per successful Engine call, appended to the history, and never
// mutated.
type Transaction struct {
	Timestamp time.Time
	Side      Side
	Ticker    string
	Quantity  Quantity
	Price     Money
	Total     Money // gross amount, Quantity*Price
	CashAfter Money // ledger cash immediately after the trade
}

// MarshalJSON lays the record out in a stable field order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("timestamp", t.Timestamp.UTC().Format(time.RFC3339))
	w.Append("side", t.Side)
	w.Append("ticker", t.Ticker)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	w.Append("total", t.Total)
	w.Append("cash_after", t.CashAfter)
	return w.MarshalJSON()
}

// UnmarshalJSON accepts both the canonical "side" key and the legacy "kind"
// key, and tolerates a missing or malformed timestamp (analytics does not
// depend on it).
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var aux struct {
		Timestamp string   `json:"timestamp"`
		Side      string   `json:"side"`
		Kind      string   `json:"kind"`
		Ticker    string   `json:"ticker"`
		Quantity  Quantity `json:"quantity"`
		Price     Money    `json:"price"`
		Total     Money    `json:"total"`
		CashAfter Money    `json:"cash_after"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := aux.Side
	if raw == "" {
		raw = aux.Kind
	}
	side, _ := ParseSide(raw) // leave zero on unknown, wellFormed filters it

	ts, _ := time.Parse(time.RFC3339, aux.Timestamp)

	t.Timestamp = ts
	t.Side = side
	t.Ticker = NormalizeTicker(aux.Ticker)
	t.Quantity = aux.Quantity
	t.Price = aux.Price
	t.Total = aux.Total
	t.CashAfter = aux.CashAfter
	return nil
}

// wellFormed reports whether the record carries everything analytics needs:
// a known side, a ticker, and strictly positive quantity and price.
func (t Transaction) wellFormed() bool {
	if t.Side != SideBuy && t.Side != SideSell {
		return false
	}
	if t.Ticker == "" {
		return false
	}
	return t.Quantity.IsPositive() && t.Price.IsPositive()
}
