package tradesim

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

// History is the append-only record of completed trades, stored as a JSON
// array. Unlike the audit log it is a read-modify-write store: each Record
// call loads the existing collection, appends, and rewrites the whole file
// durably. It carries the canonical per-trade total and cash-after fields
// that analytics depends on.
type History struct {
	path string
	log  *slog.Logger
}

// NewHistory creates a history store backed by path.
func NewHistory(path string, log *slog.Logger) *History {
	if log == nil {
		log = slog.Default()
	}
	return &History{path: path, log: log}
}

// Load returns all recorded transactions in insertion order. A missing file
// is an empty history; an unreadable or corrupt file is logged as a warning
// and also treated as empty. Load never fails.
func (h *History) Load() []Transaction {
	data, err := os.ReadFile(h.path)
	if err != nil {
		if !os.IsNotExist(err) {
			h.log.Warn("could not read transaction history", "path", h.path, "err", err)
		}
		return nil
	}

	var records []Transaction
	if err := json.Unmarshal(data, &records); err != nil {
		h.log.Warn("transaction history is corrupt, restarting with empty history",
			"path", h.path, "err", err)
		return nil
	}
	return records
}

// Record appends one transaction and rewrites the collection atomically
// (temp file then rename). It returns false on any write failure; the
// failure is logged, never raised, because the trade already succeeded.
func (h *History) Record(tx *Transaction) bool {
	records := append(h.Load(), *tx)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		h.log.Error("could not encode transaction history", "path", h.path, "err", err)
		return false
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		h.log.Error("could not create history directory", "path", h.path, "err", err)
		return false
	}
	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		h.log.Error("could not write transaction history", "path", tmp, "err", err)
		return false
	}
	if err := os.Rename(tmp, h.path); err != nil {
		os.Remove(tmp)
		h.log.Error("could not replace transaction history", "path", h.path, "err", err)
		return false
	}

	h.log.Info("transaction recorded",
		"side", tx.Side, "ticker", tx.Ticker, "quantity", tx.Quantity.String(),
		"price", tx.Price.Amount().String(), "cash_after", tx.CashAfter.Amount().String())
	return true
}
