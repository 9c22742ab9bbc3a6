package tradesim

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ledgerSchemaVersion is bumped whenever the persisted layout changes.
// A file carrying any other version is treated as unreadable.
const ledgerSchemaVersion = 1

// ledgerFile is the persisted representation of a Ledger.
type ledgerFile struct {
	SchemaVersion int                        `json:"schema_version"`
	SavedAt       string                     `json:"saved_at,omitempty"`
	Currency      string                     `json:"currency"`
	Cash          decimal.Decimal            `json:"cash"`
	Holdings      map[string]decimal.Decimal `json:"holdings"`
}

// EncodeLedger writes the ledger as an indented JSON document.
func EncodeLedger(w io.Writer, l *Ledger) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	doc := ledgerFile{
		SchemaVersion: ledgerSchemaVersion,
		SavedAt:       time.Now().UTC().Format(time.RFC3339),
		Currency:      l.cash.Currency(),
		Cash:          l.cash.Amount(),
		Holdings:      make(map[string]decimal.Decimal, len(l.holdings)),
	}
	for ticker, qty := range l.holdings {
		doc.Holdings[ticker] = qty.Amount()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// DecodeLedger reads a ledger back from its JSON document. It fails on an
// unknown schema version, negative cash, or non-positive holdings, so a
// corrupt or foreign file never produces an invalid ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var doc ledgerFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode ledger: %w", err)
	}
	if doc.SchemaVersion != ledgerSchemaVersion {
		return nil, fmt.Errorf("unsupported ledger schema version %d (want %d)",
			doc.SchemaVersion, ledgerSchemaVersion)
	}
	if doc.Cash.IsNegative() {
		return nil, fmt.Errorf("ledger cash %s is negative", doc.Cash)
	}

	l := NewLedger(M(doc.Cash, doc.Currency))
	for ticker, qty := range doc.Holdings {
		clean, err := ValidateTicker(ticker)
		if err != nil {
			return nil, fmt.Errorf("ledger holds invalid ticker %q", ticker)
		}
		if !qty.IsPositive() {
			return nil, fmt.Errorf("ledger holds non-positive quantity %s of %s", qty, clean)
		}
		l.holdings[clean] = Q(qty)
	}
	return l, nil
}

// SaveLedger persists the ledger to path atomically: the document is written
// to a temporary file next to the target and then renamed over it, so a crash
// mid-write cannot corrupt the previous valid state.
func SaveLedger(path string, l *Ledger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", path, err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("could not create temporary ledger file %q: %w", tmp, err)
	}
	if err := EncodeLedger(f, l); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("could not encode ledger to %q: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not close temporary ledger file %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not replace ledger file %q: %w", path, err)
	}
	return nil
}

// LoadLedger restores a ledger from path. A missing, unreadable, or
// schema-invalid file is reported on the logger and yields a fresh ledger
// seeded with the given cash; this function never fails.
func LoadLedger(path string, seed Money, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("ledger file does not exist, starting fresh", "path", path, "seed", seed.String())
		} else {
			log.Warn("could not open ledger file, starting fresh", "path", path, "err", err)
		}
		return NewLedger(seed)
	}
	defer f.Close()

	l, err := DecodeLedger(f)
	if err != nil {
		log.Warn("could not read ledger file, starting fresh", "path", path, "err", err)
		return NewLedger(seed)
	}
	return l
}
