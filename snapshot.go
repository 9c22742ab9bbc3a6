package tradesim

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is one audit row capturing the ledger state immediately after a
// trade. Rows are never edited or removed; file order is append order is
// chronological order.
type Snapshot struct {
	Timestamp     time.Time
	Event         Side
	Ticker        string
	Quantity      Quantity
	Price         Money
	Cash          Money
	HoldingsValue Money // value of the traded ticker's remaining position
	TotalValue    Money // Cash + HoldingsValue
}

var snapshotHeader = []string{
	"timestamp", "event", "ticker", "quantity", "price",
	"cash", "holdings_value", "total_value",
}

// SnapshotStore appends audit rows to a durable CSV file. The header is
// written exactly once, when the file is first created. Write failures are
// logged and reported through the boolean result, never raised: by the time
// a snapshot is taken the trade has already completed economically.
type SnapshotStore struct {
	path  string
	clock func() time.Time
	log   *slog.Logger
}

// NewSnapshotStore creates a store writing to path.
func NewSnapshotStore(path string, log *slog.Logger) *SnapshotStore {
	if log == nil {
		log = slog.Default()
	}
	return &SnapshotStore{
		path:  path,
		clock: func() time.Time { return time.Now().UTC() },
		log:   log,
	}
}

// Append writes one row for a completed trade, computing the total value
// from cash and the holdings value. It returns false on any write failure.
func (s *SnapshotStore) Append(event Side, ticker string, qty Quantity, price, cash, holdingsValue Money) bool {
	total := cash.Add(holdingsValue)

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		s.log.Error("could not create snapshot directory", "path", s.path, "err", err)
		return false
	}

	// a pre-existing empty file still needs the header
	info, statErr := os.Stat(s.path)
	fresh := os.IsNotExist(statErr) || (statErr == nil && info.Size() == 0)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		s.log.Error("could not open snapshot file", "path", s.path, "err", err)
		return false
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(snapshotHeader); err != nil {
			s.log.Error("could not write snapshot header", "path", s.path, "err", err)
			return false
		}
	}

	row := []string{
		s.clock().Format(time.RFC3339),
		string(event),
		ticker,
		qty.String(),
		price.Amount().String(),
		cash.Amount().String(),
		holdingsValue.Amount().String(),
		total.Amount().String(),
	}
	if err := w.Write(row); err != nil {
		s.log.Error("could not write snapshot row", "path", s.path, "err", err)
		return false
	}

	w.Flush()
	if err := w.Error(); err != nil {
		s.log.Error("could not flush snapshot file", "path", s.path, "err", err)
		return false
	}
	return true
}

// ReadAll parses the audit file back into rows, skipping the header and any
// malformed line. A missing file yields an empty history.
func (s *SnapshotStore) ReadAll() ([]Snapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not open snapshot file %q: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row length is checked per row, below
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse snapshot file %q: %w", s.path, err)
	}

	var rows []Snapshot
	for _, rec := range records {
		if len(rec) != len(snapshotHeader) {
			s.log.Warn("skipping snapshot row with wrong field count",
				"path", s.path, "fields", len(rec))
			continue
		}
		if rec[0] == snapshotHeader[0] {
			continue // header
		}
		snap, err := parseSnapshotRow(rec)
		if err != nil {
			s.log.Warn("skipping malformed snapshot row", "path", s.path, "err", err)
			continue
		}
		rows = append(rows, snap)
	}
	return rows, nil
}

func parseSnapshotRow(rec []string) (Snapshot, error) {
	ts, err := time.Parse(time.RFC3339, rec[0])
	if err != nil {
		return Snapshot{}, fmt.Errorf("bad timestamp %q: %w", rec[0], err)
	}
	side, err := ParseSide(rec[1])
	if err != nil {
		return Snapshot{}, err
	}

	nums := make([]decimal.Decimal, 0, 5)
	for _, raw := range rec[3:] {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return Snapshot{}, fmt.Errorf("bad number %q: %w", raw, err)
		}
		nums = append(nums, d)
	}

	return Snapshot{
		Timestamp:     ts,
		Event:         side,
		Ticker:        rec[2],
		Quantity:      Q(nums[0]),
		Price:         M(nums[1], ""),
		Cash:          M(nums[2], ""),
		HoldingsValue: M(nums[3], ""),
		TotalValue:    M(nums[4], ""),
	}, nil
}
