package tradesim

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHistory_RecordAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")
	h := NewHistory(path, discard)

	tx1 := record(SideBuy, "AAPL", 10, 100)
	tx1.CashAfter = USD(9000)
	tx2 := record(SideSell, "AAPL", 4, 120)
	tx2.CashAfter = USD(9480)

	if !h.Record(&tx1) || !h.Record(&tx2) {
		t.Fatal("Record() failed")
	}

	got := h.Load()
	if len(got) != 2 {
		t.Fatalf("Load() = %d records, want 2", len(got))
	}
	if got[0].Side != SideBuy || got[0].Ticker != "AAPL" || !got[0].Quantity.Equal(Q(10)) {
		t.Fatalf("record 0 = %+v", got[0])
	}
	if !got[1].Price.Equal(NO(120)) || !got[1].CashAfter.Equal(NO(9480)) {
		t.Fatalf("record 1 price/cash = %s/%s", got[1].Price.Amount(), got[1].CashAfter.Amount())
	}
	if !got[0].Timestamp.Equal(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("record 0 timestamp = %s", got[0].Timestamp)
	}
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "nope.json"), discard)
	if got := h.Load(); got != nil {
		t.Fatalf("Load() on missing file = %v, want nil", got)
	}
}

func TestHistory_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	h := NewHistory(path, discard)
	if got := h.Load(); got != nil {
		t.Fatalf("Load() on corrupt file = %v, want nil", got)
	}

	// recording after corruption restarts the collection
	tx := record(SideBuy, "AAPL", 1, 100)
	if !h.Record(&tx) {
		t.Fatal("Record() after corruption failed")
	}
	if got := h.Load(); len(got) != 1 {
		t.Fatalf("Load() = %d records, want 1", len(got))
	}
}

func TestHistory_LegacyKindKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")
	doc := `[{"timestamp":"2026-08-01T12:00:00Z","kind":"buy","ticker":"aapl","quantity":5,"price":100,"total":500,"cash_after":9500}]`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	got := NewHistory(path, discard).Load()
	if len(got) != 1 {
		t.Fatalf("Load() = %d records, want 1", len(got))
	}
	if got[0].Side != SideBuy {
		t.Fatalf("legacy kind key not honored: side = %q", got[0].Side)
	}
	if got[0].Ticker != "AAPL" {
		t.Fatalf("ticker not normalized: %q", got[0].Ticker)
	}
}

func TestHistory_NoTemporaryLeftover(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")
	h := NewHistory(path, discard)
	tx := record(SideBuy, "AAPL", 1, 100)
	if !h.Record(&tx) {
		t.Fatal("Record() failed")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("Record() left its temporary file behind")
	}
}
