package tradesim

import (
	"context"
	"testing"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	hist := NewHistory(dir+"/transactions.json", discard)

	ledger := NewLedger(USD(10000))
	e := NewEngine(ledger, tickerPrices{"AAPL": USD(100), "GOOG": USD(200)}, discard)
	e.History = hist

	ctx := context.Background()
	if _, err := e.Buy(ctx, "AAPL", Q(10)); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Buy(ctx, "GOOG", Q(2)); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Sell(ctx, "AAPL", Q(4)); err != nil {
		t.Fatal(err)
	}

	// GOOG loses its price before the report
	data := BuildReport(ctx, ledger, hist, tickerPrices{"AAPL": USD(110)}, 2, discard)

	if data.TradesCount != 3 {
		t.Fatalf("TradesCount = %d, want 3", data.TradesCount)
	}
	if len(data.Recent) != 2 {
		t.Fatalf("Recent = %d records, want 2", len(data.Recent))
	}
	// most recent first
	if data.Recent[0].Side != SideSell || data.Recent[1].Ticker != "GOOG" {
		t.Fatalf("Recent = %+v", data.Recent)
	}
	if data.PeriodStart.IsZero() || data.PeriodEnd.Before(data.PeriodStart) {
		t.Fatalf("period = %s .. %s", data.PeriodStart, data.PeriodEnd)
	}

	// 6 AAPL at 110; GOOG unpriced, valued at zero and noted
	if !data.HoldingsValue.Equal(USD(660)) {
		t.Fatalf("HoldingsValue = %s, want 660", data.HoldingsValue.Amount())
	}
	if !data.TotalValue.Equal(data.Cash.Add(USD(660))) {
		t.Fatalf("TotalValue = %s", data.TotalValue.Amount())
	}
	if len(data.Notes) != 1 {
		t.Fatalf("Notes = %v, want one entry for GOOG", data.Notes)
	}
	if _, ok := data.Prices["GOOG"]; ok {
		t.Fatal("unpriced GOOG appears in Prices")
	}

	// realized: 4 * (100-100) = 0; unrealized: 6 * (110-100) = 60, GOOG excluded
	if !data.PL.Realized.IsZero() {
		t.Fatalf("Realized = %s, want 0", data.PL.Realized.Amount())
	}
	if !data.PL.Unrealized.Equal(NO(60)) {
		t.Fatalf("Unrealized = %s, want 60", data.PL.Unrealized.Amount())
	}
}
