package tradesim

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ReportData gathers everything needed to render a trade report: the ledger
// end state valued at best-effort prices, trade statistics from the history,
// and the P/L analysis. Tickers that cannot be priced are valued at zero and
// called out in Notes.
type ReportData struct {
	GeneratedAt time.Time

	TradesCount int
	PeriodStart time.Time // zero when the history is empty
	PeriodEnd   time.Time

	PL PLReport

	Cash          Money
	Holdings      map[string]Quantity
	Prices        map[string]Money
	HoldingsValue Money
	TotalValue    Money

	Recent []Transaction
	Notes  []string
}

// BuildReport assembles a report from the ledger, the transaction history,
// and the price provider. Pricing failures degrade the report instead of
// failing it.
func BuildReport(ctx context.Context, ledger *Ledger, hist *History, provider PriceProvider, recentN int, log *slog.Logger) ReportData {
	if log == nil {
		log = slog.Default()
	}

	data := ReportData{
		GeneratedAt: time.Now().UTC(),
		Cash:        ledger.Cash(),
		Holdings:    ledger.Holdings(),
		Prices:      make(map[string]Money),
	}

	holdingsValue := M(0, ledger.Currency())
	for ticker := range ledger.Tickers() {
		price, err := provider.LatestPrice(ctx, ticker)
		if err != nil || !price.IsPositive() {
			log.Warn("price unavailable for report", "ticker", ticker, "err", err)
			data.Notes = append(data.Notes, fmt.Sprintf("Price unavailable for %s; valued as 0.", ticker))
			continue
		}
		data.Prices[ticker] = price
		holdingsValue = holdingsValue.Add(price.Mul(ledger.Position(ticker)))
	}
	data.HoldingsValue = holdingsValue
	data.TotalValue = data.Cash.Add(holdingsValue)

	records := hist.Load()
	data.TradesCount = len(records)
	for _, tx := range records {
		if tx.Timestamp.IsZero() {
			continue
		}
		if data.PeriodStart.IsZero() || tx.Timestamp.Before(data.PeriodStart) {
			data.PeriodStart = tx.Timestamp
		}
		if tx.Timestamp.After(data.PeriodEnd) {
			data.PeriodEnd = tx.Timestamp
		}
	}

	if recentN > 0 && len(records) > 0 {
		n := min(recentN, len(records))
		// most recent first
		for i := len(records) - 1; i >= len(records)-n; i-- {
			data.Recent = append(data.Recent, records[i])
		}
	}

	data.PL = ComputePL(ctx, records, data.Prices, provider, log)
	return data
}
