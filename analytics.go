package tradesim

import (
	"context"
	"log/slog"
	"maps"
	"slices"
)

// roundPlaces is the precision monetary outputs are rounded to, applied at
// the presentation boundary only so rounding error does not compound across
// many trades.
const roundPlaces = 4

// PositionPL describes the open position of one ticker after replaying the
// history.
type PositionPL struct {
	Quantity    Quantity
	AvgCost     Money
	LatestPrice Money
	Unrealized  Money
}

// MarshalJSON rounds the monetary fields for presentation.
func (p PositionPL) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("qty", p.Quantity)
	w.Append("avg_cost", p.AvgCost.Round(roundPlaces))
	w.Append("latest_price", p.LatestPrice.Round(roundPlaces))
	w.Append("unrealized_pl", p.Unrealized.Round(roundPlaces))
	return w.MarshalJSON()
}

// PLReport is the outcome of replaying the transaction history under the
// average-cost model.
type PLReport struct {
	NoData     bool
	Realized   Money
	Unrealized Money
	Total      Money
	PerTicker  map[string]PositionPL
}

// Tickers iterates over the open positions in lexical order.
func (r PLReport) Tickers() []string {
	return slices.Sorted(maps.Keys(r.PerTicker))
}

// MarshalJSON rounds the monetary fields for presentation.
func (r PLReport) MarshalJSON() ([]byte, error) {
	perTicker := r.PerTicker
	if perTicker == nil {
		perTicker = map[string]PositionPL{}
	}
	var w jsonObjectWriter
	w.Append("no_data", r.NoData)
	w.Append("realized_pl", r.Realized.Round(roundPlaces))
	w.Append("unrealized_pl", r.Unrealized.Round(roundPlaces))
	w.Append("total_pl", r.Total.Round(roundPlaces))
	w.Append("per_ticker", perTicker)
	return w.MarshalJSON()
}

// ComputePL replays the transaction history in insertion order under an
// average-cost basis and values the remaining positions.
//
// Malformed records are dropped during normalization. A sell recorded with no
// tracked position is a data anomaly, not a crash: it is skipped with a
// warning. The latest price of an open position is resolved from the injected
// map first, then the provider; a ticker that cannot be priced is excluded
// from the unrealized totals with a warning. An empty history yields the
// all-zero report with NoData set.
func ComputePL(ctx context.Context, records []Transaction, latest map[string]Money, provider PriceProvider, log *slog.Logger) PLReport {
	if log == nil {
		log = slog.Default()
	}

	var clean []Transaction
	for _, tx := range records {
		if tx.wellFormed() {
			clean = append(clean, tx)
		}
	}
	if len(clean) == 0 {
		return PLReport{NoData: true, PerTicker: map[string]PositionPL{}}
	}

	prices := make(map[string]Money, len(latest))
	for ticker, price := range latest {
		prices[NormalizeTicker(ticker)] = price
	}

	totalCost := make(map[string]Money)
	totalQty := make(map[string]Quantity)
	var realized Money

	for _, tx := range clean {
		ticker := tx.Ticker

		if tx.Side == SideBuy {
			totalCost[ticker] = totalCost[ticker].Add(tx.Price.Mul(tx.Quantity))
			totalQty[ticker] = totalQty[ticker].Add(tx.Quantity)
			continue
		}

		// SELL against the running average cost.
		if !totalQty[ticker].IsPositive() {
			log.Warn("sell without tracked holdings, skipping record", "ticker", ticker)
			continue
		}
		avgCost := totalCost[ticker].Div(totalQty[ticker])
		sold := tx.Quantity.Min(totalQty[ticker])

		realized = realized.Add(tx.Price.Sub(avgCost).Mul(sold))
		totalQty[ticker] = totalQty[ticker].Sub(sold)
		totalCost[ticker] = totalCost[ticker].Sub(avgCost.Mul(sold))
	}

	var unrealized Money
	perTicker := make(map[string]PositionPL)

	for ticker, qty := range totalQty {
		if !qty.IsPositive() {
			continue
		}
		avgCost := totalCost[ticker].Div(qty)

		price, ok := prices[ticker]
		if !ok {
			if provider == nil {
				log.Warn("no latest price for ticker, excluded from unrealized P/L", "ticker", ticker)
				continue
			}
			var err error
			price, err = provider.LatestPrice(ctx, ticker)
			if err != nil || !price.IsPositive() {
				log.Warn("could not fetch latest price, excluded from unrealized P/L",
					"ticker", ticker, "err", err)
				continue
			}
		}

		u := price.Sub(avgCost).Mul(qty)
		unrealized = unrealized.Add(u)
		perTicker[ticker] = PositionPL{
			Quantity:    qty,
			AvgCost:     avgCost,
			LatestPrice: price,
			Unrealized:  u,
		}
	}

	return PLReport{
		Realized:   realized,
		Unrealized: unrealized,
		Total:      realized.Add(unrealized),
		PerTicker:  perTicker,
	}
}
