package tradesim

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// discard is a logger that swallows everything, for tests that do not assert
// on log output.
var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// stubPrices is a PriceProvider returning a fixed price (or error) for every
// ticker.
type stubPrices struct {
	price Money
	err   error
}

func (s stubPrices) LatestPrice(_ context.Context, _ string) (Money, error) {
	return s.price, s.err
}

// tickerPrices is a PriceProvider backed by a map; unknown tickers fail.
type tickerPrices map[string]Money

func (p tickerPrices) LatestPrice(_ context.Context, ticker string) (Money, error) {
	price, ok := p[ticker]
	if !ok {
		return Money{}, errors.New("no price for " + ticker)
	}
	return price, nil
}

// stubCalendar is a MarketCalendar with a fixed answer.
type stubCalendar struct {
	open  bool
	err   error
	state string
}

func (c stubCalendar) IsOpen(_ string) (bool, error) { return c.open, c.err }
func (c stubCalendar) State(_ string) string         { return c.state }
