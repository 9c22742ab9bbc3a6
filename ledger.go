package tradesim

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"
)

// Ledger holds the cash balance and open positions of a single account.
//
// Two invariants hold at all times: cash is never negative, and every ticker
// present in holdings maps to a strictly positive quantity (a position sold
// down to zero is removed, never stored as zero). The Ledger is mutated
// exclusively by the Engine; all mutating methods either apply fully or leave
// the state untouched.
//
// Every accessor takes the internal lock, so reads (the HTTP handlers hit
// Cash and Holdings from request goroutines) are safe against a concurrent
// trade. The Engine's own mutex serializes the check-then-mutate protocol on
// top of this.
type Ledger struct {
	mu       sync.RWMutex
	cash     Money
	holdings map[string]Quantity
}

// NewLedger creates a ledger seeded with the given cash and no holdings.
func NewLedger(seed Money) *Ledger {
	if seed.IsNegative() {
		seed = M(0, seed.Currency())
	}
	return &Ledger{
		cash:     seed,
		holdings: make(map[string]Quantity),
	}
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() Money {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cash
}

// Currency returns the ledger's cash currency.
func (l *Ledger) Currency() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cash.Currency()
}

// Position returns the held quantity for a ticker, zero if not owned.
func (l *Ledger) Position(ticker string) Quantity {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.holdings[ticker]
}

// Tickers iterates over the held tickers in lexical order. The set is
// snapshotted up front, so iteration is safe against concurrent trades.
func (l *Ledger) Tickers() iter.Seq[string] {
	l.mu.RLock()
	tickers := slices.Sorted(maps.Keys(l.holdings))
	l.mu.RUnlock()
	return slices.Values(tickers)
}

// Holdings returns a copy of the ticker to quantity mapping.
func (l *Ledger) Holdings() map[string]Quantity {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return maps.Clone(l.holdings)
}

// Buy debits quantity*price from cash and increments the position.
// It fails with ErrInsufficientFunds when the cost exceeds the cash balance,
// and with ErrInvalidQuantity on a non-positive quantity or price; the state
// is unchanged on any failure.
func (l *Ledger) Buy(ticker string, qty Quantity, price Money) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}
	if !price.IsPositive() {
		return fmt.Errorf("price %s must be greater than zero: %w", price.Amount(), ErrInvalidPrice)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cost := price.Mul(qty)
	if cost.GreaterThan(l.cash) {
		return fmt.Errorf("cannot buy %s %s: need %s, have %s: %w",
			qty, ticker, cost, l.cash, ErrInsufficientFunds)
	}

	l.cash = l.cash.Sub(cost)
	l.holdings[ticker] = l.holdings[ticker].Add(qty)
	return nil
}

// Sell credits quantity*price to cash and decrements the position, removing
// the ticker entirely when the remaining quantity reaches zero. It fails with
// ErrInsufficientHoldings when the account owns fewer shares than requested
// (owning none at all is the zero-owned case); the state is unchanged on any
// failure.
func (l *Ledger) Sell(ticker string, qty Quantity, price Money) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}
	if !price.IsPositive() {
		return fmt.Errorf("price %s must be greater than zero: %w", price.Amount(), ErrInvalidPrice)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	owned := l.holdings[ticker]
	if owned.LessThan(qty) {
		return fmt.Errorf("cannot sell %s %s: own %s: %w",
			qty, ticker, owned, ErrInsufficientHoldings)
	}

	l.cash = l.cash.Add(price.Mul(qty))
	remaining := owned.Sub(qty)
	if remaining.IsPositive() {
		l.holdings[ticker] = remaining
	} else {
		delete(l.holdings, ticker)
	}
	return nil
}

// TotalValue returns cash plus the value of every position at the given
// prices. A position whose price is missing from the map is valued at zero;
// the method is pure and never fails.
func (l *Ledger) TotalValue(prices map[string]Money) Money {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := l.cash
	for ticker, qty := range l.holdings {
		price, ok := prices[ticker]
		if !ok {
			continue
		}
		total = total.Add(price.Mul(qty))
	}
	return total
}
