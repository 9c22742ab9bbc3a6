package tradesim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// PriceProvider returns the latest traded price for a ticker. Implementations
// may hit the network; callers bound the call with the context.
type PriceProvider interface {
	LatestPrice(ctx context.Context, ticker string) (Money, error)
}

// MarketCalendar reports whether the venue trading a ticker is currently in
// regular hours. State is for diagnostic messages only.
type MarketCalendar interface {
	IsOpen(ticker string) (bool, error)
	State(ticker string) string
}

// Engine is the single writer of a Ledger. Each Buy or Sell call runs the
// full validate, price, mutate, record protocol: nothing touches the ledger
// until every check has passed, and once the ledger mutation has committed
// the audit and history writes are best effort and can no longer fail the
// trade.
//
// The optional collaborators are set after construction; a nil Calendar
// disables the market-hours gate, nil stores disable their respective
// side effects.
type Engine struct {
	ledger *Ledger
	prices PriceProvider
	log    *slog.Logger

	Calendar  MarketCalendar
	Snapshots *SnapshotStore
	History   *History

	// mu serializes trades against the ledger. The protocol checks state
	// before mutating it, which is not safe under interleaving.
	mu sync.Mutex
}

// NewEngine wires an engine to its ledger and price source.
func NewEngine(ledger *Ledger, prices PriceProvider, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{ledger: ledger, prices: prices, log: log}
}

// Ledger exposes the engine's ledger for read-only callers.
func (e *Engine) Ledger() *Ledger { return e.ledger }

// Buy purchases qty shares of ticker at the provider's latest price.
func (e *Engine) Buy(ctx context.Context, ticker string, qty Quantity) (*Transaction, error) {
	return e.trade(ctx, SideBuy, ticker, qty)
}

// Sell disposes of qty shares of ticker at the provider's latest price.
func (e *Engine) Sell(ctx context.Context, ticker string, qty Quantity) (*Transaction, error) {
	return e.trade(ctx, SideSell, ticker, qty)
}

func (e *Engine) trade(ctx context.Context, side Side, ticker string, qty Quantity) (*Transaction, error) {
	clean, err := ValidateTicker(ticker)
	if err != nil {
		return nil, err
	}
	if err := validateQuantity(qty); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureMarketOpen(clean); err != nil {
		return nil, err
	}

	price, err := e.fetchPrice(ctx, clean)
	if err != nil {
		return nil, err
	}
	total := price.Mul(qty)

	// Last recoverable checks; the ledger is untouched up to this point.
	switch side {
	case SideBuy:
		if total.GreaterThan(e.ledger.Cash()) {
			return nil, fmt.Errorf("not enough cash to buy %s shares of %s: need %s, have %s: %w",
				qty, clean, total, e.ledger.Cash(), ErrInsufficientFunds)
		}
		err = e.ledger.Buy(clean, qty, price)
	case SideSell:
		if owned := e.ledger.Position(clean); owned.LessThan(qty) {
			return nil, fmt.Errorf("not enough shares to sell %s of %s: own %s: %w",
				qty, clean, owned, ErrInsufficientHoldings)
		}
		err = e.ledger.Sell(clean, qty, price)
	}
	if err != nil {
		// Unreachable under the checks above; surface it rather than hide it.
		return nil, err
	}

	tx := &Transaction{
		Timestamp: time.Now().UTC(),
		Side:      side,
		Ticker:    clean,
		Quantity:  qty,
		Price:     price,
		Total:     total,
		CashAfter: e.ledger.Cash(),
	}

	// The trade has committed. Audit and history writes are best effort:
	// a bookkeeping failure must not reverse an economic fact.
	if e.Snapshots != nil {
		holdingsValue := price.Mul(e.ledger.Position(clean))
		if !e.Snapshots.Append(side, clean, qty, price, e.ledger.Cash(), holdingsValue) {
			e.log.Warn("snapshot append failed after committed trade", "ticker", clean, "side", side)
		}
	}
	if e.History != nil {
		if !e.History.Record(tx) {
			e.log.Warn("history record failed after committed trade", "ticker", clean, "side", side)
		}
	}

	e.log.Info("trade executed",
		"side", side, "ticker", clean, "quantity", qty.String(),
		"price", price.Amount().String(), "total", total.Amount().String(),
		"cash_after", tx.CashAfter.Amount().String())
	return tx, nil
}

// ensureMarketOpen applies the optional market-hours gate. A failing check
// fails open with a warning: availability over strictness.
func (e *Engine) ensureMarketOpen(ticker string) error {
	if e.Calendar == nil {
		return nil
	}

	open, err := e.Calendar.IsOpen(ticker)
	if err != nil {
		e.log.Warn("market open check failed, assuming open", "ticker", ticker, "err", err)
		return nil
	}
	if open {
		return nil
	}

	msg := fmt.Sprintf("cannot trade %s - market is not in regular trading hours", ticker)
	if state := e.Calendar.State(ticker); state != "" {
		msg += fmt.Sprintf(" (current state: %s)", state)
	}
	return fmt.Errorf("%s: %w", msg, ErrMarketClosed)
}

// fetchPrice acquires the trade price, mapping every provider failure,
// timeout, non-positive value, or currency mismatch to ErrPriceFetchFailed.
func (e *Engine) fetchPrice(ctx context.Context, ticker string) (Money, error) {
	price, err := e.prices.LatestPrice(ctx, ticker)
	if err != nil {
		return Money{}, fmt.Errorf("could not fetch latest price for %q: %v: %w",
			ticker, err, ErrPriceFetchFailed)
	}
	if !price.IsPositive() {
		return Money{}, fmt.Errorf("provider returned invalid price %s for %q: %w",
			price.Amount(), ticker, ErrPriceFetchFailed)
	}
	if price.Currency() != "" && e.ledger.Currency() != "" && price.Currency() != e.ledger.Currency() {
		return Money{}, fmt.Errorf("provider priced %q in %s but the ledger holds %s: %w",
			ticker, price.Currency(), e.ledger.Currency(), ErrPriceFetchFailed)
	}
	return price, nil
}
