package tradesim

import (
	"errors"
	"testing"
)

func TestLedger_Buy(t *testing.T) {
	testCases := []struct {
		name     string
		cash     float64
		qty      Quantity
		price    Money
		wantErr  error
		wantCash float64
		wantQty  Quantity
	}{
		{
			name:     "simple buy",
			cash:     10000,
			qty:      Q(10),
			price:    USD(150),
			wantCash: 8500,
			wantQty:  Q(10),
		},
		{
			name:     "buy whole balance",
			cash:     1500,
			qty:      Q(10),
			price:    USD(150),
			wantCash: 0,
			wantQty:  Q(10),
		},
		{
			name:     "fractional quantity",
			cash:     1000,
			qty:      Q(2.5),
			price:    USD(100),
			wantCash: 750,
			wantQty:  Q(2.5),
		},
		{
			name:    "insufficient funds",
			cash:    100,
			qty:     Q(10),
			price:   USD(150),
			wantErr: ErrInsufficientFunds,
		},
		{
			name:    "zero quantity",
			cash:    10000,
			qty:     Q(0),
			price:   USD(150),
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "negative quantity",
			cash:    10000,
			qty:     Q(-5),
			price:   USD(150),
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "zero price",
			cash:    10000,
			qty:     Q(10),
			price:   USD(0),
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "negative price",
			cash:    10000,
			qty:     Q(10),
			price:   USD(-5),
			wantErr: ErrInvalidPrice,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger(USD(tc.cash))
			err := l.Buy("AAPL", tc.qty, tc.price)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Buy() error = %v, want %v", err, tc.wantErr)
				}
				// failed buys must not touch the state
				if !l.Cash().Equal(USD(tc.cash)) {
					t.Fatalf("Buy() failed but cash changed: %s", l.Cash())
				}
				if !l.Position("AAPL").IsZero() {
					t.Fatalf("Buy() failed but position changed: %s", l.Position("AAPL"))
				}
				return
			}
			if err != nil {
				t.Fatalf("Buy() unexpected error: %v", err)
			}
			if !l.Cash().Equal(USD(tc.wantCash)) {
				t.Fatalf("Buy() cash = %s, want %v", l.Cash(), tc.wantCash)
			}
			if !l.Position("AAPL").Equal(tc.wantQty) {
				t.Fatalf("Buy() position = %s, want %s", l.Position("AAPL"), tc.wantQty)
			}
		})
	}
}

func TestLedger_Sell(t *testing.T) {
	setup := func() *Ledger {
		l := NewLedger(USD(10000))
		if err := l.Buy("AAPL", Q(10), USD(100)); err != nil {
			t.Fatalf("setup Buy() failed: %v", err)
		}
		return l
	}

	t.Run("partial sell", func(t *testing.T) {
		l := setup()
		if err := l.Sell("AAPL", Q(4), USD(120)); err != nil {
			t.Fatalf("Sell() unexpected error: %v", err)
		}
		if !l.Cash().Equal(USD(9480)) { // 9000 + 4*120
			t.Fatalf("Sell() cash = %s, want 9480", l.Cash())
		}
		if !l.Position("AAPL").Equal(Q(6)) {
			t.Fatalf("Sell() position = %s, want 6", l.Position("AAPL"))
		}
	})

	t.Run("sell all removes the ticker", func(t *testing.T) {
		l := setup()
		if err := l.Sell("AAPL", Q(10), USD(120)); err != nil {
			t.Fatalf("Sell() unexpected error: %v", err)
		}
		if _, ok := l.Holdings()["AAPL"]; ok {
			t.Fatal("Sell() left a zero position in holdings")
		}
	})

	t.Run("oversell", func(t *testing.T) {
		l := setup()
		err := l.Sell("AAPL", Q(11), USD(120))
		if !errors.Is(err, ErrInsufficientHoldings) {
			t.Fatalf("Sell() error = %v, want ErrInsufficientHoldings", err)
		}
		if !l.Cash().Equal(USD(9000)) || !l.Position("AAPL").Equal(Q(10)) {
			t.Fatal("Sell() failed but state changed")
		}
	})

	t.Run("sell at zero price", func(t *testing.T) {
		l := setup()
		err := l.Sell("AAPL", Q(1), USD(0))
		if !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("Sell() error = %v, want ErrInvalidPrice", err)
		}
		if !l.Position("AAPL").Equal(Q(10)) {
			t.Fatal("rejected sell changed the position")
		}
	})

	t.Run("sell unknown ticker", func(t *testing.T) {
		l := setup()
		err := l.Sell("GOOG", Q(1), USD(120))
		if !errors.Is(err, ErrInsufficientHoldings) {
			t.Fatalf("Sell() error = %v, want ErrInsufficientHoldings", err)
		}
	})
}

func TestLedger_NegativeSeed(t *testing.T) {
	l := NewLedger(USD(-100))
	if !l.Cash().IsZero() {
		t.Fatalf("NewLedger(-100) cash = %s, want 0", l.Cash())
	}
	if l.Currency() != "USD" {
		t.Fatalf("NewLedger(-100) currency = %q, want USD", l.Currency())
	}
}

func TestLedger_TotalValue(t *testing.T) {
	l := NewLedger(USD(1000))
	if err := l.Buy("AAPL", Q(2), USD(100)); err != nil {
		t.Fatal(err)
	}
	if err := l.Buy("GOOG", Q(1), USD(200)); err != nil {
		t.Fatal(err)
	}
	// cash is now 600

	prices := map[string]Money{"AAPL": USD(110)}
	// GOOG has no price: valued at zero.
	if got := l.TotalValue(prices); !got.Equal(USD(820)) {
		t.Fatalf("TotalValue() = %s, want 820", got)
	}
}

func TestLedger_Tickers_Sorted(t *testing.T) {
	l := NewLedger(USD(10000))
	for _, ticker := range []string{"MSFT", "AAPL", "GOOG"} {
		if err := l.Buy(ticker, Q(1), USD(1)); err != nil {
			t.Fatal(err)
		}
	}
	var got []string
	for ticker := range l.Tickers() {
		got = append(got, ticker)
	}
	want := []string{"AAPL", "GOOG", "MSFT"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tickers() = %v, want %v", got, want)
		}
	}
}
