package tradesim

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const chartPayload = `{
  "chart": {
    "result": [
      {
        "meta": {
          "regularMarketPrice": %s,
          "currency": "USD",
          "marketState": "%s",
          "shortName": "Apple Inc."
        },
        "timestamp": [1754006400, 1754092800],
        "indicators": {
          "quote": [
            {
              "open": [100.0, 102.0],
              "high": [103.0, 104.0],
              "low": [99.0, 101.0],
              "close": [102.0, 103.5]
            }
          ]
        }
      }
    ]
  }
}`

func chartServer(t *testing.T, price, state string) *YahooProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, chartPayload, price, state)
	}))
	t.Cleanup(srv.Close)

	p := NewYahooProvider(discard)
	p.BaseURL = srv.URL
	p.Client = srv.Client()
	return p
}

func TestYahooProvider_Quote(t *testing.T) {
	p := chartServer(t, "123.45", "REGULAR")

	q, err := p.Quote(context.Background(), " aapl ")
	if err != nil {
		t.Fatalf("Quote() failed: %v", err)
	}
	if q.Ticker != "AAPL" {
		t.Fatalf("Ticker = %q, want AAPL", q.Ticker)
	}
	if !q.Price.Equal(USD(123.45)) || q.Price.Currency() != "USD" {
		t.Fatalf("Price = %s %s", q.Price.Amount(), q.Price.Currency())
	}
	if q.Name != "Apple Inc." || q.MarketState != "REGULAR" {
		t.Fatalf("Name/State = %q/%q", q.Name, q.MarketState)
	}
}

func TestYahooProvider_PriceAsString(t *testing.T) {
	// some endpoints hand numbers back as localized strings
	p := chartServer(t, `"1 234,5"`, "REGULAR")

	price, err := p.LatestPrice(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("LatestPrice() failed: %v", err)
	}
	if !price.Equal(USD(1234.5)) {
		t.Fatalf("price = %s, want 1234.5", price.Amount())
	}
}

func TestYahooProvider_MarketState(t *testing.T) {
	open := chartServer(t, "100", "REGULAR")
	if got, err := open.IsOpen("AAPL"); err != nil || !got {
		t.Fatalf("IsOpen() = %v, %v, want true", got, err)
	}

	closed := chartServer(t, "100", "CLOSED")
	if got, err := closed.IsOpen("AAPL"); err != nil || got {
		t.Fatalf("IsOpen() = %v, %v, want false", got, err)
	}
	if state := closed.State("AAPL"); state != "CLOSED" {
		t.Fatalf("State() = %q, want CLOSED", state)
	}
}

func TestYahooProvider_Candles(t *testing.T) {
	p := chartServer(t, "103.5", "CLOSED")

	candles, err := p.Candles(context.Background(), "AAPL", "5d")
	if err != nil {
		t.Fatalf("Candles() failed: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("Candles() = %d bars, want 2", len(candles))
	}
	first := candles[0]
	if first.Open != 100.0 || first.Close != 102.0 {
		t.Fatalf("first bar = %+v", first)
	}
	if first.Time.IsZero() {
		t.Fatal("bar timestamp not parsed")
	}
}

func TestYahooProvider_QuoteErrors(t *testing.T) {
	t.Run("http failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))
		defer srv.Close()

		p := NewYahooProvider(discard)
		p.BaseURL = srv.URL
		p.Client = srv.Client()
		if _, err := p.Quote(context.Background(), "NOPE"); err == nil {
			t.Fatal("Quote() succeeded on a 404")
		}
	})

	t.Run("missing price", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"chart":{"result":[{"meta":{}}]}}`)
		}))
		defer srv.Close()

		p := NewYahooProvider(discard)
		p.BaseURL = srv.URL
		p.Client = srv.Client()
		if _, err := p.Quote(context.Background(), "NOPE"); err == nil {
			t.Fatal("Quote() succeeded without price data")
		}
	})
}

func TestJSONNumber(t *testing.T) {
	doc := map[string]any{
		"float":  123.5,
		"string": "1 234,5",
		"bad":    true,
	}

	if got, err := jsonNumber(doc, "$.float"); err != nil || got != 123.5 {
		t.Fatalf("jsonNumber(float) = %v, %v", got, err)
	}
	if got, err := jsonNumber(doc, "$.string"); err != nil || got != 1234.5 {
		t.Fatalf("jsonNumber(string) = %v, %v", got, err)
	}
	if _, err := jsonNumber(doc, "$.bad"); err == nil {
		t.Fatal("jsonNumber(bool) did not fail")
	}
	if _, err := jsonNumber(doc, "$.missing"); err == nil {
		t.Fatal("jsonNumber(missing) did not fail")
	}
}
