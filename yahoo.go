package tradesim

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// Quote is a minimal latest-quote representation.
type Quote struct {
	Ticker      string
	Price       Money
	Name        string
	MarketState string // e.g. "REGULAR", "CLOSED", "PRE", "POST"
	Time        time.Time
}

// YahooProvider fetches quotes and candles from the Yahoo Finance chart API.
// It implements both PriceProvider and MarketCalendar.
type YahooProvider struct {
	// BaseURL overrides the Yahoo endpoint, mainly for tests.
	BaseURL string
	// Client is used for latest-quote requests. Candle requests go through a
	// separate daily-expiring disk cache.
	Client *http.Client

	cached *http.Client
	log    *slog.Logger
}

// NewYahooProvider creates a provider with a sensible request timeout.
func NewYahooProvider(log *slog.Logger) *YahooProvider {
	if log == nil {
		log = slog.Default()
	}
	return &YahooProvider{
		BaseURL: defaultYahooBaseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
		cached:  daily(),
		log:     log,
	}
}

func (p *YahooProvider) chartURL(ticker, rng, interval string) string {
	return fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		p.BaseURL, url.PathEscape(ticker), rng, interval)
}

// Quote fetches the latest quote for a ticker.
func (p *YahooProvider) Quote(ctx context.Context, ticker string) (*Quote, error) {
	var jobj any
	addr := p.chartURL(ticker, "1d", "1d")
	if err := jwget(ctx, p.Client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error retrieving quote for %q: %w", ticker, err)
	}

	price, err := jsonNumber(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return nil, fmt.Errorf("no price data for %q (invalid ticker or no data): %w", ticker, err)
	}

	// currency, state and name are best effort.
	currency, _ := jsonString(jobj, "$.chart.result[0].meta.currency")
	state, _ := jsonString(jobj, "$.chart.result[0].meta.marketState")
	name, _ := jsonString(jobj, "$.chart.result[0].meta.shortName")

	return &Quote{
		Ticker:      NormalizeTicker(ticker),
		Price:       M(decimal.NewFromFloat(price), currency),
		Name:        name,
		MarketState: state,
		Time:        time.Now().UTC(),
	}, nil
}

// LatestPrice implements PriceProvider.
func (p *YahooProvider) LatestPrice(ctx context.Context, ticker string) (Money, error) {
	q, err := p.Quote(ctx, ticker)
	if err != nil {
		return Money{}, err
	}
	return q.Price, nil
}

// IsOpen implements MarketCalendar: the venue is open during the REGULAR
// session.
func (p *YahooProvider) IsOpen(ticker string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	q, err := p.Quote(ctx, ticker)
	if err != nil {
		return false, err
	}
	return q.MarketState == "REGULAR", nil
}

// State implements MarketCalendar, for diagnostics only.
func (p *YahooProvider) State(ticker string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	q, err := p.Quote(ctx, ticker)
	if err != nil {
		return ""
	}
	return q.MarketState
}

// Candle is one daily OHLC bar, for charting.
type Candle struct {
	Time  time.Time `json:"time"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// Candles fetches daily bars for the given range (e.g. "1mo", "3mo", "1y")
// through the daily-expiring disk cache.
func (p *YahooProvider) Candles(ctx context.Context, ticker, rng string) ([]Candle, error) {
	// the payload shape is stable enough for a typed decode.
	var payload struct {
		Chart struct {
			Result []struct {
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Open  []float64 `json:"open"`
						High  []float64 `json:"high"`
						Low   []float64 `json:"low"`
						Close []float64 `json:"close"`
					} `json:"quote"`
				} `json:"indicators"`
			} `json:"result"`
		} `json:"chart"`
	}

	addr := p.chartURL(ticker, rng, "1d")
	if err := jwget(ctx, p.cached, addr, &payload); err != nil {
		return nil, fmt.Errorf("error retrieving candles for %q: %w", ticker, err)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no candle data for %q", ticker)
	}

	result := payload.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	candles := make([]Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		candles = append(candles, Candle{
			Time:  time.Unix(ts, 0).UTC(),
			Open:  quote.Open[i],
			High:  quote.High[i],
			Low:   quote.Low[i],
			Close: quote.Close[i],
		})
	}
	return candles, nil
}

// jsonNumber extracts a float from a decoded JSON document, tolerating the
// number-as-string payloads some market data endpoints produce.
func jsonNumber(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	if val, ok := jval.(float64); ok {
		return val, nil
	}
	sval, ok := jval.(string)
	if !ok {
		return math.NaN(), fmt.Errorf("value at %q is neither a float nor a string: %v", path, jval)
	}
	sval = strings.ReplaceAll(sval, ",", ".")
	sval = strings.ReplaceAll(sval, " ", "")
	val, err := strconv.ParseFloat(sval, 64)
	if err != nil {
		return math.NaN(), fmt.Errorf("value at %q is an invalid string %q: %w", path, sval, err)
	}
	return val, nil
}

// jsonString extracts a string from a decoded JSON document.
func jsonString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", err
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("value at %q is not a string", path)
	}
	return s, nil
}
