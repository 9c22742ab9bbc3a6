package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/tradesim"
)

// HoldingMarkdown renders the current account state: cash, positions, and
// their value at the given prices. Tickers missing from prices render an
// empty price and a zero value.
func HoldingMarkdown(ledger *tradesim.Ledger, prices map[string]tradesim.Money) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio\n\n")
	fmt.Fprintf(&b, "Cash: %s\n\n", ledger.Cash().String())

	fmt.Fprint(&b, "## Holdings\n\n")
	fmt.Fprintln(&b, "| Ticker | Quantity | Price | Value |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")

	total := ledger.Cash()
	for ticker := range ledger.Tickers() {
		qty := ledger.Position(ticker)
		price, ok := prices[ticker]
		if !ok {
			fmt.Fprintf(&b, "| %s | %s | | - |\n", ticker, qty)
			continue
		}
		value := price.Mul(qty)
		total = total.Add(value)
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", ticker, qty, amount(price), amount(value))
	}
	fmt.Fprintf(&b, "| **%s** | | | **%s** |\n", "Total", amount(total))

	return b.String()
}

// QuoteMarkdown renders a single quote.
func QuoteMarkdown(q *tradesim.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", q.Ticker)
	if q.Name != "" {
		fmt.Fprintf(&b, "%s\n\n", q.Name)
	}
	fmt.Fprintf(&b, "- Price: %s %s\n", amount(q.Price), q.Price.Currency())
	if q.MarketState != "" {
		fmt.Fprintf(&b, "- Market: %s\n", q.MarketState)
	}
	fmt.Fprintf(&b, "- As of: %s\n", q.Time.Format(time.RFC3339))
	return b.String()
}
