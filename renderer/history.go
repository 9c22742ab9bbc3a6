package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/tradesim"
)

// HistoryMarkdown renders recorded transactions as a markdown table, in the
// order given.
func HistoryMarkdown(records []tradesim.Transaction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Transaction History\n\n")
	if len(records) == 0 {
		fmt.Fprint(&b, "No transactions recorded.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Side | Ticker | Quantity | Price | Total | Cash After |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|")
	for _, tx := range records {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Timestamp.Format("2006-01-02 15:04"),
			tx.Side,
			tx.Ticker,
			tx.Quantity,
			amount(tx.Price),
			amount(tx.Total),
			amount(tx.CashAfter),
		)
	}
	return b.String()
}
