package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/tradesim"
)

// ReportMarkdown renders a full trade report: account state, activity
// summary, profit and loss, and the most recent transactions.
func ReportMarkdown(data tradesim.ReportData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Trade Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", data.GeneratedAt.Format(time.RFC3339))

	fmt.Fprint(&b, "## Account\n\n")
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Cash | %s |\n", data.Cash.String())
	fmt.Fprintf(&b, "| Holdings value | %s |\n", amount(data.HoldingsValue))
	fmt.Fprintf(&b, "| Total value | **%s** |\n", amount(data.TotalValue))

	fmt.Fprint(&b, "\n## Activity\n\n")
	if data.TradesCount == 0 {
		fmt.Fprint(&b, "No trades recorded.\n")
	} else {
		fmt.Fprintf(&b, "%d trades", data.TradesCount)
		if !data.PeriodStart.IsZero() {
			fmt.Fprintf(&b, " between %s and %s",
				data.PeriodStart.Format("2006-01-02"),
				data.PeriodEnd.Format("2006-01-02"))
		}
		fmt.Fprint(&b, ".\n")
	}

	fmt.Fprint(&b, "\n")
	fmt.Fprint(&b, GainsMarkdown(data.PL))

	if len(data.Recent) > 0 {
		fmt.Fprint(&b, "\n## Recent Transactions\n\n")
		fmt.Fprintln(&b, "| Date | Side | Ticker | Quantity | Price | Total |")
		fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|")
		for _, tx := range data.Recent {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				tx.Timestamp.Format("2006-01-02 15:04"),
				tx.Side,
				tx.Ticker,
				tx.Quantity,
				amount(tx.Price),
				amount(tx.Total),
			)
		}
	}

	if len(data.Notes) > 0 {
		fmt.Fprint(&b, "\n## Notes\n\n")
		for _, note := range data.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	return b.String()
}
