package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/tradesim"
)

// GainsMarkdown renders a profit and loss report as a markdown table, one row
// per ticker plus a total row. Figures use the average cost basis.
func GainsMarkdown(report tradesim.PLReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Profit / Loss Report\n\n")
	if report.NoData {
		fmt.Fprint(&b, "No trades recorded yet.\n")
		return b.String()
	}
	fmt.Fprint(&b, "Cost basis: average cost\n\n")

	fmt.Fprint(&b, "## Open Positions\n\n")
	fmt.Fprintln(&b, "| Ticker | Quantity | Avg Cost | Latest | Unrealized |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for _, ticker := range report.Tickers() {
		pos := report.PerTicker[ticker]
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			ticker,
			pos.Quantity,
			amount(pos.AvgCost),
			amount(pos.LatestPrice),
			signedAmount(pos.Unrealized),
		)
	}

	fmt.Fprint(&b, "\n## Totals\n\n")
	fmt.Fprintln(&b, "| Realized | Unrealized | Total |")
	fmt.Fprintln(&b, "|---:|---:|---:|")
	fmt.Fprintf(&b, "| %s | %s | **%s** |\n",
		signedAmount(report.Realized),
		signedAmount(report.Unrealized),
		signedAmount(report.Total),
	)

	return b.String()
}
