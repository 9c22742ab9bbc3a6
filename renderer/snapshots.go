package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/tradesim"
)

// SnapshotsMarkdown renders audit log rows as a markdown table.
func SnapshotsMarkdown(rows []tradesim.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Audit Log\n\n")
	if len(rows) == 0 {
		fmt.Fprint(&b, "No snapshots recorded.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Event | Ticker | Quantity | Price | Cash | Holdings | Total |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|---:|")
	for _, snap := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			snap.Timestamp.Format("2006-01-02 15:04"),
			snap.Event,
			snap.Ticker,
			snap.Quantity,
			amount(snap.Price),
			amount(snap.Cash),
			amount(snap.HoldingsValue),
			amount(snap.TotalValue),
		)
	}
	return b.String()
}
