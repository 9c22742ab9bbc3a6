package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradesim"
	"github.com/etnz/tradesim/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	recent int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "full trade report: account, activity, and P/L" }
func (*reportCmd) Usage() string {
	return `tsm report [-recent <n>]

  Builds a full report: account state valued at the latest prices, activity
  summary, profit and loss, and the most recent transactions.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.recent, "recent", 10, "Number of recent transactions to include.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	data := tradesim.BuildReport(ctx, a.ledger, a.history, a.provider, c.recent, a.log)
	printMarkdown(renderer.ReportMarkdown(data))
	return subcommands.ExitSuccess
}
