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

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct{}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized and unrealized gain analysis" }
func (*gainsCmd) Usage() string {
	return `tsm gains

  Replays the transaction history under the average-cost basis and displays
  realized and unrealized profit and loss per ticker.
`
}

func (*gainsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *gainsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	report := tradesim.ComputePL(ctx, a.history.Load(), nil, a.provider, a.log)
	printMarkdown(renderer.GainsMarkdown(report))
	return subcommands.ExitSuccess
}
