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

type holdingCmd struct{}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "show cash, positions, and their current value" }
func (*holdingCmd) Usage() string {
	return `tsm holding

  Displays the account state: cash, positions, and their value at the
  latest prices. Positions that cannot be priced are shown without a value.
`
}

func (*holdingCmd) SetFlags(_ *flag.FlagSet) {}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	prices := make(map[string]tradesim.Money)
	for ticker := range a.ledger.Tickers() {
		price, err := a.provider.LatestPrice(ctx, ticker)
		if err != nil {
			a.log.Warn("price unavailable", "ticker", ticker, "err", err)
			continue
		}
		prices[ticker] = price
	}

	printMarkdown(renderer.HoldingMarkdown(a.ledger, prices))
	return subcommands.ExitSuccess
}
