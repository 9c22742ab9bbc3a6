package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradesim"
	"github.com/google/subcommands"
)

// buyCmd holds the arguments for the 'buy' subcommand.
type buyCmd struct{}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares at the latest market price" }
func (*buyCmd) Usage() string {
	return `tsm buy <ticker> <quantity>

  Buys the given quantity of shares at the latest price, debiting cash.

Usage Examples:
$ tsm buy AAPL 10
$ tsm buy MSFT 2.5
`
}

func (*buyCmd) SetFlags(_ *flag.FlagSet) {}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <ticker> <quantity> arguments.")
		return subcommands.ExitUsageError
	}

	qty, err := tradesim.ParseQuantity(f.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	tx, err := a.engine.Buy(ctx, f.Arg(0), qty)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if err := a.saveLedger(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: trade executed but the ledger could not be saved: %v\n", err)
	}

	fmt.Printf("Bought %s %s at %s (total %s), cash %s\n",
		tx.Quantity, tx.Ticker, tx.Price, tx.Total, tx.CashAfter)
	return subcommands.ExitSuccess
}
