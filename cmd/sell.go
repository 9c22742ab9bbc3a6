package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradesim"
	"github.com/google/subcommands"
)

// sellCmd holds the arguments for the 'sell' subcommand.
type sellCmd struct{}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares at the latest market price" }
func (*sellCmd) Usage() string {
	return `tsm sell <ticker> <quantity>

  Sells the given quantity of shares at the latest price, crediting cash.

Usage Examples:
$ tsm sell AAPL 5
`
}

func (*sellCmd) SetFlags(_ *flag.FlagSet) {}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	tx, err := a.engine.Sell(ctx, f.Arg(0), qty)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if err := a.saveLedger(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: trade executed but the ledger could not be saved: %v\n", err)
	}

	fmt.Printf("Sold %s %s at %s (total %s), cash %s\n",
		tx.Quantity, tx.Ticker, tx.Price, tx.Total, tx.CashAfter)
	return subcommands.ExitSuccess
}
