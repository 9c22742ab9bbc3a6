package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tradesim"
	"github.com/google/subcommands"
)

type resetCmd struct {
	force bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "reset the account to its seed cash" }
func (*resetCmd) Usage() string {
	return `tsm reset [-f]

  Replaces the ledger with a fresh account seeded with the configured cash.
  The audit log and the transaction history are left in place.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "Reset without asking for confirmation.")
}

func (c *resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if !c.force {
		fmt.Printf("Reset the account to %s? All positions will be lost. [y/N] ", a.cfg.Seed())
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return subcommands.ExitSuccess
		}
	}

	fresh := tradesim.NewLedger(a.cfg.Seed())
	if err := tradesim.SaveLedger(a.cfg.LedgerPath(), fresh); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Account reset with %s cash.\n", fresh.Cash())
	return subcommands.ExitSuccess
}
