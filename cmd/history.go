package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradesim/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	head int
	tail int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list recorded transactions" }
func (*historyCmd) Usage() string {
	return `tsm history [-head <n>] [-tail <n>]

  Lists transactions from the history file, oldest first, with options for
  limiting the output.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	records := a.history.Load()
	if c.head > 0 && len(records) > c.head {
		records = records[:c.head]
	}
	if c.tail > 0 && len(records) > c.tail {
		records = records[len(records)-c.tail:]
	}

	printMarkdown(renderer.HistoryMarkdown(records))
	return subcommands.ExitSuccess
}
