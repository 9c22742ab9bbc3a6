package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradesim/renderer"
	"github.com/google/subcommands"
)

type snapshotsCmd struct {
	tail int
}

func (*snapshotsCmd) Name() string     { return "snapshots" }
func (*snapshotsCmd) Synopsis() string { return "list audit log entries" }
func (*snapshotsCmd) Usage() string {
	return `tsm snapshots [-tail <n>]

  Lists the audit log: one row per executed trade with the resulting cash
  and holdings value.
`
}

func (c *snapshotsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tail, "tail", 0, "Show only the last N entries.")
}

func (c *snapshotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	rows, err := a.snapshots.ReadAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if c.tail > 0 && len(rows) > c.tail {
		rows = rows[len(rows)-c.tail:]
	}

	printMarkdown(renderer.SnapshotsMarkdown(rows))
	return subcommands.ExitSuccess
}
