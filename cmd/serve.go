package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradesim"
	"github.com/google/subcommands"
)

type serveCmd struct {
	host string
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the JSON HTTP API" }
func (*serveCmd) Usage() string {
	return `tsm serve [-host <host>] [-port <port>]

  Starts the HTTP API. Endpoints include /api/portfolio, /api/trade,
  /api/quote/{ticker}, /api/pl, /api/history, and /api/snapshots.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.host, "host", "", "Listen host. Overrides the configuration.")
	f.IntVar(&c.port, "port", 0, "Listen port. Overrides the configuration.")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if c.host != "" {
		a.cfg.Server.Host = c.host
	}
	if c.port != 0 {
		a.cfg.Server.Port = c.port
	}

	server := tradesim.NewServer(a.cfg, a.engine, a.provider, a.history, a.snapshots, a.log)
	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
