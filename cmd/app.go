// Package cmd implements the CLI application to drive the trading simulator.
package cmd

import (
	"flag"
	"log/slog"
	"os"

	"github.com/etnz/tradesim"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "trading")
	c.Register(&sellCmd{}, "trading")
	c.Register(&quoteCmd{}, "trading")

	c.Register(&holdingCmd{}, "reporting")
	c.Register(&gainsCmd{}, "reporting")
	c.Register(&historyCmd{}, "reporting")
	c.Register(&reportCmd{}, "reporting")
	c.Register(&snapshotsCmd{}, "reporting")

	c.Register(&serveCmd{}, "server")
	c.Register(&resetCmd{}, "maintenance")
	c.Register(&assistCmd{}, "assistant")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var configFile = flag.String("config", "", "Path to the YAML configuration file")
var dataDir = flag.String("data-dir", "", "Override the data directory from the configuration")

// app bundles the wired components every subcommand needs.
type app struct {
	cfg       tradesim.Config
	log       *slog.Logger
	ledger    *tradesim.Ledger
	provider  *tradesim.YahooProvider
	engine    *tradesim.Engine
	history   *tradesim.History
	snapshots *tradesim.SnapshotStore
}

// newApp loads the configuration and wires the components. The ledger is
// loaded leniently: a missing or damaged file starts a fresh account.
func newApp() (*app, error) {
	cfg, err := tradesim.LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	log := tradesim.NewLogger(os.Stderr, cfg.Logging)
	ledger := tradesim.LoadLedger(cfg.LedgerPath(), cfg.Seed(), log)
	provider := tradesim.NewYahooProvider(log)
	snapshots := tradesim.NewSnapshotStore(cfg.SnapshotsPath(), log)
	history := tradesim.NewHistory(cfg.HistoryPath(), log)

	engine := tradesim.NewEngine(ledger, provider, log)
	engine.Snapshots = snapshots
	engine.History = history
	if cfg.EnforceMarketHours {
		engine.Calendar = provider
	}

	return &app{
		cfg:       cfg,
		log:       log,
		ledger:    ledger,
		provider:  provider,
		engine:    engine,
		history:   history,
		snapshots: snapshots,
	}, nil
}

// saveLedger persists the ledger at its configured location.
func (a *app) saveLedger() error {
	return tradesim.SaveLedger(a.cfg.LedgerPath(), a.ledger)
}
