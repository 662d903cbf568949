package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gmonteiro13/simulador-investimentos/config"
	"github.com/gmonteiro13/simulador-investimentos/renderer"
	"github.com/gmonteiro13/simulador-investimentos/store"
	"github.com/google/subcommands"
)

// runsCmd holds the flags for the 'runs' subcommand.
type runsCmd struct {
	configFile string
	db         string
	limit      int
}

func (*runsCmd) Name() string     { return "runs" }
func (*runsCmd) Synopsis() string { return "list saved simulation runs" }
func (*runsCmd) Usage() string {
	return `savesim runs [-db <file>] [-n <count>]

  Lists the most recent runs saved by 'simulate -db <file>'.
`
}

func (c *runsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "TOML configuration file.")
	f.StringVar(&c.db, "db", "", "SQLite database of saved runs. Defaults to the configured database.")
	f.IntVar(&c.limit, "n", 20, "Maximum number of runs to list.")
}

func (c *runsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.db != "" {
		cfg.Database = c.db
	}
	if cfg.Database == "" {
		fmt.Fprintln(os.Stderr, "Error: -db is required.")
		return subcommands.ExitUsageError
	}

	db, err := store.Open(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	runs, err := db.List(ctx, c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing runs: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RunsMarkdown(runs, cfg.Currency))
	return subcommands.ExitSuccess
}
