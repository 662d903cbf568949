package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	simulator "github.com/gmonteiro13/simulador-investimentos"
	"github.com/gmonteiro13/simulador-investimentos/chart"
	"github.com/gmonteiro13/simulador-investimentos/config"
	"github.com/gmonteiro13/simulador-investimentos/renderer"
	"github.com/gmonteiro13/simulador-investimentos/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// simulateCmd holds the flags for the 'simulate' subcommand.
type simulateCmd struct {
	scenarioFlags
	out    string
	db     string
	charts bool
}

func (*simulateCmd) Name() string { return "simulate" }
func (*simulateCmd) Synopsis() string {
	return "compare a compound interest plan with a stock portfolio"
}
func (*simulateCmd) Usage() string {
	return `savesim simulate [-config <file>] -tickers <t1,t2> -start <day> -end <day> [-weights <w1,w2>]
  [-capital <amount>] [-contribution <amount>] [-rate <percent>] [-provider yahoo|eodhd|csv]
  [-out <dir>] [-db <file>] [-charts=false]

  Simulates, over the same period, a savings account at a fixed monthly rate
  and a fixed-weight portfolio of the tickers, both starting with the same
  capital and receiving the same monthly contribution, then reports their
  final value, CAGR, volatility, max drawdown and Sharpe ratio.

  See 'savesim topic simulate' for details.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	c.scenarioFlags.SetFlags(f)
	f.StringVar(&c.out, "out", ".", "Directory where charts are written.")
	f.StringVar(&c.db, "db", "", "SQLite database where the run is saved.")
	f.BoolVar(&c.charts, "charts", true, "Write the value and drawdown charts.")
}

func (c *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.load(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := configureLogging(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	scenario, err := cfg.Scenario()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	provider, err := newProvider(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	report, err := simulate(ctx, cfg, scenario, provider)
	if errors.Is(err, simulator.ErrNoPriceData) {
		fmt.Fprintf(os.Stderr, "Error: could not obtain price data for %v between %s and %s\n", scenario.Tickers, scenario.From, scenario.To)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(report)
	return subcommands.ExitSuccess
}

// simulate runs the comparison, writes charts and saves the run as configured,
// and returns the markdown report.
func simulate(ctx context.Context, cfg *config.Config, scenario simulator.Scenario, provider simulator.PriceProvider) (string, error) {
	log.Info().
		Strs("tickers", scenario.Tickers).
		Floats64("weights", scenario.Weights).
		Stringer("start", scenario.From).
		Stringer("end", scenario.To).
		Float64("capital", scenario.InitialCapital).
		Float64("contribution", scenario.MonthlyContribution).
		Float64("monthly_rate", scenario.MonthlyRate).
		Str("provider", cfg.Provider).
		Msg("simulation parameters")

	comparison, err := simulator.Compare(ctx, scenario, provider, simulator.WithObserver(simulator.LogObserver(log.Logger)))
	if err != nil {
		return "", err
	}

	var charts []string
	if cfg.Charts {
		if charts, err = chart.WriteFiles(cfg.OutputDir, comparison); err != nil {
			return "", fmt.Errorf("writing charts: %w", err)
		}
		log.Info().Strs("files", charts).Msg("charts written")
	}

	if cfg.Database != "" {
		db, err := store.Open(cfg.Database)
		if err != nil {
			return "", err
		}
		defer db.Close()
		run, err := db.Save(ctx, comparison)
		if err != nil {
			return "", fmt.Errorf("saving run: %w", err)
		}
		log.Info().Stringer("run", run.ID).Str("database", cfg.Database).Msg("run saved")
	}

	return renderer.RenderComparison(renderer.NewComparison(comparison, cfg.Currency, charts...)), nil
}
