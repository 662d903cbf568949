package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	simulator "github.com/gmonteiro13/simulador-investimentos"
	"github.com/gmonteiro13/simulador-investimentos/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// pricesCmd holds the flags for the 'prices' subcommand.
type pricesCmd struct {
	scenarioFlags
	output string
	limit  int
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "fetch the aligned daily prices of tickers" }
func (*pricesCmd) Usage() string {
	return `savesim prices -tickers <t1,t2> -start <day> -end <day> [-provider yahoo|eodhd|csv] [-o <file.csv>]

  Fetches the daily prices used by 'simulate', aligned on common days and
  with gaps filled. With -o the table is written as CSV, to be used later
  with '-provider csv -prices <file.csv>'. Otherwise the last rows are printed.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	c.scenarioFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "", "CSV file to write the prices to.")
	f.IntVar(&c.limit, "n", 20, "Number of rows to print, all when 0.")
}

func (c *pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	prices, err := provider.FetchPrices(ctx, scenario.Tickers, scenario.From, scenario.To)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if prices.Empty() {
		fmt.Fprintf(os.Stderr, "Error: could not obtain price data for %v between %s and %s\n", scenario.Tickers, scenario.From, scenario.To)
		return subcommands.ExitFailure
	}

	if c.output == "" {
		printMarkdown(renderer.PriceTableMarkdown(prices, c.limit))
		return subcommands.ExitSuccess
	}
	if err := writePrices(c.output, prices); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Info().Str("file", c.output).Int("days", prices.Len()).Msg("prices written")
	return subcommands.ExitSuccess
}

func writePrices(name string, prices *simulator.PriceTable) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := simulator.WritePriceTableCSV(f, prices); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}
