package cmd

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/gmonteiro13/simulador-investimentos/config"
)

// scenarioFlags are the flags shared by commands that need a scenario. Flags
// override the configuration file and the environment only when set.
type scenarioFlags struct {
	configFile   string
	tickers      string
	start        string
	end          string
	weights      string
	capital      float64
	contribution float64
	rate         float64
	provider     string
	prices       string
	currency     string
	cacheDir     string
}

func (c *scenarioFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "TOML configuration file.")
	f.StringVar(&c.tickers, "tickers", "", "Comma separated tickers, e.g. PETR4.SA,VALE3.SA.")
	f.StringVar(&c.start, "start", "", "First day of the period (YYYY-MM-DD).")
	f.StringVar(&c.end, "end", "", "Last day of the period, included (YYYY-MM-DD).")
	f.StringVar(&c.weights, "weights", "", "Comma separated weights, one per ticker. Defaults to equal weights.")
	f.Float64Var(&c.capital, "capital", 0, "Initial capital.")
	f.Float64Var(&c.contribution, "contribution", 0, "Monthly contribution.")
	f.Float64Var(&c.rate, "rate", 0, "Monthly interest rate, in percent.")
	f.StringVar(&c.provider, "provider", "", fmt.Sprintf("Price provider, one of %v.", config.Providers))
	f.StringVar(&c.prices, "prices", "", "CSV price file for the csv provider.")
	f.StringVar(&c.currency, "currency", "", "Currency code of amounts.")
	f.StringVar(&c.cacheDir, "cache", "", "Directory of the daily HTTP cache.")
}

// load reads the configuration then applies the flags explicitly set in f.
func (c *scenarioFlags) load(f *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return nil, err
	}
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "tickers":
			cfg.Tickers = config.SplitList(c.tickers)
		case "start":
			cfg.Start = c.start
		case "end":
			cfg.End = c.end
		case "weights":
			cfg.Weights, err = config.ParseWeights(c.weights)
		case "capital":
			cfg.InitialCapital = c.capital
		case "contribution":
			cfg.MonthlyContribution = c.contribution
		case "rate":
			cfg.MonthlyRate = c.rate
		case "provider":
			cfg.Provider = c.provider
		case "prices":
			cfg.PricesFile = c.prices
		case "currency":
			cfg.Currency = c.currency
		case "cache":
			cfg.CacheDir = c.cacheDir
		case "db":
			cfg.Database = fl.Value.String()
		case "out":
			cfg.OutputDir = fl.Value.String()
		case "charts":
			cfg.Charts, err = strconv.ParseBool(fl.Value.String())
		}
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
