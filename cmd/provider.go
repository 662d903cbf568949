package cmd

import (
	"fmt"

	simulator "github.com/gmonteiro13/simulador-investimentos"
	"github.com/gmonteiro13/simulador-investimentos/config"
	"github.com/gmonteiro13/simulador-investimentos/eodhd"
	"github.com/gmonteiro13/simulador-investimentos/yahoo"
)

// newProvider returns the price provider selected by the configuration.
func newProvider(cfg *config.Config) (simulator.PriceProvider, error) {
	switch cfg.Provider {
	case "", "yahoo":
		return yahoo.New(cfg.CacheDir), nil
	case "eodhd":
		if cfg.EODHD.APIKey == "" {
			return nil, fmt.Errorf("eodhd provider requires an API key, set EODHD_API_KEY")
		}
		return eodhd.New(cfg.EODHD.APIKey, cfg.CacheDir), nil
	case "csv":
		if cfg.PricesFile == "" {
			return nil, fmt.Errorf("csv provider requires a prices file")
		}
		return simulator.CSVProvider{Path: cfg.PricesFile}, nil
	}
	return nil, fmt.Errorf("unknown provider %q, want one of %v", cfg.Provider, config.Providers)
}
