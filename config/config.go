// Package config loads savesim settings with priority:
// defaults -> TOML file -> SAVESIM_* environment -> command line flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	simulator "github.com/gmonteiro13/simulador-investimentos"
	"github.com/gmonteiro13/simulador-investimentos/date"
	"github.com/pelletier/go-toml/v2"
)

// Providers names the known price providers.
var Providers = []string{"yahoo", "eodhd", "csv"}

// Config represents the savesim configuration.
type Config struct {
	Tickers             []string  `toml:"tickers"`
	Start               string    `toml:"start"`
	End                 string    `toml:"end"`
	Weights             []float64 `toml:"weights"`
	MonthlyContribution float64   `toml:"monthly_contribution"`
	InitialCapital      float64   `toml:"initial_capital"`
	MonthlyRate         float64   `toml:"monthly_rate"` // percent
	Currency            string    `toml:"currency"`

	Provider   string `toml:"provider"`
	PricesFile string `toml:"prices_file"`
	CacheDir   string `toml:"cache_dir"`
	OutputDir  string `toml:"output_dir"`
	Database   string `toml:"database"`
	Charts     bool   `toml:"charts"`

	EODHD   EODHDConfig   `toml:"eodhd"`
	Logging LoggingConfig `toml:"logging"`
}

// EODHDConfig contains eodhd.com settings.
type EODHDConfig struct {
	APIKey string `toml:"api_key"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Currency:  simulator.DefaultCurrency,
		Provider:  "yahoo",
		OutputDir: ".",
		Charts:    true,
		Logging:   LoggingConfig{Level: "info"},
	}
}

// Load loads the configuration from path, when not empty, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	config := NewDefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(config, os.Getenv); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies SAVESIM_* environment variable overrides to config.
func applyEnvOverrides(config *Config, getenv func(string) string) error {
	if v := getenv("SAVESIM_TICKERS"); v != "" {
		config.Tickers = SplitList(v)
	}
	if v := getenv("SAVESIM_START"); v != "" {
		config.Start = v
	}
	if v := getenv("SAVESIM_END"); v != "" {
		config.End = v
	}
	if v := getenv("SAVESIM_WEIGHTS"); v != "" {
		w, err := ParseWeights(v)
		if err != nil {
			return fmt.Errorf("SAVESIM_WEIGHTS: %w", err)
		}
		config.Weights = w
	}
	floats := []struct {
		name string
		dst  *float64
	}{
		{"SAVESIM_MONTHLY_CONTRIBUTION", &config.MonthlyContribution},
		{"SAVESIM_INITIAL_CAPITAL", &config.InitialCapital},
		{"SAVESIM_MONTHLY_RATE", &config.MonthlyRate},
	}
	for _, f := range floats {
		if v := getenv(f.name); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", f.name, err)
			}
			*f.dst = x
		}
	}
	if v := getenv("SAVESIM_CURRENCY"); v != "" {
		config.Currency = v
	}
	if v := getenv("SAVESIM_PROVIDER"); v != "" {
		config.Provider = v
	}
	if v := getenv("SAVESIM_PRICES_FILE"); v != "" {
		config.PricesFile = v
	}
	if v := getenv("SAVESIM_CACHE_DIR"); v != "" {
		config.CacheDir = v
	}
	if v := getenv("SAVESIM_OUTPUT_DIR"); v != "" {
		config.OutputDir = v
	}
	if v := getenv("SAVESIM_DATABASE"); v != "" {
		config.Database = v
	}
	if v := getenv("SAVESIM_CHARTS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SAVESIM_CHARTS: %w", err)
		}
		config.Charts = b
	}
	if v := getenv("EODHD_API_KEY"); v != "" {
		config.EODHD.APIKey = v
	}
	if v := getenv("SAVESIM_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	return nil
}

// SplitList splits a comma separated list, trimming blanks and dropping empty items.
func SplitList(s string) []string {
	var items []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseWeights parses a comma separated list of weights, e.g. "0.4,0.3,0.3".
func ParseWeights(s string) ([]float64, error) {
	items := SplitList(s)
	weights := make([]float64, len(items))
	for i, item := range items {
		w, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", item, err)
		}
		weights[i] = w
	}
	return weights, nil
}

// Scenario converts the configuration into a validated scenario.
//
// Weights default to an equally weighted portfolio.
func (c *Config) Scenario() (simulator.Scenario, error) {
	from, err := date.Parse(c.Start)
	if err != nil {
		return simulator.Scenario{}, fmt.Errorf("invalid start date %q: %w", c.Start, simulator.ErrInvalidScenario)
	}
	to, err := date.Parse(c.End)
	if err != nil {
		return simulator.Scenario{}, fmt.Errorf("invalid end date %q: %w", c.End, simulator.ErrInvalidScenario)
	}
	weights := c.Weights
	if len(weights) == 0 {
		weights = make([]float64, len(c.Tickers))
		for i := range weights {
			weights[i] = 1
		}
	}
	s := simulator.Scenario{
		Tickers:             c.Tickers,
		From:                from,
		To:                  to,
		Weights:             weights,
		InitialCapital:      c.InitialCapital,
		MonthlyContribution: c.MonthlyContribution,
		MonthlyRate:         c.MonthlyRate,
	}
	return s, s.Validate()
}
