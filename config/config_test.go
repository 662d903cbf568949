package config

import (
	"os"
	"path/filepath"
	"testing"

	simulator "github.com/gmonteiro13/simulador-investimentos"
	"github.com/gmonteiro13/simulador-investimentos/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, "BRL", cfg.Currency)
	assert.Equal(t, "yahoo", cfg.Provider)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Charts)
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "savesim.toml")
	content := `
tickers = ["PETR4.SA", "VALE3.SA"]
start = "2020-01-01"
end = "2020-12-31"
weights = [0.6, 0.4]
monthly_contribution = 500
initial_capital = 10000
monthly_rate = 0.8
provider = "eodhd"
charts = false

[eodhd]
api_key = "demo"

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"PETR4.SA", "VALE3.SA"}, cfg.Tickers)
	assert.Equal(t, []float64{0.6, 0.4}, cfg.Weights)
	assert.Equal(t, 0.8, cfg.MonthlyRate)
	assert.Equal(t, "eodhd", cfg.Provider)
	assert.Equal(t, "demo", cfg.EODHD.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Charts)
	assert.Equal(t, "BRL", cfg.Currency, "defaults survive the file")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		"SAVESIM_TICKERS":              " ITUB4.SA, ,BBAS3.SA",
		"SAVESIM_WEIGHTS":              "1,3",
		"SAVESIM_MONTHLY_CONTRIBUTION": "250.5",
		"SAVESIM_CHARTS":               "false",
		"EODHD_API_KEY":                "secret",
	}
	cfg := NewDefaultConfig()
	require.NoError(t, applyEnvOverrides(cfg, func(k string) string { return env[k] }))
	assert.Equal(t, []string{"ITUB4.SA", "BBAS3.SA"}, cfg.Tickers)
	assert.Equal(t, []float64{1, 3}, cfg.Weights)
	assert.Equal(t, 250.5, cfg.MonthlyContribution)
	assert.False(t, cfg.Charts)
	assert.Equal(t, "secret", cfg.EODHD.APIKey)

	env["SAVESIM_INITIAL_CAPITAL"] = "lots"
	assert.Error(t, applyEnvOverrides(cfg, func(k string) string { return env[k] }))
}

func TestConfig_Scenario(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Tickers = []string{"A", "B"}
	cfg.Start, cfg.End = "2021-01-01", "2021-6-30"
	cfg.InitialCapital = 1000

	s, err := cfg.Scenario()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, s.Weights)
	assert.Equal(t, date.New(2021, 6, 30), s.To)

	cfg.Weights = []float64{1}
	_, err = cfg.Scenario()
	assert.ErrorIs(t, err, simulator.ErrInvalidScenario)

	cfg.Start = "yesterday"
	_, err = cfg.Scenario()
	assert.ErrorIs(t, err, simulator.ErrInvalidScenario)
}
