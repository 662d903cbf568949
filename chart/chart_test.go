package chart

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	simulator "github.com/gmonteiro13/simulador-investimentos"
	"github.com/gmonteiro13/simulador-investimentos/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func comparison(t *testing.T, days int) *simulator.Comparison {
	t.Helper()
	a := new(date.History[float64])
	for i := range days {
		a.Append(date.New(2020, 1, 1).Add(i), 100+float64(i%17)-float64(i%5))
	}
	prices := simulator.NewPriceTable([]string{"A"}, map[string]*date.History[float64]{"A": a})
	c, err := simulator.Compare(context.Background(), simulator.Scenario{
		Tickers:             []string{"A"},
		From:                date.New(2020, 1, 1),
		To:                  date.New(2020, 1, 1).Add(days),
		Weights:             []float64{1},
		InitialCapital:      1000,
		MonthlyContribution: 100,
		MonthlyRate:         1,
	}, simulator.PriceProviderFunc(func(context.Context, []string, date.Date, date.Date) (*simulator.PriceTable, error) {
		return prices, nil
	}))
	require.NoError(t, err)
	return c
}

func TestSample(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, sample(3, 10))
	idx := sample(1000, 5)
	assert.Equal(t, []int{0, 249, 499, 749, 999}, idx)
}

func TestValueChart(t *testing.T) {
	c := comparison(t, 400)
	img, err := ValueChart(c.Interest, c.Portfolio)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngSignature), "not a PNG")
}

func TestDrawdownChart(t *testing.T) {
	c := comparison(t, 60)
	img, err := DrawdownChart(c.PortfolioDrawdown)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngSignature), "not a PNG")

	single, err := simulator.NewSeries("single", []date.Date{date.New(2020, 1, 1)}, []float64{1})
	require.NoError(t, err)
	_, err = DrawdownChart(simulator.Drawdowns(single))
	assert.Error(t, err)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteFiles(dir, comparison(t, 30))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, DrawdownFile), filepath.Join(dir, ValueFile)}, paths)
	for _, path := range paths {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}
}

func TestWriteFiles_SingleDay(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteFiles(dir, comparison(t, 1))
	require.NoError(t, err)
	assert.Empty(t, paths)
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "output directory created for a single day")
}
