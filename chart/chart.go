// Package chart draws PNG charts of a comparison.
package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	simulator "github.com/gmonteiro13/simulador-investimentos"
	"github.com/rs/zerolog/log"
	"github.com/vicanso/go-charts/v2"
)

const (
	// ValueFile is the name of the value comparison chart written by WriteFiles.
	ValueFile = "value_comparison.png"
	// DrawdownFile is the name of the drawdown chart written by WriteFiles.
	DrawdownFile = "portfolio_drawdown.png"

	// MaxPoints is the number of points drawn per line, longer series are down-sampled.
	MaxPoints = 300
)

// ValueChart draws both series over time. They must share the same dates.
func ValueChart(interest, portfolio *simulator.Series) ([]byte, error) {
	if interest.Len() != portfolio.Len() {
		return nil, fmt.Errorf("series have %d and %d points", interest.Len(), portfolio.Len())
	}
	if interest.Len() < 2 {
		return nil, errors.New("not enough data points")
	}
	idx := sample(interest.Len(), MaxPoints)
	labels := labels(interest, idx)
	values := [][]float64{pick(interest, idx, 1), pick(portfolio, idx, 1)}

	p, err := charts.LineRender(values,
		charts.TitleTextOptionFunc("Compound interest vs stock portfolio"),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			SplitNumber: splitNumber(len(labels)),
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: []string{interest.Name(), portfolio.Name()}}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(700),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return p.Bytes()
}

// DrawdownChart draws a drawdown series, in percent.
func DrawdownChart(drawdown *simulator.Series) ([]byte, error) {
	if drawdown.Len() < 2 {
		return nil, errors.New("not enough data points")
	}
	idx := sample(drawdown.Len(), MaxPoints)
	labels := labels(drawdown, idx)
	values := pick(drawdown, idx, 100)
	yMax := 0.0
	yMin := min(-1, slices.Min(values)*1.05)

	p, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc("Portfolio drawdown", "decline from peak (%)"),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			SplitNumber: splitNumber(len(labels)),
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(700),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return p.Bytes()
}

// WriteFiles writes both charts of c in dir and returns their paths.
// A run of a single day has nothing to draw: no file is written.
func WriteFiles(dir string, c *simulator.Comparison) ([]string, error) {
	if c.Portfolio.Len() < 2 {
		log.Warn().Int("days", c.Portfolio.Len()).Msg("not enough days to chart, charts skipped")
		return nil, nil
	}
	value, err := ValueChart(c.Interest, c.Portfolio)
	if err != nil {
		return nil, err
	}
	drawdown, err := DrawdownChart(c.PortfolioDrawdown)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for name, content := range map[string][]byte{ValueFile: value, DrawdownFile: drawdown} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths, nil
}
