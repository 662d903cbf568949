package renderer

import (
	"fmt"
	"math"
	"strings"

	simulator "github.com/gmonteiro13/simulador-investimentos"
)

// Comparison is the presentation of a simulator.Comparison, every field ready to print.
type Comparison struct {
	From, To            string
	Days                int
	Tickers             string
	Weights             string
	InitialCapital      string
	MonthlyContribution string
	MonthlyRate         string
	Rows                []MetricsRow
	Charts              []string
}

// MetricsRow is one line of the metrics table.
type MetricsRow struct {
	Scenario    string
	FinalValue  string
	CAGR        string
	Volatility  string
	MaxDrawdown string
	Sharpe      string
}

// NewComparison prepares c for rendering, amounts in currency. charts are
// paths of chart files to link, if any.
func NewComparison(c *simulator.Comparison, currency string, charts ...string) *Comparison {
	s := c.Scenario
	return &Comparison{
		From:                s.From.String(),
		To:                  s.To.String(),
		Days:                c.Prices.Len(),
		Tickers:             strings.Join(s.Tickers, ", "),
		Weights:             weights(s.Tickers, s.Weights),
		InitialCapital:      simulator.FormatAmount(s.InitialCapital, currency),
		MonthlyContribution: simulator.FormatAmount(s.MonthlyContribution, currency),
		MonthlyRate:         simulator.Percent(s.MonthlyRate).String(),
		Rows: []MetricsRow{
			metricsRow(c.Interest.Name(), c.InterestMetrics, currency),
			metricsRow(c.Portfolio.Name(), c.PortfolioMetrics, currency),
		},
		Charts: charts,
	}
}

func metricsRow(name string, m simulator.Metrics, currency string) MetricsRow {
	return MetricsRow{
		Scenario:    name,
		FinalValue:  simulator.FormatAmount(m.FinalValue, currency),
		CAGR:        simulator.AsPercent(m.CAGR).String(),
		Volatility:  simulator.AsPercent(m.Volatility).String(),
		MaxDrawdown: simulator.AsPercent(m.MaxDrawdown).String(),
		Sharpe:      Ratio(m.Sharpe),
	}
}

// Ratio formats a ratio with two decimals, "inf" when infinite and "n/a" when undefined.
func Ratio(v float64) string {
	switch {
	case math.IsNaN(v):
		return "n/a"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return fmt.Sprintf("%.2f", v)
}

// weights lists normalized weights per ticker, e.g. "A 25.00%, B 75.00%".
func weights(tickers []string, raw []float64) string {
	w, err := simulator.NormalizeWeights(raw, len(tickers))
	if err != nil {
		return fmt.Sprint(raw)
	}
	items := make([]string, len(w))
	for i, t := range tickers {
		items[i] = fmt.Sprintf("%s %s", t, simulator.AsPercent(w[i]))
	}
	return strings.Join(items, ", ")
}

// RenderComparison renders the comparison report.
func RenderComparison(c *Comparison) string {
	partials := map[string]string{
		"comparison_title":      "comparison_title.md",
		"comparison_parameters": "comparison_parameters.md",
		"comparison_metrics":    "comparison_metrics.md",
		"comparison_charts":     "",
	}
	if len(c.Charts) > 0 {
		partials["comparison_charts"] = "comparison_charts.md"
	}
	return renderTemplate("comparison", "comparison.md", partials, c)
}
