package simulator

import (
	"fmt"
	"math"
)

// PortfolioSeriesName is the name of the series produced by SimulatePortfolio.
const PortfolioSeriesName = "Stock portfolio"

// PortfolioPlan describes a fixed-weight portfolio with monthly contributions.
type PortfolioPlan struct {
	InitialCapital      float64
	MonthlyContribution float64
	// Weights has one non negative weight per ticker of the price table, they
	// are normalized before use.
	Weights []float64
}

// dailyReturns computes the simple return of every asset between two rows.
func dailyReturns(tickers []string, prev, cur PriceRow, returns []float64) error {
	for j := range returns {
		p, c := prev.Prices[j], cur.Prices[j]
		if !(p > 0) || math.IsInf(p, 0) || math.IsNaN(c) {
			return fmt.Errorf("%s on %s is %v: %w", tickers[j], prev.Day, p, ErrNonPositivePrice)
		}
		returns[j] = (c - p) / p
	}
	return nil
}

// SimulatePortfolio grows the initial capital with the weighted daily returns of
// the price table, over the table's own date index.
//
// The contribution of a new month is added on the first day of that month in
// the table, after that day's return was applied.
func SimulatePortfolio(prices *PriceTable, plan PortfolioPlan, opts ...Option) (*Series, error) {
	if prices.Empty() {
		return nil, ErrEmptyPriceTable
	}
	if plan.InitialCapital < 0 || plan.MonthlyContribution < 0 {
		return nil, fmt.Errorf("capital %v, contribution %v: %w", plan.InitialCapital, plan.MonthlyContribution, ErrNegativeAmount)
	}
	weights, err := NormalizeWeights(plan.Weights, len(prices.tickers))
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)

	s := &Series{name: PortfolioSeriesName}
	o.observer.Observe(Event{Kind: SimulationStarted, Scenario: s.name, Day: prices.Day(0), Value: plan.InitialCapital})

	value := plan.InitialCapital
	s.append(prices.Day(0), value)
	returns := make([]float64, len(weights))
	for prev, cur := range prices.Steps() {
		if err := dailyReturns(prices.tickers, prev, cur, returns); err != nil {
			return nil, err
		}
		portfolioReturn := 0.0
		for j, w := range weights {
			portfolioReturn += w * returns[j]
		}
		value *= 1 + portfolioReturn
		if !cur.Day.SameMonth(prev.Day) {
			value += plan.MonthlyContribution
			o.observer.Observe(Event{Kind: Contribution, Scenario: s.name, Day: cur.Day, Value: value, Amount: plan.MonthlyContribution})
		}
		s.append(cur.Day, value)
	}

	last, _ := s.Last()
	o.observer.Observe(Event{Kind: SimulationCompleted, Scenario: s.name, Day: last, Value: value})
	return s, nil
}
