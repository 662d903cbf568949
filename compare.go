package simulator

import (
	"context"
	"fmt"

	"github.com/gmonteiro13/simulador-investimentos/date"
	"golang.org/x/sync/errgroup"
)

// Scenario is the full set of parameters of a comparison run.
type Scenario struct {
	Tickers []string
	From    date.Date
	To      date.Date // inclusive
	// Weights has one weight per ticker, normalized before use.
	Weights             []float64
	InitialCapital      float64
	MonthlyContribution float64
	// MonthlyRate of the interest plan, in percent.
	MonthlyRate float64
}

// Validate reports the first problem of the scenario as ErrInvalidScenario,
// or as the more specific sentinel when there is one.
func (s Scenario) Validate() error {
	if len(s.Tickers) == 0 {
		return fmt.Errorf("no tickers: %w", ErrInvalidScenario)
	}
	for _, t := range s.Tickers {
		if t == "" {
			return fmt.Errorf("empty ticker: %w", ErrInvalidScenario)
		}
	}
	if s.From.IsZero() || s.To.IsZero() {
		return fmt.Errorf("missing start or end date: %w", ErrInvalidScenario)
	}
	if s.To.Before(s.From) {
		return fmt.Errorf("end %s before start %s: %w", s.To, s.From, ErrInvalidScenario)
	}
	if _, err := NormalizeWeights(s.Weights, len(s.Tickers)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if err := s.InterestPlan().validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	return nil
}

// InterestPlan returns the fixed-rate side of the scenario.
func (s Scenario) InterestPlan() InterestPlan {
	return InterestPlan{
		InitialCapital:      s.InitialCapital,
		MonthlyContribution: s.MonthlyContribution,
		MonthlyRate:         s.MonthlyRate,
	}
}

// PortfolioPlan returns the stock side of the scenario.
func (s Scenario) PortfolioPlan() PortfolioPlan {
	return PortfolioPlan{
		InitialCapital:      s.InitialCapital,
		MonthlyContribution: s.MonthlyContribution,
		Weights:             s.Weights,
	}
}

// Comparison is the outcome of a run. It is not modified once returned.
type Comparison struct {
	Scenario Scenario
	Prices   *PriceTable

	Interest          *Series
	Portfolio         *Series
	InterestMetrics   Metrics
	PortfolioMetrics  Metrics
	PortfolioDrawdown *Series
}

// Compare runs both strategies of the scenario over the prices of the provider.
//
// The interest plan is simulated on the price table's dates so both series
// share the same index. Interest metrics use a zero risk-free rate, the
// portfolio's Sharpe ratio uses the interest CAGR as its risk-free rate.
// When the provider delivers no data Compare returns ErrNoPriceData and
// nothing is simulated.
func Compare(ctx context.Context, scenario Scenario, provider PriceProvider, opts ...Option) (*Comparison, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	o.observer.Observe(Event{Kind: RunStarted, Message: fmt.Sprintf("%v from %s to %s", scenario.Tickers, scenario.From, scenario.To)})

	prices, err := provider.FetchPrices(ctx, scenario.Tickers, scenario.From, scenario.To)
	if err != nil {
		return nil, fmt.Errorf("fetching prices: %w", err)
	}
	if prices.Empty() {
		return nil, ErrNoPriceData
	}
	o.observer.Observe(Event{Kind: PricesFetched, Amount: float64(prices.Len()), Message: fmt.Sprintf("%d days of prices", prices.Len())})

	c := &Comparison{Scenario: scenario, Prices: prices}
	var g errgroup.Group
	g.Go(func() (err error) {
		c.Interest, err = SimulateInterest(scenario.InterestPlan(), prices.Days(), opts...)
		return err
	})
	g.Go(func() (err error) {
		c.Portfolio, err = SimulatePortfolio(prices, scenario.PortfolioPlan(), opts...)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.InterestMetrics = ComputeMetrics(c.Interest, 0)
	o.observer.Observe(Event{Kind: MetricsComputed, Scenario: c.Interest.Name(), Value: c.InterestMetrics.FinalValue})
	c.PortfolioMetrics = ComputeMetrics(c.Portfolio, c.InterestMetrics.CAGR)
	o.observer.Observe(Event{Kind: MetricsComputed, Scenario: c.Portfolio.Name(), Value: c.PortfolioMetrics.FinalValue})
	c.PortfolioDrawdown = Drawdowns(c.Portfolio)
	return c, nil
}
