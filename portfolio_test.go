package simulator

import (
	"errors"
	"math"
	"testing"
)

func TestSimulatePortfolio(t *testing.T) {
	prices := table(t, []string{"A", "B"},
		[]any{"2021-01-28", 100.0, 50.0},
		[]any{"2021-01-29", 110.0, 50.0},
		[]any{"2021-02-01", 121.0, 25.0},
	)
	s, err := SimulatePortfolio(prices, PortfolioPlan{InitialCapital: 1000, MonthlyContribution: 100, Weights: []float64{1, 1}})
	if err != nil {
		t.Fatalf("SimulatePortfolio() error = %v", err)
	}
	// day 1: +5%, day 2: (10% - 50%)/2 = -20% then the contribution.
	want := []float64{1000, 1050, 1050*0.8 + 100}
	for i, w := range want {
		if got := s.At(i).Value; !near(got, w, 1e-9) {
			t.Errorf("SimulatePortfolio()[%d] = %v, want %v", i, got, w)
		}
	}
	if s.Deterministic() {
		t.Errorf("SimulatePortfolio().Deterministic() = true, want false")
	}
	if got := s.Name(); got != PortfolioSeriesName {
		t.Errorf("SimulatePortfolio().Name() = %q, want %q", got, PortfolioSeriesName)
	}
}

func TestSimulatePortfolio_ContributionAfterReturn(t *testing.T) {
	prices := table(t, []string{"A"},
		[]any{"2021-02-26", 100.0},
		[]any{"2021-03-01", 200.0},
	)
	s, err := SimulatePortfolio(prices, PortfolioPlan{InitialCapital: 1000, MonthlyContribution: 100, Weights: []float64{3}})
	if err != nil {
		t.Fatalf("SimulatePortfolio() error = %v", err)
	}
	// the contribution does not benefit from the day's return
	if got := s.At(1).Value; got != 2100 {
		t.Errorf("SimulatePortfolio()[1] = %v, want 2100", got)
	}
}

func TestSimulatePortfolio_SingleDate(t *testing.T) {
	prices := table(t, []string{"A"}, []any{"2021-03-01", 10.0})
	s, err := SimulatePortfolio(prices, PortfolioPlan{InitialCapital: 700, Weights: []float64{1}})
	if err != nil {
		t.Fatalf("SimulatePortfolio() error = %v", err)
	}
	if s.Len() != 1 || s.At(0).Value != 700 {
		t.Errorf("SimulatePortfolio() = %v, want a single point at 700", s)
	}
}

func TestSimulatePortfolio_Idempotent(t *testing.T) {
	prices := table(t, []string{"A", "B"},
		[]any{"2021-01-28", 13.1, 50.3},
		[]any{"2021-01-29", 13.7, 49.9},
		[]any{"2021-02-01", 12.9, 51.2},
		[]any{"2021-02-02", 13.3, 51.0},
	)
	plan := PortfolioPlan{InitialCapital: 1000, MonthlyContribution: 100, Weights: []float64{0.3, 0.7}}
	a, _ := SimulatePortfolio(prices, plan)
	b, _ := SimulatePortfolio(prices, plan)
	if !a.Identical(b) {
		t.Errorf("SimulatePortfolio() is not reproducible: %v vs %v", a, b)
	}
}

func TestSimulatePortfolio_Errors(t *testing.T) {
	ok := table(t, []string{"A"}, []any{"2021-01-04", 1.0}, []any{"2021-01-05", 2.0})
	zero := table(t, []string{"A"}, []any{"2021-01-04", 0.0}, []any{"2021-01-05", 2.0})
	gap := table(t, []string{"A"}, []any{"2021-01-04", 1.0}, []any{"2021-01-05", math.NaN()})
	tests := []struct {
		name   string
		prices *PriceTable
		plan   PortfolioPlan
		want   error
	}{
		{"nil table", nil, PortfolioPlan{Weights: []float64{1}}, ErrEmptyPriceTable},
		{"empty table", &PriceTable{}, PortfolioPlan{Weights: []float64{1}}, ErrEmptyPriceTable},
		{"negative capital", ok, PortfolioPlan{InitialCapital: -1, Weights: []float64{1}}, ErrNegativeAmount},
		{"weight count", ok, PortfolioPlan{Weights: []float64{1, 1}}, ErrWeightCount},
		{"zero weights", ok, PortfolioPlan{Weights: []float64{0}}, ErrZeroWeights},
		{"zero price", zero, PortfolioPlan{Weights: []float64{1}}, ErrNonPositivePrice},
		{"missing price", gap, PortfolioPlan{Weights: []float64{1}}, ErrNonPositivePrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SimulatePortfolio(tt.prices, tt.plan); !errors.Is(err, tt.want) {
				t.Errorf("SimulatePortfolio() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNormalizeWeights(t *testing.T) {
	tests := []struct {
		weights []float64
		n       int
		want    []float64
		err     error
	}{
		{[]float64{0.5, 0.5, 0.5}, 3, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, nil},
		{[]float64{2, 0, 6}, 3, []float64{0.25, 0, 0.75}, nil},
		{[]float64{1}, 2, nil, ErrWeightCount},
		{[]float64{1, -1}, 2, nil, ErrNegativeWeight},
		{[]float64{1, math.NaN()}, 2, nil, ErrNegativeWeight},
		{[]float64{0, 0}, 2, nil, ErrZeroWeights},
	}
	for _, tt := range tests {
		got, err := NormalizeWeights(tt.weights, tt.n)
		if !errors.Is(err, tt.err) {
			t.Errorf("NormalizeWeights(%v) error = %v, want %v", tt.weights, err, tt.err)
			continue
		}
		sum := 0.0
		for i := range got {
			sum += got[i]
			if !near(got[i], tt.want[i], 1e-12) {
				t.Errorf("NormalizeWeights(%v)[%d] = %v, want %v", tt.weights, i, got[i], tt.want[i])
			}
		}
		if tt.err == nil && !near(sum, 1, 1e-12) {
			t.Errorf("NormalizeWeights(%v) sums to %v, want 1", tt.weights, sum)
		}
	}
}
