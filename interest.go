package simulator

import (
	"fmt"
	"math"

	"github.com/gmonteiro13/simulador-investimentos/date"
)

// InterestSeriesName is the name of the series produced by SimulateInterest.
const InterestSeriesName = "Compound interest"

// InterestPlan describes a fixed-rate savings plan.
type InterestPlan struct {
	InitialCapital      float64
	MonthlyContribution float64
	// MonthlyRate is a percentage: 0.8 means 0.8% per month.
	MonthlyRate float64
}

func (p InterestPlan) validate() error {
	if p.InitialCapital < 0 || p.MonthlyContribution < 0 {
		return fmt.Errorf("capital %v, contribution %v: %w", p.InitialCapital, p.MonthlyContribution, ErrNegativeAmount)
	}
	if p.MonthlyRate <= -100 || math.IsNaN(p.MonthlyRate) || math.IsInf(p.MonthlyRate, 0) {
		return fmt.Errorf("%v%%: %w", p.MonthlyRate, ErrInvalidRate)
	}
	return nil
}

// dailyRate converts the monthly rate into the rate that compounds to it over
// the calendar days of the month containing 'on'.
func (p InterestPlan) dailyRate(on date.Date) float64 {
	monthly := p.MonthlyRate / 100
	return math.Pow(1+monthly, 1/float64(on.DaysInMonth())) - 1
}

// SimulateInterest accrues interest daily over days, starting from the initial capital.
//
// The contribution of a new month is added on the first day of that month in
// days, before that day's interest accrues. Interest between two days is
// computed at the daily rate of the month of the earlier day, applied once.
func SimulateInterest(plan InterestPlan, days []date.Date, opts ...Option) (*Series, error) {
	if len(days) == 0 {
		return nil, ErrNoDates
	}
	if !date.IsIncreasing(days) {
		return nil, ErrUnorderedDates
	}
	if err := plan.validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	s := &Series{name: InterestSeriesName, deterministic: true}
	o.observer.Observe(Event{Kind: SimulationStarted, Scenario: s.name, Day: days[0], Value: plan.InitialCapital})

	value := plan.InitialCapital
	s.append(days[0], value)
	for prev, cur := range date.Pairs(days) {
		base := value
		if !cur.SameMonth(prev) {
			base += plan.MonthlyContribution
			o.observer.Observe(Event{Kind: Contribution, Scenario: s.name, Day: cur, Value: base, Amount: plan.MonthlyContribution})
		}
		value = base * (1 + plan.dailyRate(prev))
		s.append(cur, value)
	}

	last, _ := s.Last()
	o.observer.Observe(Event{Kind: SimulationCompleted, Scenario: s.name, Day: last, Value: value})
	return s, nil
}
