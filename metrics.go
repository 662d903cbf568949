package simulator

import (
	"math"

	"github.com/gmonteiro13/simulador-investimentos/date"
)

const (
	// DaysPerYear is the average calendar year length used to annualize growth.
	DaysPerYear = 365.25
	// TradingDaysPerYear is the number of trading days used to annualize volatility.
	TradingDaysPerYear = 252

	// roundingUlps is how many ulps growth factors may differ by and still be
	// considered equal.
	roundingUlps = 8
)

// Metrics summarizes one Series. Rates are fractions: 0.1 means 10%.
type Metrics struct {
	FinalValue  float64
	CAGR        float64
	Volatility  float64 // annualized
	MaxDrawdown float64 // <= 0
	Sharpe      float64
	// RiskFree is set when the series carries no risk and its risk metrics were
	// not computed.
	RiskFree bool
}

// CAGR is the constant annual growth rate leading from the first non zero
// value to the last one. Leading zeros are days before any money was invested.
//
// It is 0 for a series spanning no time, or holding only zeros, and NaN when
// the first non zero value is negative.
func CAGR(s *Series) float64 {
	for i := range s.Len() {
		start := s.At(i)
		if start.Value == 0 {
			continue
		}
		to, end := s.Last()
		years := float64(date.DaysBetween(start.Day, to)) / DaysPerYear
		if years == 0 {
			return 0
		}
		if start.Value < 0 {
			return math.NaN()
		}
		return math.Pow(end/start.Value, 1/years) - 1
	}
	return 0
}

// DailyReturns returns the day-over-day percentage changes of s, as fractions.
// Changes from a zero value are undefined and skipped, so there is at most one
// return less than points.
func DailyReturns(s *Series) []float64 {
	if s.Len() < 2 {
		return nil
	}
	returns := make([]float64, 0, s.Len()-1)
	for prev, cur := range s.Steps() {
		if prev.Value == 0 {
			continue
		}
		returns = append(returns, (cur.Value-prev.Value)/prev.Value)
	}
	return returns
}

// steadyGrowth reports whether every defined day-over-day growth factor of s
// is the same, up to floating point rounding.
func steadyGrowth(s *Series) bool {
	lo, hi := math.Inf(1), math.Inf(-1)
	for prev, cur := range s.Steps() {
		if prev.Value == 0 {
			continue
		}
		g := cur.Value / prev.Value
		lo, hi = min(lo, g), max(hi, g)
	}
	if lo > hi {
		return true
	}
	ulp := math.Nextafter(math.Abs(hi), math.Inf(1)) - math.Abs(hi)
	return hi-lo <= roundingUlps*ulp
}

// stdDev is the sample standard deviation. Less than two samples have no dispersion.
func stdDev(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	mean := 0.0
	for _, x := range samples {
		mean += x
	}
	mean /= float64(len(samples))
	variance := 0.0
	for _, x := range samples {
		variance += (x - mean) * (x - mean)
	}
	return math.Sqrt(variance / float64(len(samples)-1))
}

// AnnualizedVolatility is the standard deviation of daily returns scaled to a year.
// A series growing at a steady rate has none.
func AnnualizedVolatility(s *Series) float64 {
	if steadyGrowth(s) {
		return 0
	}
	return stdDev(DailyReturns(s)) * math.Sqrt(TradingDaysPerYear)
}

// Drawdowns returns, for every day, the fractional decline from the highest
// value seen so far. Days where that peak is zero are omitted.
func Drawdowns(s *Series) *Series {
	dd := &Series{name: s.name + " drawdown"}
	peak := math.Inf(-1)
	for on, v := range s.Points() {
		peak = max(peak, v)
		if peak == 0 {
			continue
		}
		dd.append(on, (v-peak)/peak)
	}
	return dd
}

// MaxDrawdown is the deepest drawdown of s. It is never positive.
func MaxDrawdown(s *Series) float64 {
	worst := 0.0
	for _, d := range Drawdowns(s).Points() {
		worst = min(worst, d)
	}
	return worst
}

// SharpeRatio is the excess annual growth over riskFreeRate per unit of
// annualized volatility. It is +Inf for a series without volatility.
func SharpeRatio(s *Series, riskFreeRate float64) float64 {
	vol := AnnualizedVolatility(s)
	if vol == 0 {
		return math.Inf(1)
	}
	return (CAGR(s) - riskFreeRate) / vol
}

// IsRiskFree reports whether s carries no risk: either it was produced by a
// deterministic simulation, or it grows at a steady rate.
func IsRiskFree(s *Series) bool {
	return s.deterministic || steadyGrowth(s)
}

// ComputeMetrics computes all metrics of s. riskFreeRate is only used by the
// Sharpe ratio of series carrying risk.
//
// Risk free series report no volatility, no drawdown and an infinite Sharpe ratio.
func ComputeMetrics(s *Series, riskFreeRate float64) Metrics {
	_, final := s.Last()
	m := Metrics{
		FinalValue: final,
		CAGR:       CAGR(s),
	}
	if IsRiskFree(s) {
		m.RiskFree = true
		m.Sharpe = math.Inf(1)
		return m
	}
	m.Volatility = AnnualizedVolatility(s)
	m.MaxDrawdown = MaxDrawdown(s)
	m.Sharpe = SharpeRatio(s, riskFreeRate)
	return m
}
