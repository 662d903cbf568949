package simulator

import (
	"fmt"
	"iter"
	"math"

	"github.com/gmonteiro13/simulador-investimentos/date"
)

// Point is a dated value of a Series.
type Point = date.Point[float64]

// Series is a named, chronological sequence of values, one per simulated day.
//
// A Series is produced once by a simulator and is read-only afterward.
type Series struct {
	name string
	// deterministic series carry no market risk by construction.
	deterministic bool
	history       date.History[float64]
}

// NewSeries builds a Series from parallel slices of days and values.
// Days must be strictly increasing.
func NewSeries(name string, days []date.Date, values []float64) (*Series, error) {
	if len(days) != len(values) {
		return nil, fmt.Errorf("series %q has %d days for %d values", name, len(days), len(values))
	}
	if !date.IsIncreasing(days) {
		return nil, fmt.Errorf("series %q: %w", name, ErrUnorderedDates)
	}
	s := &Series{name: name}
	for i, on := range days {
		s.history.Append(on, values[i])
	}
	return s, nil
}

// NewInterestSeries is NewSeries for values computed by SimulateInterest,
// typically read back from storage. The series is named InterestSeriesName
// and is deterministic.
func NewInterestSeries(days []date.Date, values []float64) (*Series, error) {
	s, err := NewSeries(InterestSeriesName, days, values)
	if err != nil {
		return nil, err
	}
	s.deterministic = true
	return s, nil
}

// Name returns the display name of the series.
func (s *Series) Name() string { return s.name }

// Len returns the number of points.
func (s *Series) Len() int { return s.history.Len() }

// Deterministic reports whether the series was produced without market returns.
func (s *Series) Deterministic() bool { return s.deterministic }

// First returns the first point. Zero values for an empty series.
func (s *Series) First() (date.Date, float64) { return s.history.First() }

// Last returns the last point. Zero values for an empty series.
func (s *Series) Last() (date.Date, float64) { return s.history.Latest() }

// At returns the i-th point.
func (s *Series) At(i int) Point { return s.history.At(i) }

// Value returns the value on a given day.
func (s *Series) Value(on date.Date) (float64, bool) { return s.history.Get(on) }

// Days returns a copy of the series dates.
func (s *Series) Days() []date.Date { return s.history.Days() }

// Values returns a copy of the series values.
func (s *Series) Values() []float64 {
	values := make([]float64, 0, s.Len())
	for _, v := range s.history.Values() {
		values = append(values, v)
	}
	return values
}

// Points iterates over (date, value) in chronological order.
func (s *Series) Points() iter.Seq2[date.Date, float64] { return s.history.Values() }

// Steps iterates over consecutive (previous, current) points.
func (s *Series) Steps() iter.Seq2[Point, Point] { return s.history.Steps() }

// Identical reports whether both series have the same name, dates and
// bit-for-bit identical values.
func (s *Series) Identical(o *Series) bool {
	if s.name != o.name || s.Len() != o.Len() || s.deterministic != o.deterministic {
		return false
	}
	for i := range s.Len() {
		a, b := s.At(i), o.At(i)
		if a.Day != b.Day || math.Float64bits(a.Value) != math.Float64bits(b.Value) {
			return false
		}
	}
	return true
}

func (s *Series) String() string {
	if s.Len() == 0 {
		return fmt.Sprintf("%s: empty", s.name)
	}
	from, first := s.First()
	to, last := s.Last()
	return fmt.Sprintf("%s: %d points from %s (%.2f) to %s (%.2f)", s.name, s.Len(), from, first, to, last)
}

// append is reserved to simulators, values are appended in chronological order.
func (s *Series) append(on date.Date, value float64) { s.history.Append(on, value) }
