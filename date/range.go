package date

import (
	"fmt"
	"iter"
)

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange return the period range containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns an iterator that yields each date within the range.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// BusinessDays returns an iterator that yields each weekday within the range.
func (r Range) BusinessDays() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := range r.Days() {
			if !d.IsBusinessDay() {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// Period returns the period of this range if it's a standard one.
func (r Range) Period() (p Period, ok bool) {
	switch {
	case r.From == r.To:
		return Daily, true
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To:
		return Monthly, true
	case r.From.StartOf(Yearly) == r.From && r.From.EndOf(Yearly) == r.To:
		return Yearly, true
	default:
		return Daily, false
	}
}

// Identifier compute a unique identifier for the Range.
// If the period is defined, use a short insighful name
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}

	switch p {
	case Daily:
		return r.From.String()
	case Monthly:
		return r.From.Format("2006-01")
	case Yearly:
		return r.From.Format("2006")
	default:
		panic("unknown period")
	}
}
