package date

import "fmt"

// Period is a calendar period used to bucket dates (cache expiry, reporting).
type Period int

const (
	Daily Period = iota
	Monthly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// StartOf returns the first day of the period containing d.
func (d Date) StartOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Monthly:
		return New(d.y, d.m, 1)
	case Yearly:
		return New(d.y, 1, 1)
	default:
		panic("unknown period")
	}
}

// EndOf returns the last day of the period containing d.
func (d Date) EndOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Monthly:
		return New(d.y, d.m+1, 0)
	case Yearly:
		return New(d.y+1, 1, 0)
	default:
		panic("unknown period")
	}
}
