// Package date implements day-granularity dates, business-day calendars and
// chronological value histories used by the simulators.
package date

import (
	"encoding/json"
	"fmt"
	"iter"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// Format is the format used to represent dates as strings in ISO-8601 format.
const Format = "2006-01-02" // write date format

const Day = 24 * time.Hour

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// FromTime returns the Date of t in t's own location.
func FromTime(t time.Time) Date { return New(t.Date()) }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Unix returns the date at midnight UTC as a Unix timestamp.
func (d Date) Unix() int64 { return d.time().Unix() }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// DaysInMonth returns the number of calendar days in the month containing d.
func (d Date) DaysInMonth() int { return New(d.y, d.m+1, 0).Day() }

// SameMonth reports whether d and x fall in the same calendar month.
func (d Date) SameMonth(x Date) bool { return d.y == x.y && d.m == x.m }

// IsBusinessDay reports whether d is a weekday. Holidays are not taken into account.
func (d Date) IsBusinessDay() bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// Format returns a textual representation of the date formatted according to layout.
//
//	See the documentation for the [time.Format].
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(Format) }

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// DaysBetween returns the number of calendar days from 'from' to 'to'.
// It is negative when 'to' is before 'from'.
func DaysBetween(from, to Date) int {
	return int(to.time().Sub(from.time()) / Day)
}

// Parse parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	// We use a slightly more permisive format for read, to support 2025-7-1 instead of 2025-07-01
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// BusinessDays returns every business day between from and to, both included.
func BusinessDays(from, to Date) []Date {
	var days []Date
	for d := range (Range{From: from, To: to}).BusinessDays() {
		days = append(days, d)
	}
	return days
}

// Pairs returns an iterator over consecutive (previous, current) dates.
// It yields nothing when there are less than two dates.
func Pairs(days []Date) iter.Seq2[Date, Date] {
	return func(yield func(Date, Date) bool) {
		for i := 1; i < len(days); i++ {
			if !yield(days[i-1], days[i]) {
				return
			}
		}
	}
}

// IsIncreasing reports whether days are strictly increasing.
func IsIncreasing(days []Date) bool {
	for prev, cur := range Pairs(days) {
		if !prev.Before(cur) {
			return false
		}
	}
	return true
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := Parse(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// iterate returns an iterator over all unique, sorted dates from multiple series of dates.
func iterate(series ...[]Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		indexes := make([]int, len(series))
		// find the reached mins
		times := make([]Date, 0, len(series))
		for {
			times = times[:0] //empty the slice again
			for i, index := range indexes {
				if index < len(series[i]) {
					times = append(times, series[i][index])
				}
			}
			if len(times) == 0 {
				// All timeseries have been consumed, exit.
				return
			}
			m := times[0]
			for _, t := range times {
				if t.Before(m) {
					m = t
				}
			}
			// now extract the ones that are equals to the min
			for i, index := range indexes {
				if index >= len(series[i]) {
					continue
				}
				if on := series[i][index]; on == m {
					indexes[i]++
				}
			}
			if !yield(m) {
				return
			}
		}
	}
}

// Iterate returns an iterator over all unique, sorted dates from multiple History objects.
func Iterate[T Value](histories ...*History[T]) iter.Seq[Date] {
	dates := make([][]Date, 0, len(histories))
	for _, h := range histories {
		dates = append(dates, h.days)
	}
	return iterate(dates...)
}
