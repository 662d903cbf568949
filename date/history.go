package date

import (
	"iter"
	"slices"
	"sort"
)

// Value is the set of types a History can hold.
type Value interface {
	float32 | float64 | string
}

// Point is a single dated value of a History.
type Point[T Value] struct {
	Day   Date
	Value T
}

// History stores a chronological series of values, each associated with a specific date.
// It ensures that dates are unique and the series is always sorted.
type History[T Value] struct {
	days   []Date
	values []T
}

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, *new(T) // return zero value of T
	}
	return h.days[last], h.values[last]
}

// First returns the earliest date and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) First() (day Date, value T) {
	if len(h.days) == 0 {
		return Date{}, *new(T)
	}
	return h.days[0], h.values[0]
}

// At returns the i-th point in chronological order.
func (h *History[T]) At(i int) Point[T] { return Point[T]{h.days[i], h.values[i]} }

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// chronological is a private implementation to make this history chronologically sorted.
type chronological[T Value] struct{ *History[T] }

func (s chronological[T]) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }

func (s chronological[T]) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// sort sorts the history in chronological order.
func (h *History[T]) sort() { sort.Sort(chronological[T]{h}) }

// Append adds a point to the history.
//
// Existing value at that date are overwritten.
func (h *History[T]) Append(on Date, q T) *History[T] {
	if n := len(h.days); n == 0 || h.days[n-1].Before(on) {
		// Chronological appends are the common case.
		h.days, h.values = append(h.days, on), append(h.values, q)
		return h
	}
	if i := slices.Index(h.days, on); i >= 0 {
		// Found a point at that exact same instant.
		// We choose to replace, because it will give higher priority to the last data
		h.values[i] = q
		return h
	}
	h.days, h.values = append(h.days, on), append(h.values, q)
	h.sort()
	return h
}

// Days returns a copy of the dates in the history.
func (h *History[T]) Days() []Date { return slices.Clone(h.days) }

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Steps returns an iterator over consecutive (previous, current) points.
func (h *History[T]) Steps() iter.Seq2[Point[T], Point[T]] {
	return func(yield func(Point[T], Point[T]) bool) {
		for i := 1; i < len(h.days); i++ {
			if !yield(h.At(i-1), h.At(i)) {
				return
			}
		}
	}
}

// Get returns the value at 'day' and true or zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	// The days slice is sorted, so we can use binary search.
	i, found := slices.BinarySearchFunc(h.days, day, func(d, t Date) int {
		switch {
		case d.After(t):
			return 1
		case d.Before(t):
			return -1
		}
		return 0
	})
	if !found {
		var zero T
		return zero, false
	}
	return h.values[i], true
}
