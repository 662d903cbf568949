package simulator

import (
	"math"
	"sync"
	"testing"

	"github.com/gmonteiro13/simulador-investimentos/date"
)

// d is a helper for test to create dates from const.
func d(s string) date.Date { return date.MustParse(s) }

// table is a helper building a price table from rows of "date", prices...
// A NaN price is a missing cell.
func table(t *testing.T, tickers []string, rows ...[]any) *PriceTable {
	t.Helper()
	histories := make(map[string]*date.History[float64])
	for _, ticker := range tickers {
		histories[ticker] = new(date.History[float64])
	}
	for _, row := range rows {
		on := d(row[0].(string))
		for j, p := range row[1:] {
			v := p.(float64)
			if math.IsNaN(v) {
				continue
			}
			histories[tickers[j]].Append(on, v)
		}
	}
	return NewPriceTable(tickers, histories)
}

// series is a helper building a Series with one value per consecutive day from 'from'.
func series(t *testing.T, from string, values ...float64) *Series {
	t.Helper()
	days := make([]date.Date, len(values))
	for i := range values {
		days[i] = d(from).Add(i)
	}
	s, err := NewSeries("test", days, values)
	if err != nil {
		t.Fatalf("NewSeries() error = %v", err)
	}
	return s
}

func near(a, b, tolerance float64) bool { return math.Abs(a-b) <= tolerance }

// recorder is an Observer keeping every event.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Observe(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) count(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
