package simulator

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/gmonteiro13/simulador-investimentos/date"
)

// PriceTable holds one price per ticker for each date of a chronological index.
//
// Missing prices are NaN until FillGaps is called. A PriceTable is owned by the
// caller, simulators only read it.
type PriceTable struct {
	tickers []string
	days    []date.Date
	rows    [][]float64 // rows[day][ticker]
}

// NewPriceTable aligns per-ticker price histories on the union of their dates.
// Tickers keep the given order; a ticker absent from prices has only missing values.
func NewPriceTable(tickers []string, prices map[string]*date.History[float64]) *PriceTable {
	histories := make([]*date.History[float64], 0, len(tickers))
	for _, ticker := range tickers {
		if h, ok := prices[ticker]; ok && h != nil {
			histories = append(histories, h)
		}
	}

	t := &PriceTable{tickers: slices.Clone(tickers)}
	for on := range date.Iterate(histories...) {
		row := make([]float64, len(tickers))
		for j, ticker := range tickers {
			row[j] = math.NaN()
			if h, ok := prices[ticker]; ok && h != nil {
				if v, ok := h.Get(on); ok {
					row[j] = v
				}
			}
		}
		t.days = append(t.days, on)
		t.rows = append(t.rows, row)
	}
	return t
}

// Tickers returns the table columns in order.
func (t *PriceTable) Tickers() []string { return slices.Clone(t.tickers) }

// Days returns a copy of the table's date index.
func (t *PriceTable) Days() []date.Date { return slices.Clone(t.days) }

// Len returns the number of dates.
func (t *PriceTable) Len() int { return len(t.days) }

// Empty reports whether the table has no dates or no tickers.
func (t *PriceTable) Empty() bool { return t == nil || len(t.days) == 0 || len(t.tickers) == 0 }

// Day returns the i-th date of the index.
func (t *PriceTable) Day(i int) date.Date { return t.days[i] }

// Price returns the price of the j-th ticker on the i-th date.
func (t *PriceTable) Price(i, j int) float64 { return t.rows[i][j] }

// PriceRow is the prices of all tickers on one day, in ticker order.
type PriceRow struct {
	Day    date.Date
	Prices []float64
}

// Steps iterates over consecutive (previous, current) rows. Rows share the
// table memory and must not be modified.
func (t *PriceTable) Steps() iter.Seq2[PriceRow, PriceRow] {
	return func(yield func(PriceRow, PriceRow) bool) {
		for i := 1; i < len(t.days); i++ {
			if !yield(PriceRow{t.days[i-1], t.rows[i-1]}, PriceRow{t.days[i], t.rows[i]}) {
				return
			}
		}
	}
}

// Column returns the price history of a ticker, missing prices are skipped.
func (t *PriceTable) Column(ticker string) (*date.History[float64], bool) {
	j := slices.Index(t.tickers, ticker)
	if j < 0 {
		return nil, false
	}
	h := new(date.History[float64])
	for i, on := range t.days {
		if v := t.rows[i][j]; !math.IsNaN(v) {
			h.Append(on, v)
		}
	}
	return h, true
}

// Restrict returns a new table with only the dates within [from, to].
func (t *PriceTable) Restrict(from, to date.Date) *PriceTable {
	r := date.Range{From: from, To: to}
	out := &PriceTable{tickers: slices.Clone(t.tickers)}
	for i, on := range t.days {
		if r.Contains(on) {
			out.days = append(out.days, on)
			out.rows = append(out.rows, slices.Clone(t.rows[i]))
		}
	}
	return out
}

// FillGaps replaces missing prices with the last known price of the same ticker,
// then fills leading gaps with the first known price.
//
// A ticker without any price cannot be filled and is reported as ErrMissingPrices.
func (t *PriceTable) FillGaps() error {
	for j, ticker := range t.tickers {
		last := math.NaN()
		for i := range t.rows {
			if math.IsNaN(t.rows[i][j]) {
				t.rows[i][j] = last
				continue
			}
			last = t.rows[i][j]
		}
		if math.IsNaN(last) {
			return fmt.Errorf("ticker %q: %w", ticker, ErrMissingPrices)
		}
		// backward fill of the leading gap
		next := math.NaN()
		for i := len(t.rows) - 1; i >= 0; i-- {
			if math.IsNaN(t.rows[i][j]) {
				t.rows[i][j] = next
				continue
			}
			next = t.rows[i][j]
		}
	}
	return nil
}

// Missing counts the missing prices in the table.
func (t *PriceTable) Missing() int {
	n := 0
	for _, row := range t.rows {
		for _, v := range row {
			if math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}
