package simulator

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gmonteiro13/simulador-investimentos/date"
)

func TestNewPriceTable_UnionOfDates(t *testing.T) {
	prices := table(t, []string{"A", "B"},
		[]any{"2021-01-05", 2.0, math.NaN()},
		[]any{"2021-01-04", 1.0, 10.0},
		[]any{"2021-01-06", math.NaN(), 12.0},
	)
	want := []date.Date{d("2021-01-04"), d("2021-01-05"), d("2021-01-06")}
	if got := prices.Days(); !slices.Equal(got, want) {
		t.Errorf("Days() = %v, want %v", got, want)
	}
	if got := prices.Missing(); got != 2 {
		t.Errorf("Missing() = %v, want 2", got)
	}
}

func TestPriceTable_FillGaps(t *testing.T) {
	prices := table(t, []string{"A", "B"},
		[]any{"2021-01-04", math.NaN(), 10.0},
		[]any{"2021-01-05", 2.0, math.NaN()},
		[]any{"2021-01-06", math.NaN(), 12.0},
	)
	if err := prices.FillGaps(); err != nil {
		t.Fatalf("FillGaps() error = %v", err)
	}
	want := [][]float64{{2, 10}, {2, 10}, {2, 12}}
	for i, row := range want {
		for j, w := range row {
			if got := prices.Price(i, j); got != w {
				t.Errorf("Price(%d, %d) = %v, want %v", i, j, got, w)
			}
		}
	}
}

func TestPriceTable_FillGaps_NoPrice(t *testing.T) {
	prices := NewPriceTable([]string{"A", "B"}, map[string]*date.History[float64]{
		"A": new(date.History[float64]).Append(d("2021-01-04"), 1),
	})
	if err := prices.FillGaps(); !errors.Is(err, ErrMissingPrices) {
		t.Errorf("FillGaps() error = %v, want %v", err, ErrMissingPrices)
	}
}

func TestPriceTable_Restrict(t *testing.T) {
	prices := table(t, []string{"A"},
		[]any{"2021-01-04", 1.0},
		[]any{"2021-01-05", 2.0},
		[]any{"2021-01-06", 3.0},
	)
	r := prices.Restrict(d("2021-01-05"), d("2021-01-10"))
	if r.Len() != 2 || r.Price(0, 0) != 2 {
		t.Errorf("Restrict() = %v, want the last two days", r.Days())
	}
	if !prices.Restrict(d("2022-01-01"), d("2022-01-10")).Empty() {
		t.Errorf("Restrict(out of range).Empty() = false, want true")
	}
}

func TestPriceTableCSV(t *testing.T) {
	prices := table(t, []string{"A", "B"},
		[]any{"2021-01-04", 1.5, 10.0},
		[]any{"2021-01-05", 2.25, math.NaN()},
	)
	var buf bytes.Buffer
	if err := WritePriceTableCSV(&buf, prices); err != nil {
		t.Fatalf("WritePriceTableCSV() error = %v", err)
	}
	want := "date,A,B\n2021-01-04,1.5,10\n2021-01-05,2.25,\n"
	if got := buf.String(); got != want {
		t.Errorf("WritePriceTableCSV() = %q, want %q", got, want)
	}

	read, err := ReadPriceTableCSV(&buf)
	if err != nil {
		t.Fatalf("ReadPriceTableCSV() error = %v", err)
	}
	if got := read.Tickers(); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("ReadPriceTableCSV().Tickers() = %v", got)
	}
	if read.Len() != 2 || read.Price(1, 0) != 2.25 || !math.IsNaN(read.Price(1, 1)) {
		t.Errorf("ReadPriceTableCSV() lost prices")
	}
}

func TestCSVProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	content := "date,A,B\n2021-01-04,1,10\n2021-01-05,,11\n2021-01-06,3,\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	p := CSVProvider{Path: path}

	got, err := p.FetchPrices(context.Background(), []string{"B", "A"}, d("2021-01-05"), d("2021-01-06"))
	if err != nil {
		t.Fatalf("FetchPrices() error = %v", err)
	}
	if got.Len() != 2 || got.Missing() != 0 {
		t.Fatalf("FetchPrices() = %d days with %d gaps, want 2 days and none", got.Len(), got.Missing())
	}
	// columns follow the requested order, gaps use the last known price
	if got.Price(0, 0) != 11 || got.Price(0, 1) != 1 || got.Price(1, 0) != 11 {
		t.Errorf("FetchPrices() rows = %v %v", got.rows[0], got.rows[1])
	}

	unknown, err := p.FetchPrices(context.Background(), []string{"C"}, d("2021-01-04"), d("2021-01-06"))
	if err != nil || !unknown.Empty() {
		t.Errorf("FetchPrices(unknown) = %v, %v, want an empty table", unknown, err)
	}
}
