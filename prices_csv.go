package simulator

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/gmonteiro13/simulador-investimentos/date"
)

// WritePriceTableCSV writes the table with a "date,TICKER..." header and one
// row per date. Missing prices are written as empty cells.
func WritePriceTableCSV(w io.Writer, t *PriceTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"date"}, t.tickers...)); err != nil {
		return err
	}
	record := make([]string, len(t.tickers)+1)
	for i, on := range t.days {
		record[0] = on.String()
		for j, v := range t.rows[i] {
			record[j+1] = ""
			if !math.IsNaN(v) {
				record[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadPriceTableCSV reads a table written by WritePriceTableCSV. Rows may come
// in any order, empty cells are missing prices.
func ReadPriceTableCSV(r io.Reader) (*PriceTable, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &PriceTable{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("header %q has no ticker column", header)
	}
	tickers := header[1:]
	histories := make(map[string]*date.History[float64], len(tickers))
	for _, ticker := range tickers {
		histories[ticker] = new(date.History[float64])
	}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		on, err := date.Parse(record[0])
		if err != nil {
			return nil, err
		}
		for j, cell := range record[1:] {
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s on %s: %w", tickers[j], on, err)
			}
			histories[tickers[j]].Append(on, v)
		}
	}
	return NewPriceTable(tickers, histories), nil
}

// CSVProvider serves prices from a file written by WritePriceTableCSV, for
// offline and reproducible runs.
type CSVProvider struct {
	Path string
}

// FetchPrices selects the requested tickers over [from, to] and fills gaps.
// Unknown tickers, or a range without prices, yield an empty table.
func (p CSVProvider) FetchPrices(ctx context.Context, tickers []string, from, to date.Date) (*PriceTable, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	all, err := ReadPriceTableCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.Path, err)
	}

	histories := make(map[string]*date.History[float64], len(tickers))
	for _, ticker := range tickers {
		h, ok := all.Column(ticker)
		if !ok || h.Len() == 0 {
			return &PriceTable{}, nil
		}
		histories[ticker] = h
	}
	t := NewPriceTable(tickers, histories)
	if err := t.FillGaps(); err != nil {
		return nil, err
	}
	return t.Restrict(from, to), nil
}
