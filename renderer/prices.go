package renderer

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	simulator "github.com/gmonteiro13/simulador-investimentos"
	md "github.com/nao1215/markdown"
)

// PriceTableMarkdown renders the prices of t, the first limit days only when limit > 0.
func PriceTableMarkdown(t *simulator.PriceTable, limit int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Prices")
	if t.Empty() {
		doc.PlainText("No price data.")
		return doc.String()
	}
	doc.PlainText(fmt.Sprintf("%d days from %s to %s.", t.Len(), t.Day(0), t.Day(t.Len()-1)))

	n := t.Len()
	if limit > 0 {
		n = min(n, limit)
	}
	rows := make([][]string, n)
	for i := range n {
		row := []string{t.Day(i).String()}
		for j := range t.Tickers() {
			row = append(row, price(t.Price(i, j)))
		}
		rows[i] = row
	}
	doc.Table(md.TableSet{
		Header: append([]string{"Date"}, t.Tickers()...),
		Rows:   rows,
	})
	if n < t.Len() {
		doc.PlainText(fmt.Sprintf("... and %d more days.", t.Len()-n))
	}
	return doc.String()
}

func price(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
