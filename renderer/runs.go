package renderer

import (
	"bytes"
	"strings"

	simulator "github.com/gmonteiro13/simulador-investimentos"
	"github.com/gmonteiro13/simulador-investimentos/store"
	md "github.com/nao1215/markdown"
)

// RunsMarkdown renders a list of saved runs.
func RunsMarkdown(runs []store.Run, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Runs")
	if len(runs) == 0 {
		doc.PlainText("No saved run.")
		return doc.String()
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		s := run.Scenario
		rows = append(rows, []string{
			run.ID.String()[:8],
			run.CreatedAt.Format("2006-01-02 15:04"),
			strings.Join(s.Tickers, ", "),
			s.From.String() + " to " + s.To.String(),
			simulator.FormatAmount(run.Interest.FinalValue, currency),
			simulator.FormatAmount(run.Portfolio.FinalValue, currency),
			simulator.AsPercent(run.Portfolio.CAGR).String(),
			Ratio(run.Portfolio.Sharpe),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Run", "Saved", "Tickers", "Period", "Interest final", "Portfolio final", "Portfolio CAGR", "Sharpe"},
		Rows:   rows,
	})
	return doc.String()
}
