// Package store keeps the history of comparison runs in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	simulator "github.com/gmonteiro13/simulador-investimentos"
	"github.com/gmonteiro13/simulador-investimentos/date"
	"github.com/google/uuid"
	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned for an unknown run or scenario.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs(
	id TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	tickers TEXT NOT NULL,
	weights TEXT NOT NULL,
	start_day TEXT NOT NULL,
	end_day TEXT NOT NULL,
	initial_capital REAL NOT NULL,
	monthly_contribution REAL NOT NULL,
	monthly_rate REAL NOT NULL,
	interest_final REAL, interest_cagr REAL,
	portfolio_final REAL, portfolio_cagr REAL,
	portfolio_volatility REAL, portfolio_drawdown REAL, portfolio_sharpe REAL
);
CREATE TABLE IF NOT EXISTS points(
	run_id TEXT NOT NULL REFERENCES runs(id),
	scenario TEXT NOT NULL,
	day TEXT NOT NULL,
	value REAL,
	PRIMARY KEY(run_id, scenario, day)
);`

// Run is a saved comparison.
type Run struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Scenario  simulator.Scenario
	Interest  simulator.Metrics
	Portfolio simulator.Metrics
}

// Store persists runs.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens, or creates, the database at dsn (a file path or ":memory:").
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// each connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot initialize %s: %w", dsn, err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Save records a comparison with both series.
func (s *Store) Save(ctx context.Context, c *simulator.Comparison) (Run, error) {
	run := Run{
		ID:        uuid.New(),
		CreatedAt: s.now().UTC().Truncate(time.Second),
		Scenario:  c.Scenario,
		Interest:  c.InterestMetrics,
		Portfolio: c.PortfolioMetrics,
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, err
	}
	defer tx.Rollback()

	sc := run.Scenario
	_, err = tx.ExecContext(ctx, `INSERT INTO runs(id, created_at, tickers, weights, start_day, end_day,
		initial_capital, monthly_contribution, monthly_rate,
		interest_final, interest_cagr,
		portfolio_final, portfolio_cagr, portfolio_volatility, portfolio_drawdown, portfolio_sharpe)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID.String(), run.CreatedAt.Unix(), strings.Join(sc.Tickers, ","), joinFloats(sc.Weights),
		sc.From.String(), sc.To.String(),
		sc.InitialCapital, sc.MonthlyContribution, sc.MonthlyRate,
		nullable(run.Interest.FinalValue), nullable(run.Interest.CAGR),
		nullable(run.Portfolio.FinalValue), nullable(run.Portfolio.CAGR), nullable(run.Portfolio.Volatility),
		nullable(run.Portfolio.MaxDrawdown), nullable(run.Portfolio.Sharpe),
	)
	if err != nil {
		return Run{}, fmt.Errorf("cannot save run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO points(run_id, scenario, day, value) VALUES(?,?,?,?)`)
	if err != nil {
		return Run{}, err
	}
	defer stmt.Close()
	for _, series := range []*simulator.Series{c.Interest, c.Portfolio} {
		for on, v := range series.Points() {
			if _, err := stmt.ExecContext(ctx, run.ID.String(), series.Name(), on.String(), nullable(v)); err != nil {
				return Run{}, fmt.Errorf("cannot save %s: %w", series.Name(), err)
			}
		}
	}
	return run, tx.Commit()
}

const selectRuns = `SELECT id, created_at, tickers, weights, start_day, end_day,
	initial_capital, monthly_contribution, monthly_rate,
	interest_final, interest_cagr,
	portfolio_final, portfolio_cagr, portfolio_volatility, portfolio_drawdown, portfolio_sharpe
	FROM runs`

// List returns the latest runs first, at most limit of them (all when limit <= 0).
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := selectRuns + " ORDER BY created_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns a single run.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, selectRuns+" WHERE id=?", id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return run, err
}

// Series loads the series named scenario of a run.
func (s *Store) Series(ctx context.Context, id uuid.UUID, scenario string) (*simulator.Series, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT day, value FROM points WHERE run_id=? AND scenario=? ORDER BY day ASC`, id.String(), scenario)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []date.Date
	var values []float64
	for rows.Next() {
		var day string
		var v sql.NullFloat64
		if err := rows.Scan(&day, &v); err != nil {
			return nil, err
		}
		on, err := date.Parse(day)
		if err != nil {
			return nil, err
		}
		days = append(days, on)
		values = append(values, fromReal(v))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("run %s scenario %q: %w", id, scenario, ErrNotFound)
	}
	if scenario == simulator.InterestSeriesName {
		return simulator.NewInterestSeries(days, values)
	}
	return simulator.NewSeries(scenario, days, values)
}

type scanner interface{ Scan(dest ...any) error }

func scanRun(row scanner) (Run, error) {
	var (
		run                  Run
		id, tickers, weights string
		start, end           string
		createdAt            int64
		iFinal, iCAGR        sql.NullFloat64
		pFinal, pCAGR, pVol  sql.NullFloat64
		pDrawdown, pSharpe   sql.NullFloat64
	)
	sc := &run.Scenario
	err := row.Scan(&id, &createdAt, &tickers, &weights, &start, &end,
		&sc.InitialCapital, &sc.MonthlyContribution, &sc.MonthlyRate,
		&iFinal, &iCAGR, &pFinal, &pCAGR, &pVol, &pDrawdown, &pSharpe)
	if err != nil {
		return Run{}, err
	}
	if run.ID, err = uuid.Parse(id); err != nil {
		return Run{}, err
	}
	run.CreatedAt = time.Unix(createdAt, 0).UTC()
	sc.Tickers = strings.Split(tickers, ",")
	if sc.Weights, err = splitFloats(weights); err != nil {
		return Run{}, err
	}
	if sc.From, err = date.Parse(start); err != nil {
		return Run{}, err
	}
	if sc.To, err = date.Parse(end); err != nil {
		return Run{}, err
	}
	// the interest scenario is risk free by construction
	run.Interest = simulator.Metrics{FinalValue: fromReal(iFinal), CAGR: fromReal(iCAGR), Sharpe: math.Inf(1), RiskFree: true}
	run.Portfolio = simulator.Metrics{
		FinalValue:  fromReal(pFinal),
		CAGR:        fromReal(pCAGR),
		Volatility:  fromReal(pVol),
		MaxDrawdown: fromReal(pDrawdown),
		Sharpe:      fromReal(pSharpe),
	}
	run.Portfolio.RiskFree = run.Portfolio.Volatility == 0
	return run, nil
}

// nullable maps NaN to NULL.
func nullable(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func fromReal(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func joinFloats(values []float64) string {
	items := make([]string, len(values))
	for i, v := range values {
		items[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(items, ",")
}

func splitFloats(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	items := strings.Split(s, ",")
	values := make([]float64, len(items))
	for i, item := range items {
		v, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
