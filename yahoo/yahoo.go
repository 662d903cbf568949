// Package yahoo provides daily adjusted close prices from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	simulator "github.com/gmonteiro13/simulador-investimentos"
	"github.com/gmonteiro13/simulador-investimentos/date"
	"github.com/gmonteiro13/simulador-investimentos/webclient"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the Yahoo Finance API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches prices from Yahoo Finance. It implements simulator.PriceProvider.
type Client struct {
	Web     *webclient.Client
	BaseURL string
}

// New returns a Client with a daily disk cache in cacheDir (os.TempDir() when
// empty), paced at two requests per second.
func New(cacheDir string) *Client {
	return &Client{
		Web: webclient.New(webclient.Daily(cacheDir), webclient.Settings{
			Name:       "yahoo",
			RPS:        2,
			Burst:      2,
			MaxElapsed: 30 * time.Second,
		}),
		BaseURL: DefaultBaseURL,
	}
}

// FetchPrices returns the adjusted close of every ticker over [from, to].
//
// When any ticker cannot be fetched, or has no price in the range, the result
// is an empty table: a comparison on partial data would be misleading.
// Only a canceled context is reported as an error.
func (c *Client) FetchPrices(ctx context.Context, tickers []string, from, to date.Date) (*simulator.PriceTable, error) {
	histories := make(map[string]*date.History[float64], len(tickers))
	for _, ticker := range tickers {
		h, err := c.History(ctx, ticker, from, to)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil {
			log.Warn().Err(err).Str("ticker", ticker).Msg("cannot fetch prices")
			return &simulator.PriceTable{}, nil
		}
		if h.Len() == 0 {
			log.Warn().Str("ticker", ticker).Stringer("from", from).Stringer("to", to).Msg("no prices in range")
			return &simulator.PriceTable{}, nil
		}
		histories[ticker] = h
	}
	prices := simulator.NewPriceTable(tickers, histories).Restrict(from, to)
	if err := prices.FillGaps(); err != nil {
		log.Warn().Err(err).Msg("cannot align prices")
		return &simulator.PriceTable{}, nil
	}
	return prices, nil
}

// History returns the daily adjusted close of ticker over [from, to]. Days
// without a price are absent.
func (c *Client) History(ctx context.Context, ticker string, from, to date.Date) (*date.History[float64], error) {
	q := url.Values{}
	q.Set("period1", fmt.Sprint(from.Unix()))
	q.Set("period2", fmt.Sprint(to.Add(1).Unix())) // exclusive
	q.Set("interval", "1d")
	q.Set("events", "div,splits")
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.BaseURL, url.PathEscape(ticker), q.Encode())

	var jobj any
	if err := c.Web.GetJSON(ctx, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error retrieving %q: %w", ticker, err)
	}
	return parseChart(jobj)
}

var errNoResult = errors.New("no chart result")

// parseChart extracts the adjusted closes of a chart payload:
//
//	{"chart": {"result": [{
//	    "meta": {"gmtoffset": -14400, ...},
//	    "timestamp": [1609770600, ...],
//	    "indicators": {
//	        "quote": [{"close": [...], ...}],
//	        "adjclose": [{"adjclose": [...]}]
//	    }
//	}], "error": null}}
//
// Timestamps are market opens, shifted by the exchange offset to get the
// trading day. Null prices are skipped.
func parseChart(jobj any) (*date.History[float64], error) {
	if msg, err := jsonpath.Get("$.chart.error.description", jobj); err == nil && msg != nil {
		return nil, fmt.Errorf("%v", msg)
	}
	timestamps, err := list(jobj, "$.chart.result[0].timestamp")
	if err != nil {
		// no timestamp at all is a valid empty range
		if _, rerr := jsonpath.Get("$.chart.result[0]", jobj); rerr != nil {
			return nil, errNoResult
		}
		return new(date.History[float64]), nil
	}
	closes, err := list(jobj, "$.chart.result[0].indicators.adjclose[0].adjclose")
	if err != nil {
		closes, err = list(jobj, "$.chart.result[0].indicators.quote[0].close")
		if err != nil {
			return nil, fmt.Errorf("no close prices: %w", err)
		}
	}
	if len(closes) != len(timestamps) {
		return nil, fmt.Errorf("%d prices for %d timestamps", len(closes), len(timestamps))
	}
	offset := 0.0
	if v, err := jsonpath.Get("$.chart.result[0].meta.gmtoffset", jobj); err == nil {
		offset, _ = v.(float64)
	}

	h := new(date.History[float64])
	for i, ts := range timestamps {
		sec, ok := ts.(float64)
		if !ok {
			continue
		}
		price, ok := closes[i].(float64)
		if !ok || math.IsNaN(price) {
			continue
		}
		on := date.FromTime(time.Unix(int64(sec+offset), 0).UTC())
		h.Append(on, price)
	}
	return h, nil
}

func list(jobj any, path string) ([]any, error) {
	v, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, err
	}
	l, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s is not a list: %v", path, v)
	}
	return l, nil
}
