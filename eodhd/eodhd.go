// Package eodhd provides daily adjusted close prices from eodhd.com.
//
// An API key is required, the "demo" key only serves a few US tickers (e.g.
// MCD.US). Responses are cached on disk for the day.
package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"time"

	simulator "github.com/gmonteiro13/simulador-investimentos"
	"github.com/gmonteiro13/simulador-investimentos/date"
	"github.com/gmonteiro13/simulador-investimentos/webclient"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the eodhd.com API host.
const DefaultBaseURL = "https://eodhd.com"

// Client fetches prices from eodhd.com. It implements simulator.PriceProvider.
type Client struct {
	APIKey  string
	BaseURL string
	Web     *webclient.Client
}

// New returns a Client with a daily disk cache in cacheDir.
func New(apiKey, cacheDir string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		Web: webclient.New(webclient.Daily(cacheDir), webclient.Settings{
			Name:       "eodhd",
			RPS:        5,
			Burst:      5,
			MaxElapsed: 30 * time.Second,
		}),
	}
}

// eod is one item of the /api/eod payload:
//
//	{
//		"date": "2024-02-13",
//		"open": 675.066,
//		"high": 684.219,
//		"low": 648.659,
//		"close": 668.445,
//		"adjusted_close": 67.705,
//		"volume": 0
//	}
type eod struct {
	Date          date.Date        `json:"date"`
	Close         decimal.Decimal  `json:"close"`
	AdjustedClose *decimal.Decimal `json:"adjusted_close"`
}

// History returns the daily adjusted close of ticker ("SYMBOL.EXCHANGE") over
// [from, to], bounds included.
func (c *Client) History(ctx context.Context, ticker string, from, to date.Date) (*date.History[float64], error) {
	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("api_token", c.APIKey)
	q.Set("from", from.String())
	q.Set("to", to.String())
	addr := fmt.Sprintf("%s/api/eod/%s?%s", c.BaseURL, url.PathEscape(ticker), q.Encode())

	content := make([]eod, 0)
	if err := c.Web.GetJSON(ctx, addr, &content); err != nil {
		return nil, fmt.Errorf("error retrieving %q: %w", ticker, err)
	}
	h := new(date.History[float64])
	for _, info := range content {
		price := info.Close
		if info.AdjustedClose != nil {
			price = *info.AdjustedClose
		}
		h.Append(info.Date, price.InexactFloat64())
	}
	return h, nil
}

// FetchPrices returns the adjusted close of every ticker over [from, to].
//
// When any ticker cannot be fetched, or has no price in the range, the result
// is an empty table. Only a canceled context is reported as an error.
func (c *Client) FetchPrices(ctx context.Context, tickers []string, from, to date.Date) (*simulator.PriceTable, error) {
	histories := make(map[string]*date.History[float64], len(tickers))
	for _, ticker := range tickers {
		h, err := c.History(ctx, ticker, from, to)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil || h.Len() == 0 {
			log.Warn().Err(err).Str("ticker", ticker).Msg("no prices")
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
