package eodhd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gmonteiro13/simulador-investimentos/date"
	"github.com/gmonteiro13/simulador-investimentos/webclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mcd = `[
	{"date":"2024-02-12","open":290.1,"close":292.0,"adjusted_close":289.5,"volume":100},
	{"date":"2024-02-13","open":291.2,"close":290.0,"adjusted_close":287.5,"volume":100},
	{"date":"2024-02-14","open":289.9,"close":293.0,"volume":100}
]`

func server(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "demo", r.URL.Query().Get("api_token"))
		assert.Equal(t, "json", r.URL.Query().Get("fmt"))
		switch r.URL.Path {
		case "/api/eod/MCD.US":
			w.Write([]byte(mcd))
		case "/api/eod/EMPTY.US":
			w.Write([]byte(`[]`))
		default:
			http.Error(w, "Ticker Not Found.", http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return &Client{APIKey: "demo", BaseURL: srv.URL, Web: webclient.New(srv.Client(), webclient.Settings{Name: "test"})}
}

func TestClient_History(t *testing.T) {
	c := server(t)
	h, err := c.History(context.Background(), "MCD.US", date.New(2024, 2, 12), date.New(2024, 2, 14))
	require.NoError(t, err)
	require.Equal(t, 3, h.Len())
	assert.Equal(t, 289.5, h.At(0).Value)
	// falls back to close without an adjusted close
	assert.Equal(t, 293.0, h.At(2).Value)
}

func TestClient_FetchPrices(t *testing.T) {
	c := server(t)
	prices, err := c.FetchPrices(context.Background(), []string{"MCD.US"}, date.New(2024, 2, 13), date.New(2024, 2, 14))
	require.NoError(t, err)
	assert.Equal(t, 2, prices.Len())

	for _, tickers := range [][]string{{"MCD.US", "NOPE.US"}, {"EMPTY.US"}} {
		prices, err := c.FetchPrices(context.Background(), tickers, date.New(2024, 2, 12), date.New(2024, 2, 14))
		require.NoError(t, err)
		assert.True(t, prices.Empty(), "FetchPrices(%v) must be empty", tickers)
	}
}
