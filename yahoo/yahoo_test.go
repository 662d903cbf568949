package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gmonteiro13/simulador-investimentos/date"
	"github.com/gmonteiro13/simulador-investimentos/webclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2021-01-04, 2021-01-05 and 2021-01-06 at 14:30 UTC, NYSE open.
const chartA = `{"chart":{"result":[{
	"meta":{"currency":"USD","gmtoffset":-18000},
	"timestamp":[1609770600,1609857000,1609943400],
	"indicators":{
		"quote":[{"close":[10.5,null,11.5]}],
		"adjclose":[{"adjclose":[10.0,null,11.0]}]
	}}],"error":null}}`

// no adjclose, only quotes, and one day less.
const chartB = `{"chart":{"result":[{
	"meta":{"currency":"BRL","gmtoffset":-10800},
	"timestamp":[1609770600,1609857000],
	"indicators":{"quote":[{"close":[20.0,21.0]}]}}],"error":null}}`

const notFound = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

func server(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		switch {
		case strings.HasSuffix(r.URL.Path, "/A"):
			w.Write([]byte(chartA))
		case strings.HasSuffix(r.URL.Path, "/B.SA"):
			w.Write([]byte(chartB))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(notFound))
		}
	}))
	t.Cleanup(srv.Close)
	return &Client{
		Web:     webclient.New(srv.Client(), webclient.Settings{Name: "test"}),
		BaseURL: srv.URL,
	}
}

func TestClient_History(t *testing.T) {
	c := server(t)
	h, err := c.History(context.Background(), "A", date.New(2021, 1, 1), date.New(2021, 1, 6))
	require.NoError(t, err)
	assert.Equal(t, 2, h.Len())
	v, ok := h.Get(date.New(2021, 1, 6))
	assert.True(t, ok)
	assert.Equal(t, 11.0, v)
	_, ok = h.Get(date.New(2021, 1, 5))
	assert.False(t, ok, "null prices are gaps")
}

func TestClient_FetchPrices(t *testing.T) {
	c := server(t)
	prices, err := c.FetchPrices(context.Background(), []string{"A", "B.SA"}, date.New(2021, 1, 1), date.New(2021, 1, 6))
	require.NoError(t, err)
	require.Equal(t, 3, prices.Len())
	assert.Equal(t, []string{"A", "B.SA"}, prices.Tickers())
	assert.Zero(t, prices.Missing())
	// gaps carry the last known price forward
	assert.Equal(t, 10.0, prices.Price(1, 0))
	assert.Equal(t, 21.0, prices.Price(2, 1))
}

func TestClient_FetchPrices_UnknownTicker(t *testing.T) {
	c := server(t)
	prices, err := c.FetchPrices(context.Background(), []string{"A", "NOPE"}, date.New(2021, 1, 1), date.New(2021, 1, 6))
	require.NoError(t, err)
	assert.True(t, prices.Empty())
}

func TestParseChart_Error(t *testing.T) {
	c := server(t)
	_, err := c.History(context.Background(), "NOPE", date.New(2021, 1, 1), date.New(2021, 1, 6))
	assert.Error(t, err)
}
