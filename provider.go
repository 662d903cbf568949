package simulator

import (
	"context"

	"github.com/gmonteiro13/simulador-investimentos/date"
)

// PriceProvider supplies historical prices.
//
// FetchPrices returns the daily adjusted close of every ticker over [from, to],
// both inclusive, aligned on a common date index with gaps filled. When data
// cannot be obtained for the request the provider returns an empty table
// rather than partial data; errors are reserved for invalid requests and
// cancellation.
type PriceProvider interface {
	FetchPrices(ctx context.Context, tickers []string, from, to date.Date) (*PriceTable, error)
}

// PriceProviderFunc adapts a function to the PriceProvider interface.
type PriceProviderFunc func(ctx context.Context, tickers []string, from, to date.Date) (*PriceTable, error)

func (f PriceProviderFunc) FetchPrices(ctx context.Context, tickers []string, from, to date.Date) (*PriceTable, error) {
	return f(ctx, tickers, from, to)
}
