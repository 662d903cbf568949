package simulator

import "errors"

var (
	// ErrNoDates is returned when a simulation is asked to run over no dates at all.
	ErrNoDates = errors.New("no dates to simulate")
	// ErrUnorderedDates is returned when dates are not strictly increasing.
	ErrUnorderedDates = errors.New("dates are not strictly increasing")
	// ErrNegativeAmount is returned for a negative capital or contribution.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrInvalidRate is returned for a monthly rate that would wipe out the capital.
	ErrInvalidRate = errors.New("invalid monthly rate")

	// ErrEmptyPriceTable is returned when a price table has no dates or no tickers.
	ErrEmptyPriceTable = errors.New("empty price table")
	// ErrMissingPrices is returned when a ticker has no price at all to fill gaps from.
	ErrMissingPrices = errors.New("missing prices")
	// ErrNonPositivePrice is returned when a return cannot be computed from a price.
	ErrNonPositivePrice = errors.New("non positive price")
	// ErrNoPriceData is returned when the price provider could not deliver any data.
	ErrNoPriceData = errors.New("no price data")

	// ErrWeightCount is returned when there is not exactly one weight per asset.
	ErrWeightCount = errors.New("weight count does not match asset count")
	// ErrNegativeWeight is returned for negative or non finite weights.
	ErrNegativeWeight = errors.New("negative weight")
	// ErrZeroWeights is returned when weights sum to zero and cannot be normalized.
	ErrZeroWeights = errors.New("weights sum to zero")

	// ErrInvalidScenario is returned when a scenario fails validation.
	ErrInvalidScenario = errors.New("invalid scenario")
)
