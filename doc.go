// Package simulator compares two savings strategies over the same historical
// period: a fixed-rate compound interest plan and a fixed-weight stock
// portfolio, both fed by the same initial capital and monthly contributions.
//
// Simulators are pure functions producing a Series, one value per day of the
// date index they are given. The Metrics engine summarizes a Series with its
// compound annual growth rate, annualized volatility, maximum drawdown and
// Sharpe ratio. Compare orchestrates a full run: it fetches prices from a
// PriceProvider, runs both simulators over the price table's dates and
// computes the metrics, reporting progress to an optional Observer.
//
// The package never prints nor logs on its own, presentation lives in the
// renderer and chart packages, and the savesim command.
package simulator
