package simulator

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "BRL"

// Money is an amount in a currency, used to present simulated values.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns an amount of the given currency.
func M[T float64 | int64 | decimal.Decimal](value T, currency string) Money {
	switch v := any(value).(type) {
	case float64:
		return Money{value: decimal.NewFromFloat(v), cur: currency}
	case int64:
		return Money{value: decimal.NewFromInt(v), cur: currency}
	case decimal.Decimal:
		return Money{value: v, cur: currency}
	}
	return Money{cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with the currency symbol and separators, rounded
// to the currency's minor unit.
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

func (m Money) Currency() string           { return m.cur }
func (m Money) Decimal() decimal.Decimal   { return m.value }
func (m Money) Equal(n Money) bool         { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool               { return m.value.IsZero() }
func (m Money) IsNegative() bool           { return m.value.IsNegative() }
func (m Money) LessThan(amount Money) bool { return m.value.LessThan(amount.value) }
func (m Money) Float() float64             { return m.value.InexactFloat64() }

// Add panics on currency mismatch; the empty currency adopts the other one.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// FormatAmount formats a simulated value, which is undefined when not finite.
func FormatAmount(v float64, currency string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return M(v, currency).String()
}
