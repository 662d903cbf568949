package simulator

import (
	"fmt"
	"math"
)

// Percent is a rate expressed in percent: 10 means 10%.
type Percent float64

// AsPercent converts a fraction (0.1) into a Percent (10%).
func AsPercent(fraction float64) Percent { return Percent(fraction * 100) }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

// String formats with two decimals. Undefined rates are "n/a".
func (p Percent) String() string {
	switch {
	case math.IsNaN(float64(p)):
		return "n/a"
	case math.IsInf(float64(p), 0):
		return "inf"
	}
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	if math.IsNaN(float64(p)) {
		return "n/a"
	}
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
