package simulator

import (
	"fmt"
	"math"
)

// NormalizeWeights scales weights so that they sum to 1.
//
// There must be exactly n weights, all finite and non negative, with a positive sum.
func NormalizeWeights(weights []float64, n int) ([]float64, error) {
	if len(weights) != n {
		return nil, fmt.Errorf("%d weights for %d assets: %w", len(weights), n, ErrWeightCount)
	}
	sum := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("weight #%d is %v: %w", i+1, w, ErrNegativeWeight)
		}
		sum += w
	}
	if sum == 0 {
		return nil, ErrZeroWeights
	}
	normalized := make([]float64, len(weights))
	for i, w := range weights {
		normalized[i] = w / sum
	}
	return normalized, nil
}
