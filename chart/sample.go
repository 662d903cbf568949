package chart

import (
	simulator "github.com/gmonteiro13/simulador-investimentos"
)

// sample returns at most limit indices evenly spread over [0, n), first and
// last included.
func sample(n, limit int) []int {
	if n <= limit || limit < 2 {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, limit)
	for k := range idx {
		idx[k] = k * (n - 1) / (limit - 1)
	}
	return idx
}

func labels(s *simulator.Series, idx []int) []string {
	labels := make([]string, len(idx))
	for k, i := range idx {
		labels[k] = s.At(i).Day.String()
	}
	return labels
}

func pick(s *simulator.Series, idx []int, scale float64) []float64 {
	values := make([]float64, len(idx))
	for k, i := range idx {
		values[k] = s.At(i).Value * scale
	}
	return values
}

func splitNumber(n int) int { return max(3, min(8, n/3)) }

