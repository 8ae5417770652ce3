package stats

import (
	"math"
	"sort"
)

// Summary describes the distribution of one criterion across the population.
type Summary struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Describe computes a Summary. The input slice is not modified.
func Describe(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		Count: len(sorted),
		Mean:  Mean(sorted),
		Min:   sorted[0],
		Q25:   Quantile(sorted, 0.25),
		Q50:   Quantile(sorted, 0.50),
		Q75:   Quantile(sorted, 0.75),
		Max:   sorted[len(sorted)-1],
	}
	if len(sorted) > 1 {
		s.Std = SampleStdDev(sorted)
	}
	return s
}

// Quantile calculates the quantile from sorted values using linear interpolation
func Quantile(sortedVals []float64, quantile float64) float64 {
	if len(sortedVals) == 0 {
		return 0
	}

	if len(sortedVals) == 1 {
		return sortedVals[0]
	}

	index := quantile * float64(len(sortedVals)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return sortedVals[lower]
	}

	weight := index - float64(lower)
	return sortedVals[lower]*(1-weight) + sortedVals[upper]*weight
}
