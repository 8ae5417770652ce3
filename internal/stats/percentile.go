// Package stats holds the population math behind every grade: strict-rank
// percentiles, z-score standardisation and descriptive summaries.
package stats

// Percentile returns the share of the population strictly below value,
// scaled to 0-100. Equal values are not counted as below, so a value sitting
// on a large block of ties ranks lower than its median position. An empty
// population yields 0.
func Percentile(value float64, population []float64) float64 {
	if len(population) == 0 {
		return 0
	}

	below := 0
	for _, v := range population {
		if v < value {
			below++
		}
	}

	return float64(below) / float64(len(population)) * 100
}
