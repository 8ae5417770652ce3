package stats

import "math"

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleStdDev returns the standard deviation with Bessel's correction.
// With fewer than two points the deviation is undefined and 1 is returned so
// z-scores stay finite.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 1
	}
	if constant(values) {
		return 0
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// constant reports whether every value is identical. Summing identical
// floats can drift off the exact mean, which would otherwise leave a tiny
// non-zero deviation.
func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// ZScorer standardises values against one population component.
type ZScorer struct {
	Mean   float64
	StdDev float64
}

// NewZScorer captures the mean and sample deviation of population.
func NewZScorer(population []float64) ZScorer {
	return ZScorer{
		Mean:   Mean(population),
		StdDev: SampleStdDev(population),
	}
}

// Score returns (v - mean) / stddev, or 0 when the population has no spread.
func (z ZScorer) Score(v float64) float64 {
	if z.StdDev <= 0 {
		return 0
	}
	return (v - z.Mean) / z.StdDev
}

// Composite averages z-scores into one value.
func Composite(scores ...float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	return Mean(scores)
}

// CompositeScorer combines several aligned population components into
// one standardised score per player.
type CompositeScorer struct {
	scorers []ZScorer
}

// NewCompositeScorer builds a scorer for the given components. Every
// component must hold one value per player, in the same player order.
func NewCompositeScorer(components ...[]float64) *CompositeScorer {
	scorers := make([]ZScorer, len(components))
	for i, c := range components {
		scorers[i] = NewZScorer(c)
	}
	return &CompositeScorer{scorers: scorers}
}

// Score returns the composite z-score of one player's component values,
// given in the same order as the components passed to NewCompositeScorer.
func (c *CompositeScorer) Score(values ...float64) float64 {
	scores := make([]float64, len(c.scorers))
	for i, z := range c.scorers {
		scores[i] = z.Score(values[i])
	}
	return Composite(scores...)
}

// Population returns the composite score of every player in components.
func (c *CompositeScorer) Population(components ...[]float64) []float64 {
	if len(components) == 0 {
		return nil
	}
	n := len(components[0])
	out := make([]float64, n)
	values := make([]float64, len(components))
	for i := 0; i < n; i++ {
		for j, comp := range components {
			values[j] = comp[i]
		}
		out[i] = c.Score(values...)
	}
	return out
}

// CompositePercentile standardises each component, averages the player's
// z-scores and ranks that composite against every player's composite.
func CompositePercentile(player []float64, components ...[]float64) float64 {
	scorer := NewCompositeScorer(components...)
	return Percentile(scorer.Score(player...), scorer.Population(components...))
}
