package stats

import (
	"math"
	"testing"
)

func TestSampleStdDev(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"bessel corrected", []float64{2, 4, 4, 4, 5, 5, 7, 9}, math.Sqrt(32.0 / 7)},
		{"single point falls back to one", []float64{3}, 1},
		{"empty falls back to one", nil, 1},
		{"constant has no spread", []float64{0.1, 0.1, 0.1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SampleStdDev(tt.values); !approxEqual(got, tt.want, 1e-12) {
				t.Errorf("SampleStdDev() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZScorer(t *testing.T) {
	z := NewZScorer([]float64{1, 2, 3})
	if z.Mean != 2 || z.StdDev != 1 {
		t.Fatalf("Unexpected scorer: %+v", z)
	}
	if got := z.Score(4); got != 2 {
		t.Errorf("Expected z=2, got %v", got)
	}

	flat := NewZScorer([]float64{5, 5})
	if got := flat.Score(100); got != 0 {
		t.Errorf("Expected z=0 for constant population, got %v", got)
	}

	single := NewZScorer([]float64{5})
	if got := single.Score(7); got != 2 {
		t.Errorf("Expected z=2 with unit deviation fallback, got %v", got)
	}
}

func TestCompositePercentile(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{10, 30, 20, 40}
	c := []float64{7, 7, 7, 7}

	// Player 3 leads both varying components.
	if got := CompositePercentile([]float64{a[3], b[3], c[3]}, a, b, c); got != 75 {
		t.Errorf("Expected 75 for the best player, got %v", got)
	}
	if got := CompositePercentile([]float64{a[0], b[0], c[0]}, a, b, c); got != 0 {
		t.Errorf("Expected 0 for the worst player, got %v", got)
	}
}

func TestConstantComponentDropsOut(t *testing.T) {
	a := []float64{3, 1, 4, 1.5, 9}
	b := []float64{2, 6, 5, 3, 5.5}
	flat := []float64{0.3, 0.3, 0.3, 0.3, 0.3}

	withFlat := NewCompositeScorer(a, b, flat)
	withoutFlat := NewCompositeScorer(a, b)

	for i := range a {
		got := CompositePercentile([]float64{a[i], b[i], flat[i]}, a, b, flat)
		want := CompositePercentile([]float64{a[i], b[i]}, a, b)
		if got != want {
			t.Errorf("Player %d: percentile %v with flat component, %v without", i, got, want)
		}

		// The flat component only rescales the average, never reorders.
		if z := withFlat.Score(a[i], b[i], flat[i]); !approxEqual(z*3, withoutFlat.Score(a[i], b[i])*2, 1e-12) {
			t.Errorf("Player %d: flat component contributed a non-zero z-score", i)
		}
	}
}

func TestCompositeScorerPopulationAlignment(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{3, 2, 1}
	scorer := NewCompositeScorer(a, b)

	pop := scorer.Population(a, b)
	if len(pop) != 3 {
		t.Fatalf("Expected 3 composites, got %d", len(pop))
	}
	for i, v := range pop {
		if !approxEqual(v, 0, 1e-12) {
			t.Errorf("Composite %d = %v, expected mirrored components to cancel", i, v)
		}
	}
}
