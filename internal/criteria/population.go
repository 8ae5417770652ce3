package criteria

import (
	"github.com/peekknuf/skatergrade/internal/dataset"
	"github.com/peekknuf/skatergrade/internal/stats"
)

// DefensePopulation holds the three defense components of every skater.
// Index i refers to the same skater in all three slices.
type DefensePopulation struct {
	XGPct        []float64
	TakeawaysP60 []float64
	BlocksP60    []float64
}

// Population is every skater's criterion values, computed once per load.
type Population struct {
	scalars    map[Criterion][]float64
	defense    DefensePopulation
	gameScores []float64

	defenseScorer     *stats.CompositeScorer
	defenseComposites []float64
}

// NewPopulation extracts the criteria of every skater in order.
func NewPopulation(skaters []dataset.Skater) *Population {
	n := len(skaters)
	p := &Population{
		scalars: map[Criterion][]float64{
			Scoring:     make([]float64, 0, n),
			Shooting:    make([]float64, 0, n),
			Playmaking:  make([]float64, 0, n),
			Physicality: make([]float64, 0, n),
			Possession:  make([]float64, 0, n),
		},
		defense: DefensePopulation{
			XGPct:        make([]float64, 0, n),
			TakeawaysP60: make([]float64, 0, n),
			BlocksP60:    make([]float64, 0, n),
		},
		gameScores: make([]float64, 0, n),
	}

	for _, s := range skaters {
		st := Extract(s)
		for c, values := range p.scalars {
			v, _ := st.Value(c)
			p.scalars[c] = append(values, v)
		}
		p.defense.XGPct = append(p.defense.XGPct, st.Defense.XGPct)
		p.defense.TakeawaysP60 = append(p.defense.TakeawaysP60, st.Defense.TakeawaysP60)
		p.defense.BlocksP60 = append(p.defense.BlocksP60, st.Defense.BlocksP60)
		p.gameScores = append(p.gameScores, s.GameScore)
	}

	// Inputs never change after load, so the composites are computed once.
	p.defenseScorer = stats.NewCompositeScorer(p.defense.components()...)
	p.defenseComposites = p.defenseScorer.Population(p.defense.components()...)

	return p
}

func (d DefensePopulation) components() [][]float64 {
	return [][]float64{d.XGPct, d.TakeawaysP60, d.BlocksP60}
}

// Len returns the number of skaters in the population.
func (p *Population) Len() int { return len(p.gameScores) }

// Values returns every skater's value for a scalar criterion. Defense
// returns nil; use Defense instead.
func (p *Population) Values(c Criterion) []float64 {
	return p.scalars[c]
}

// Defense returns the aligned defense component sequences.
func (p *Population) Defense() DefensePopulation { return p.defense }

// DefenseComposites returns every skater's composite defense z-score.
func (p *Population) DefenseComposites() []float64 { return p.defenseComposites }

// GameScores returns every skater's game score, the basis of the overall grade.
func (p *Population) GameScores() []float64 { return p.gameScores }

// Percentile ranks v against the population of scalar criterion c.
func (p *Population) Percentile(c Criterion, v float64) float64 {
	return stats.Percentile(v, p.scalars[c])
}

// DefenseComposite standardises each component against the population and
// averages the three z-scores.
func (p *Population) DefenseComposite(d DefenseComponents) float64 {
	return p.defenseScorer.Score(d.XGPct, d.TakeawaysP60, d.BlocksP60)
}

// DefensePercentile ranks the composite of d against every skater's composite.
func (p *Population) DefensePercentile(d DefenseComponents) float64 {
	return stats.Percentile(p.DefenseComposite(d), p.defenseComposites)
}

// OverallPercentile ranks a game score against the population.
func (p *Population) OverallPercentile(gameScore float64) float64 {
	return stats.Percentile(gameScore, p.gameScores)
}

// Percentiles ranks every criterion of st.
func (p *Population) Percentiles(st Stats) map[Criterion]float64 {
	out := make(map[Criterion]float64, len(All))
	for _, c := range All {
		if c == Defense {
			out[c] = p.DefensePercentile(st.Defense)
			continue
		}
		v, _ := st.Value(c)
		out[c] = p.Percentile(c, v)
	}
	return out
}
