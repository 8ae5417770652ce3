// Package criteria derives the six grading criteria from a skater's raw
// season line and aggregates them across the population.
package criteria

import "github.com/peekknuf/skatergrade/internal/dataset"

// Criterion identifies one graded dimension of a skater's season.
type Criterion string

const (
	Scoring     Criterion = "scoring"
	Shooting    Criterion = "shooting"
	Playmaking  Criterion = "playmaking"
	Defense     Criterion = "defense"
	Physicality Criterion = "physicality"
	Possession  Criterion = "possession"
)

// All lists the criteria in display order.
var All = []Criterion{Scoring, Shooting, Playmaking, Defense, Physicality, Possession}

var labels = map[Criterion]string{
	Scoring:     "Points",
	Shooting:    "High Danger xGoals",
	Playmaking:  "Primary Assists",
	Defense:     "Defense",
	Physicality: "Hits + Blocks",
	Possession:  "Corsi %",
}

// Label returns the human readable name of the raw value behind c.
func (c Criterion) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

// DefenseComponents are the three inputs to the defense composite.
type DefenseComponents struct {
	XGPct        float64 `json:"xg_pct"` // on-ice expected goals share, percent
	TakeawaysP60 float64 `json:"takeaways_p60"`
	BlocksP60    float64 `json:"blocks_p60"`
}

// Stats holds one skater's criterion values.
type Stats struct {
	Scoring     float64
	Shooting    float64
	Playmaking  float64
	Defense     DefenseComponents
	Physicality float64
	Possession  float64
}

// Value returns the scalar value of c. Defense has no single scalar and
// reports false.
func (s Stats) Value(c Criterion) (float64, bool) {
	switch c {
	case Scoring:
		return s.Scoring, true
	case Shooting:
		return s.Shooting, true
	case Playmaking:
		return s.Playmaking, true
	case Physicality:
		return s.Physicality, true
	case Possession:
		return s.Possession, true
	}
	return 0, false
}

// Extract computes the criteria for one skater.
//
// Physicality is the raw count hits + blocks. Rates are per 60 minutes of
// ice time and fall back to 0 for skaters without recorded ice time.
func Extract(s dataset.Skater) Stats {
	minutes := s.IceTimeMinutes()

	var takeawaysP60, blocksP60 float64
	if minutes > 0 {
		takeawaysP60 = s.Takeaways * 60 / minutes
		blocksP60 = s.BlockedShots * 60 / minutes
	}

	return Stats{
		Scoring:    s.Points,
		Shooting:   s.HighDangerXGoals,
		Playmaking: s.PrimaryAssists,
		Defense: DefenseComponents{
			XGPct:        s.OnIceXGoalsPct * 100,
			TakeawaysP60: takeawaysP60,
			BlocksP60:    blocksP60,
		},
		Physicality: s.Hits + s.BlockedShots,
		Possession:  s.OnIceCorsiPct * 100,
	}
}
