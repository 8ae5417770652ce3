// Package export turns graded reports into the static player dataset used
// by the website, and writes it to one or more sinks.
package export

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/peekknuf/skatergrade/internal/criteria"
	"github.com/peekknuf/skatergrade/internal/report"
)

// Components is the rounded defense breakdown.
type Components struct {
	XGPct        float64 `json:"xg_pct"`
	TakeawaysP60 float64 `json:"takeaways_p60"`
	BlocksP60    float64 `json:"blocks_p60"`
}

// Category is one exported criterion.
type Category struct {
	Percentile float64     `json:"percentile"`
	Grade      string      `json:"grade"`
	Rating     string      `json:"rating"`
	Value      *float64    `json:"value,omitempty"`
	Components *Components `json:"components,omitempty"`
	Label      string      `json:"label"`
}

// Categories keeps the criteria in display order when serialised.
type Categories struct {
	Scoring     Category `json:"scoring"`
	Shooting    Category `json:"shooting"`
	Playmaking  Category `json:"playmaking"`
	Defense     Category `json:"defense"`
	Physicality Category `json:"physicality"`
	Possession  Category `json:"possession"`
}

// Get returns the category for c.
func (cs *Categories) Get(c criteria.Criterion) *Category {
	switch c {
	case criteria.Scoring:
		return &cs.Scoring
	case criteria.Shooting:
		return &cs.Shooting
	case criteria.Playmaking:
		return &cs.Playmaking
	case criteria.Defense:
		return &cs.Defense
	case criteria.Physicality:
		return &cs.Physicality
	case criteria.Possession:
		return &cs.Possession
	}
	return nil
}

// Player is the complete exported record of one skater.
type Player struct {
	Name              string     `json:"name"`
	Slug              string     `json:"slug"`
	Team              string     `json:"team"`
	Position          string     `json:"position"`
	Games             int        `json:"games"`
	IceTimeMinutes    float64    `json:"ice_time_minutes"`
	OverallGrade      string     `json:"overall_grade"`
	OverallPercentile float64    `json:"overall_percentile"`
	Categories        Categories `json:"categories"`
}

// IndexEntry is the lightweight search/autocomplete record of one skater.
type IndexEntry struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Team     string `json:"team"`
	Position string `json:"position"`
	Grade    string `json:"grade"`
}

// Manifest describes one export run.
type Manifest struct {
	BuildID     string    `json:"build_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"`
	Players     int       `json:"players"`
}

// Bundle is everything one export run produces.
type Bundle struct {
	Manifest Manifest
	Players  []Player
	Index    []IndexEntry
}

// Lookup finds a player by slug in the index.
func (b *Bundle) Lookup(slug string) (IndexEntry, bool) {
	for _, e := range b.Index {
		if e.Slug == slug {
			return e, true
		}
	}
	return IndexEntry{}, false
}

// Player returns the full record for slug.
func (b *Bundle) Player(slug string) (Player, bool) {
	for _, p := range b.Players {
		if p.Slug == slug {
			return p, true
		}
	}
	return Player{}, false
}

// Build grades every skater of the evaluator's season in load order.
func Build(ev *report.Evaluator, progress func(done, total int)) *Bundle {
	reports := ev.EvaluateAll(progress)
	slugs := newSlugger()

	b := &Bundle{
		Manifest: Manifest{
			BuildID:     uuid.NewString(),
			GeneratedAt: time.Now().UTC(),
			Source:      ev.Dataset().Source(),
			Players:     len(reports),
		},
		Players: make([]Player, 0, len(reports)),
		Index:   make([]IndexEntry, 0, len(reports)),
	}

	for _, r := range reports {
		p := BuildPlayer(r, slugs.slug(r.Name))
		b.Players = append(b.Players, p)
		b.Index = append(b.Index, BuildIndexEntry(p))
	}

	return b
}

// BuildPlayer converts a report into its exported record.
func BuildPlayer(r *report.Report, slug string) Player {
	p := Player{
		Name:              r.Name,
		Slug:              slug,
		Team:              r.Team,
		Position:          r.Position,
		Games:             r.GamesPlayed,
		IceTimeMinutes:    round(r.IceTimeMinutes, 1),
		OverallGrade:      string(r.OverallGrade),
		OverallPercentile: round(r.OverallPercentile, 1),
	}

	for _, c := range r.Categories {
		out := p.Categories.Get(c.Criterion)
		if out == nil {
			continue
		}
		*out = Category{
			Percentile: round(c.Percentile, 1),
			Grade:      string(c.Grade),
			Rating:     string(c.Rating),
			Label:      c.Label,
		}
		if c.Components != nil {
			out.Components = &Components{
				XGPct:        round(c.Components.XGPct, 1),
				TakeawaysP60: round(c.Components.TakeawaysP60, 2),
				BlocksP60:    round(c.Components.BlocksP60, 2),
			}
			continue
		}
		v := exportValue(c.Criterion, c.Value)
		out.Value = &v
	}

	return p
}

// BuildIndexEntry extracts the search fields of p.
func BuildIndexEntry(p Player) IndexEntry {
	return IndexEntry{
		Name:     p.Name,
		Slug:     p.Slug,
		Team:     p.Team,
		Position: p.Position,
		Grade:    p.OverallGrade,
	}
}

// exportValue applies the per-criterion rounding: counts are truncated to
// whole numbers, rates and percentages keep one or two decimals.
func exportValue(c criteria.Criterion, v float64) float64 {
	switch c {
	case criteria.Scoring, criteria.Playmaking:
		return math.Trunc(v)
	case criteria.Shooting:
		return round(v, 2)
	default:
		return round(v, 1)
	}
}

// round rounds the exact binary value of v to places decimals, ties to
// even. Scaling by a power of ten first would turn 6.35 into 63.5 and round
// it the wrong way.
func round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
