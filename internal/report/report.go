// Package report answers "how good is this skater" for front ends: it ties
// the loaded season, its population and the grading rules together.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peekknuf/skatergrade/internal/criteria"
	"github.com/peekknuf/skatergrade/internal/dataset"
	"github.com/peekknuf/skatergrade/internal/grading"
)

// ErrEmptyQuery is returned when no player name was given.
var ErrEmptyQuery = errors.New("please enter a player name")

// NotFoundError is returned when no skater name contains the query.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Player '%s' not found", e.Query)
}

// Category is one graded criterion of a report.
type Category struct {
	Criterion  criteria.Criterion          `json:"criterion"`
	Label      string                      `json:"label"`
	Percentile float64                     `json:"percentile"`
	Grade      grading.Grade               `json:"grade"`
	Rating     grading.Rating              `json:"rating"`
	Color      string                      `json:"color"`
	Value      float64                     `json:"value"`
	Components *criteria.DefenseComponents `json:"components,omitempty"`
}

// Report is the full answer for one skater.
type Report struct {
	Name              string         `json:"name"`
	Team              string         `json:"team"`
	Position          string         `json:"position"`
	GamesPlayed       int            `json:"games"`
	IceTimeMinutes    float64        `json:"ice_time_minutes"`
	GameScore         float64        `json:"game_score"`
	OverallPercentile float64        `json:"overall_percentile"`
	OverallGrade      grading.Grade  `json:"overall_grade"`
	OverallRating     grading.Rating `json:"overall_rating"`
	Categories        []Category     `json:"categories"`
}

// Category returns the entry for c.
func (r *Report) Category(c criteria.Criterion) (Category, bool) {
	for _, cat := range r.Categories {
		if cat.Criterion == c {
			return cat, true
		}
	}
	return Category{}, false
}

// Evaluator grades skaters of one loaded season.
type Evaluator struct {
	data *dataset.Dataset
	pop  *criteria.Population
}

// NewEvaluator derives the population of ds once; every later evaluation
// reuses it.
func NewEvaluator(ds *dataset.Dataset) *Evaluator {
	return &Evaluator{
		data: ds,
		pop:  criteria.NewPopulation(ds.Skaters()),
	}
}

// Dataset returns the season being graded.
func (e *Evaluator) Dataset() *dataset.Dataset { return e.data }

// Population returns the derived criterion values of the season.
func (e *Evaluator) Population() *criteria.Population { return e.pop }

// Evaluate finds a skater by name and grades them.
func (e *Evaluator) Evaluate(query string) (*Report, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	s, ok := e.data.Find(query)
	if !ok {
		return nil, &NotFoundError{Query: query}
	}
	return e.EvaluateSkater(s), nil
}

// EvaluateSkater grades one skater against the season population.
func (e *Evaluator) EvaluateSkater(s dataset.Skater) *Report {
	st := criteria.Extract(s)
	percentiles := e.pop.Percentiles(st)
	overall := e.pop.OverallPercentile(s.GameScore)

	r := &Report{
		Name:              s.Name,
		Team:              s.Team,
		Position:          s.Position,
		GamesPlayed:       s.GamesPlayed,
		IceTimeMinutes:    s.IceTimeMinutes(),
		GameScore:         s.GameScore,
		OverallPercentile: overall,
		OverallGrade:      grading.GradeFor(overall),
		OverallRating:     grading.RatingFor(overall),
		Categories:        make([]Category, 0, len(criteria.All)),
	}

	for _, c := range criteria.All {
		p := percentiles[c]
		rating := grading.RatingFor(p)
		cat := Category{
			Criterion:  c,
			Label:      c.Label(),
			Percentile: p,
			Grade:      grading.GradeFor(p),
			Rating:     rating,
			Color:      rating.Color(),
		}
		if c == criteria.Defense {
			d := st.Defense
			cat.Components = &d
		} else {
			cat.Value, _ = st.Value(c)
		}
		r.Categories = append(r.Categories, cat)
	}

	return r
}

// EvaluateAll grades every skater in load order, calling progress after each.
func (e *Evaluator) EvaluateAll(progress func(done, total int)) []*Report {
	skaters := e.data.Skaters()
	reports := make([]*Report, 0, len(skaters))
	for i, s := range skaters {
		reports = append(reports, e.EvaluateSkater(s))
		if progress != nil {
			progress(i+1, len(skaters))
		}
	}
	return reports
}
