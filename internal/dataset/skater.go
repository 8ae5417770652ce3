package dataset

import (
	"strconv"
	"strings"
)

// Column names of the season table. The set is a fixed contract with the
// upstream export; renaming any of them breaks loading.
const (
	ColName           = "name"
	ColTeam           = "team"
	ColPosition       = "position"
	ColGamesPlayed    = "games_played"
	ColIceTime        = "icetime"
	ColSituation      = "situation"
	ColGameScore      = "gameScore"
	ColPoints         = "I_F_points"
	ColHighDangerXG   = "I_F_highDangerxGoals"
	ColPrimaryAssists = "I_F_primaryAssists"
	ColTakeaways      = "I_F_takeaways"
	ColHits           = "I_F_hits"
	ColBlockedShots   = "shotsBlockedByPlayer"
	ColOnIceXGoalsPct = "onIce_xGoalsPercentage"
	ColOnIceCorsiPct  = "onIce_corsiPercentage"
	SituationAll      = "all"
)

// RequiredColumns lists every column the loader needs, in report order.
var RequiredColumns = []string{
	ColName,
	ColTeam,
	ColPosition,
	ColGamesPlayed,
	ColIceTime,
	ColSituation,
	ColGameScore,
	ColPoints,
	ColHighDangerXG,
	ColPrimaryAssists,
	ColTakeaways,
	ColHits,
	ColBlockedShots,
	ColOnIceXGoalsPct,
	ColOnIceCorsiPct,
}

// Skater is one "all situations" row of the season table.
type Skater struct {
	Name     string
	Team     string
	Position string

	GamesPlayed    int
	IceTimeSeconds float64
	GameScore      float64

	Points           float64
	HighDangerXGoals float64
	PrimaryAssists   float64
	Takeaways        float64
	Hits             float64
	BlockedShots     float64

	// On-ice shares are fractions in [0, 1].
	OnIceXGoalsPct float64
	OnIceCorsiPct  float64

	// Line is the 1-based line of the row in the source table.
	Line int
}

// IceTimeMinutes converts the stored ice time to minutes.
func (s Skater) IceTimeMinutes() float64 {
	return s.IceTimeSeconds / 60
}

// rowReader resolves columns by header index and records the first parse failure.
type rowReader struct {
	index  map[string]int
	record []string
	path   string
	line   int
	err    *MalformedRecordError
}

func (r *rowReader) str(col string) string {
	return strings.TrimSpace(r.record[r.index[col]])
}

func (r *rowReader) floatField(col string) float64 {
	if r.err != nil {
		return 0
	}
	raw := r.str(col)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.fail(col, raw, err)
		return 0
	}
	return v
}

func (r *rowReader) intField(col string) int {
	if r.err != nil {
		return 0
	}
	raw := r.str(col)
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(col, raw, err)
		return 0
	}
	return v
}

func (r *rowReader) fail(col, raw string, err error) {
	r.err = &MalformedRecordError{
		Path:   r.path,
		Line:   r.line,
		Player: r.str(ColName),
		Field:  col,
		Value:  raw,
		Err:    err,
	}
}

func (r *rowReader) skater() (Skater, error) {
	s := Skater{
		Name:             r.str(ColName),
		Team:             r.str(ColTeam),
		Position:         r.str(ColPosition),
		GamesPlayed:      r.intField(ColGamesPlayed),
		IceTimeSeconds:   r.floatField(ColIceTime),
		GameScore:        r.floatField(ColGameScore),
		Points:           r.floatField(ColPoints),
		HighDangerXGoals: r.floatField(ColHighDangerXG),
		PrimaryAssists:   r.floatField(ColPrimaryAssists),
		Takeaways:        r.floatField(ColTakeaways),
		Hits:             r.floatField(ColHits),
		BlockedShots:     r.floatField(ColBlockedShots),
		OnIceXGoalsPct:   r.floatField(ColOnIceXGoalsPct),
		OnIceCorsiPct:    r.floatField(ColOnIceCorsiPct),
		Line:             r.line,
	}
	if r.err != nil {
		return Skater{}, r.err
	}
	return s, nil
}
