// Package grading maps percentiles to letter grades and yes/no ratings.
package grading

// Grade is a letter tier from S (best) to F.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Lower bounds are inclusive.
var gradeFloors = []struct {
	min   float64
	grade Grade
}{
	{95, GradeS},
	{85, GradeA},
	{70, GradeB},
	{50, GradeC},
	{25, GradeD},
}

// GradeFor converts a percentile to a grade.
func GradeFor(percentile float64) Grade {
	for _, f := range gradeFloors {
		if percentile >= f.min {
			return f.grade
		}
	}
	return GradeF
}

// Rating answers "is this a good player": No, Maybe or Yes.
type Rating string

const (
	No    Rating = "No"
	Maybe Rating = "Maybe"
	Yes   Rating = "Yes"
)

// RatingFor converts a percentile to a rating.
func RatingFor(percentile float64) Rating {
	switch {
	case percentile < 50:
		return No
	case percentile < 80:
		return Maybe
	default:
		return Yes
	}
}

// Color is the display hint for a rating.
func (r Rating) Color() string {
	switch r {
	case No:
		return "red"
	case Maybe:
		return "orange"
	default:
		return "green"
	}
}
