package report

import (
	"fmt"
	"math"
	"strings"
)

const (
	// AnswerBarWidth is the width of the overall percentile bar.
	AnswerBarWidth = 50
	// BreakdownBarWidth is the width of each criterion bar.
	BreakdownBarWidth = 20
)

// Fill characters of the two bar styles.
const (
	BreakdownFill = "█"
	AnswerFill    = "▓"
	emptyFill     = "░"
)

// Bar draws a percentile as a filled/empty block bar of the given width.
func Bar(percentile float64, width int) string {
	return BarWith(percentile, width, BreakdownFill)
}

// BarWith draws a percentile bar whose filled cells use fill.
func BarWith(percentile float64, width int, fill string) string {
	filled := int(math.Floor(percentile / 100 * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat(fill, filled) + strings.Repeat(emptyFill, width-filled)
}

// RenderAnswer formats the overall answer, percentile and bar.
func RenderAnswer(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Answer: %s\n", r.OverallRating)
	fmt.Fprintf(&b, "(%.1fth percentile)\n", r.OverallPercentile)
	b.WriteString(BarWith(r.OverallPercentile, AnswerBarWidth, AnswerFill))
	b.WriteString("\n")
	return b.String()
}

// RenderBreakdown formats one line per criterion: name, bar and grade.
func RenderBreakdown(r *Report) string {
	lines := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		lines = append(lines, fmt.Sprintf("%-13s %s %s", c.Criterion, Bar(c.Percentile, BreakdownBarWidth), c.Grade))
	}
	return strings.Join(lines, "\n")
}

// RenderDetails formats the raw value behind each criterion.
func RenderDetails(r *Report) string {
	var b strings.Builder
	for _, c := range r.Categories {
		if c.Components != nil {
			fmt.Fprintf(&b, "  %-18s xG%% %.1f | takeaways/60 %.2f | blocks/60 %.2f  (%.1f pct, %s)\n",
				c.Label, c.Components.XGPct, c.Components.TakeawaysP60, c.Components.BlocksP60, c.Percentile, c.Rating)
			continue
		}
		fmt.Fprintf(&b, "  %-18s %8.2f  (%.1f pct, %s)\n", c.Label, c.Value, c.Percentile, c.Rating)
	}
	return b.String()
}
