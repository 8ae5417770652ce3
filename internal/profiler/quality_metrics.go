package profiler

import "github.com/peekknuf/skatergrade/internal/dataset"

type QualityMetrics struct {
	TotalRows         int
	SkaterRows        int // rows with situation "all"
	NullPercentage    float64
	InvalidPercentage float64
	MissingColumns    int
}

// Clean reports whether every required column is present and every numeric
// cell parses. Blank numeric cells count as invalid.
func (m QualityMetrics) Clean() bool {
	return m.MissingColumns == 0 && m.InvalidPercentage == 0
}

func (p *CSVProfiler) CalculateQuality() QualityMetrics {
	metrics := QualityMetrics{
		TotalRows:      p.RowCount,
		SkaterRows:     p.Situations[dataset.SituationAll],
		MissingColumns: len(p.MissingColumns),
	}

	cells := p.RowCount * len(p.ColumnStats)
	if cells == 0 {
		return metrics
	}

	totalNulls, totalInvalid := 0, 0
	for _, stats := range p.ColumnStats {
		totalNulls += stats.NullCount
		totalInvalid += stats.InvalidCount
		if stats.Numeric {
			totalInvalid += stats.NullCount
		}
	}
	metrics.NullPercentage = float64(totalNulls) / float64(cells)
	metrics.InvalidPercentage = float64(totalInvalid) / float64(cells)

	return metrics
}
