// Package profiler checks season tables for quality problems without
// grading them: missing columns, blank cells and unparseable numbers.
package profiler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/peekknuf/skatergrade/internal/dataset"
	"github.com/peekknuf/skatergrade/internal/parser"
)

// numericColumns are the required columns that must parse as numbers.
var numericColumns = map[string]bool{
	dataset.ColGamesPlayed:    true,
	dataset.ColIceTime:        true,
	dataset.ColGameScore:      true,
	dataset.ColPoints:         true,
	dataset.ColHighDangerXG:   true,
	dataset.ColPrimaryAssists: true,
	dataset.ColTakeaways:      true,
	dataset.ColHits:           true,
	dataset.ColBlockedShots:   true,
	dataset.ColOnIceXGoalsPct: true,
	dataset.ColOnIceCorsiPct:  true,
}

type CSVProfiler struct {
	FilePath       string
	Delimiter      rune
	RowCount       int
	Situations     map[string]int
	ColumnStats    map[string]*ColumnStats
	MissingColumns []string
}

func NewCSVProfiler(filePath string) *CSVProfiler {
	return &CSVProfiler{
		FilePath:    filePath,
		Situations:  make(map[string]int),
		ColumnStats: make(map[string]*ColumnStats),
	}
}

// Profile reads the whole table. Only required columns are tracked.
func (p *CSVProfiler) Profile() error {
	file, err := os.Open(p.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	data = parser.StripBOM(data)
	p.Delimiter = parser.DetectDelimiter(parser.HeaderLine(data), 0)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = p.Delimiter
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read headers: %w", err)
	}

	present := make(map[string]bool, len(headers))
	for _, header := range headers {
		present[header] = true
	}
	for _, col := range dataset.RequiredColumns {
		if !present[col] {
			p.MissingColumns = append(p.MissingColumns, col)
			continue
		}
		p.ColumnStats[col] = &ColumnStats{Name: col, Numeric: numericColumns[col]}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}

		p.RowCount++
		for i, value := range record {
			if i >= len(headers) {
				break
			}
			colName := headers[i]
			if colName == dataset.ColSituation {
				p.Situations[value]++
			}
			if stats, ok := p.ColumnStats[colName]; ok {
				stats.Update(value)
			}
		}
	}

	return nil
}

// Columns returns the tracked column stats in required-column order.
func (p *CSVProfiler) Columns() []*ColumnStats {
	cols := make([]*ColumnStats, 0, len(p.ColumnStats))
	for _, col := range dataset.RequiredColumns {
		if stats, ok := p.ColumnStats[col]; ok {
			cols = append(cols, stats)
		}
	}
	return cols
}

// SituationNames returns the distinct situation values, sorted.
func (p *CSVProfiler) SituationNames() []string {
	names := make([]string, 0, len(p.Situations))
	for name := range p.Situations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
