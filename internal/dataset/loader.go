package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/peekknuf/skatergrade/internal/parser"
	"github.com/sirupsen/logrus"
)

// DefaultMinIceTimeMinutes is the ice time threshold applied when the filter
// is enabled without an explicit value. Smaller samples skew the percentiles.
const DefaultMinIceTimeMinutes = 500

// Options controls which rows of the season table are kept.
type Options struct {
	FilterIceTime     bool    // Exclude skaters below MinIceTimeMinutes
	MinIceTimeMinutes float64 // Threshold in minutes (default: 500 when filtering)
	Delimiter         rune    // Field separator; 0 detects it from the header
	Logger            logrus.FieldLogger
}

// LoadStats summarises one pass over the season table.
type LoadStats struct {
	RowsRead         int
	SkippedSituation int
	SkippedIceTime   int
	Kept             int
	Delimiter        rune
}

// Load reads a season table and returns the immutable dataset of skaters.
func Load(path string, opts Options) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return parse(data, path, opts)
}

func parse(data []byte, path string, opts Options) (*Dataset, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	threshold := opts.MinIceTimeMinutes
	if opts.FilterIceTime && threshold <= 0 {
		threshold = DefaultMinIceTimeMinutes
	}

	data = parser.StripBOM(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &LoadError{Path: path, Err: errors.New("empty file")}
	}
	if !parser.ValidateUTF8(data) {
		logger.WithField("path", path).Warn("season table is not valid UTF-8, names may render incorrectly")
	}

	stats := LoadStats{Delimiter: opts.Delimiter}
	if stats.Delimiter == 0 {
		stats.Delimiter = parser.DetectDelimiter(parser.HeaderLine(data), 0)
	} else if !parser.IsValidDelimiter(stats.Delimiter) {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("unsupported delimiter %q", stats.Delimiter)}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = stats.Delimiter

	headers, err := reader.Read()
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to read headers: %w", err)}
	}

	index := make(map[string]int, len(headers))
	for i, header := range headers {
		index[header] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Path: path, Missing: missing}
	}

	var skaters []Skater
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to read record: %w", err)}
		}
		stats.RowsRead++

		row := &rowReader{index: index, record: record, path: path}
		row.line, _ = reader.FieldPos(0)

		// Other situations (5on5, 4on5, ...) repeat the same skater.
		if row.str(ColSituation) != SituationAll {
			stats.SkippedSituation++
			continue
		}

		skater, err := row.skater()
		if err != nil {
			return nil, err
		}

		if opts.FilterIceTime && skater.IceTimeMinutes() < threshold {
			stats.SkippedIceTime++
			continue
		}

		skaters = append(skaters, skater)
	}
	stats.Kept = len(skaters)

	logger.WithFields(logrus.Fields{
		"path":              path,
		"rows":              stats.RowsRead,
		"kept":              stats.Kept,
		"skipped_situation": stats.SkippedSituation,
		"skipped_icetime":   stats.SkippedIceTime,
		"delimiter":         string(stats.Delimiter),
	}).Debug("season table loaded")

	return &Dataset{source: path, skaters: skaters, stats: stats}, nil
}
