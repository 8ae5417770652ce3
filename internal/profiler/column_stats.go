package profiler

import (
	"strconv"
	"strings"
)

type ColumnStats struct {
	Name          string
	Numeric       bool
	NullCount     int
	InvalidCount  int // non-empty values that fail to parse in a numeric column
	DistinctCount int
	Min           float64
	Max           float64
	uniqueValues  map[string]struct{}
	seenNumber    bool
}

func (s *ColumnStats) Update(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		s.NullCount++
		return
	}

	if !s.Numeric {
		if s.uniqueValues == nil {
			s.uniqueValues = make(map[string]struct{})
		}
		s.uniqueValues[value] = struct{}{}
		s.DistinctCount = len(s.uniqueValues)
		return
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		s.InvalidCount++
		return
	}
	if !s.seenNumber || v < s.Min {
		s.Min = v
	}
	if !s.seenNumber || v > s.Max {
		s.Max = v
	}
	s.seenNumber = true
}
