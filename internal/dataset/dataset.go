package dataset

import (
	"sort"
	"strings"
)

// Dataset is a loaded season. It is never mutated after Load returns, so it
// can be shared freely between goroutines.
type Dataset struct {
	source  string
	skaters []Skater
	stats   LoadStats
}

// New builds a dataset from already parsed skaters, keeping their order.
func New(source string, skaters []Skater) *Dataset {
	kept := make([]Skater, len(skaters))
	copy(kept, skaters)
	return &Dataset{
		source:  source,
		skaters: kept,
		stats:   LoadStats{RowsRead: len(kept), Kept: len(kept), Delimiter: ','},
	}
}

// Source returns the path the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of skaters.
func (d *Dataset) Len() int { return len(d.skaters) }

// Stats returns the load summary.
func (d *Dataset) Stats() LoadStats { return d.stats }

// Skaters returns the skaters in load order. Callers must not modify the slice.
func (d *Dataset) Skaters() []Skater { return d.skaters }

// Find returns the first skater, in load order, whose name contains the
// query case-insensitively. A blank query never matches.
func (d *Dataset) Find(query string) (Skater, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Skater{}, false
	}
	for _, s := range d.skaters {
		if strings.Contains(strings.ToLower(s.Name), q) {
			return s, true
		}
	}
	return Skater{}, false
}

// Names returns the sorted unique skater names, for autocomplete.
func (d *Dataset) Names() []string {
	seen := make(map[string]struct{}, len(d.skaters))
	names := make([]string, 0, len(d.skaters))
	for _, s := range d.skaters {
		if _, ok := seen[s.Name]; ok {
			continue
		}
		seen[s.Name] = struct{}{}
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns up to limit names containing the query case-insensitively,
// in sorted order. A blank query suggests from every name; limit <= 0 means
// no limit.
func (d *Dataset) Suggest(query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []string
	for _, name := range d.Names() {
		if limit > 0 && len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(name), q) {
			out = append(out, name)
		}
	}
	return out
}
