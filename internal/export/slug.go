package export

import (
	"fmt"
	"strings"
)

var slugReplacer = strings.NewReplacer(" ", "-", ".", "", "'", "")

// Slugify converts a player name to a URL-friendly slug: lowercase, spaces
// become hyphens, periods and apostrophes are dropped.
func Slugify(name string) string {
	return slugReplacer.Replace(strings.ToLower(name))
}

// slugger hands out unique slugs. The first player with a given name keeps
// the plain slug; later namesakes get the lowest free numeric suffix, skipping
// any slug already issued to another name.
type slugger struct {
	issued map[string]bool
	next   map[string]int
}

func newSlugger() *slugger {
	return &slugger{
		issued: make(map[string]bool),
		next:   make(map[string]int),
	}
}

func (s *slugger) slug(name string) string {
	base := Slugify(name)
	slug := base
	if s.issued[slug] {
		n := s.next[base]
		if n < 2 {
			n = 2
		}
		for ; s.issued[fmt.Sprintf("%s-%d", base, n)]; n++ {
		}
		slug = fmt.Sprintf("%s-%d", base, n)
		s.next[base] = n + 1
	}
	s.issued[slug] = true
	return slug
}
