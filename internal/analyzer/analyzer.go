package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/parsely/internal/models"
)

// Stats summarizes the shape of a parsed value.
type Stats struct {
	// Depth is the deepest container nesting. A scalar root has depth 0.
	Depth  int
	Nodes  int
	Counts map[models.Kind]int
	// Widest containers, in elements and members.
	LongestArray  int
	LargestObject int
	// LongestString is measured in characters.
	LongestString int
}

// Analyzer walks parsed values and collects Stats
type Analyzer struct {
	stats Stats
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze returns statistics for the document's root value
func (a *Analyzer) Analyze(doc models.Document) Stats {
	a.stats = Stats{Counts: make(map[models.Kind]int)}
	if doc.Root == nil {
		return a.stats
	}
	a.stats.Depth = a.walk(doc.Root)
	return a.stats
}

// walk records v and returns its nesting depth
func (a *Analyzer) walk(v models.Value) int {
	a.stats.Nodes++
	a.stats.Counts[v.Kind()]++

	switch val := v.(type) {
	case models.String:
		a.stats.LongestString = max(a.stats.LongestString, utf8.RuneCountInString(string(val)))
	case models.Array:
		a.stats.LongestArray = max(a.stats.LongestArray, len(val))
		deepest := 0
		for _, item := range val {
			deepest = max(deepest, a.walk(item))
		}
		return deepest + 1
	case models.Object:
		a.stats.LargestObject = max(a.stats.LargestObject, len(val))
		deepest := 0
		for _, item := range val {
			deepest = max(deepest, a.walk(item))
		}
		return deepest + 1
	}
	return 0
}

// Summary renders the statistics as aligned "name: value" lines.
func (s Stats) Summary() string {
	var b strings.Builder
	line := func(name string, value int) {
		fmt.Fprintf(&b, "%-15s %d\n", name+":", value)
	}
	line("depth", s.Depth)
	line("nodes", s.Nodes)
	for _, k := range []models.Kind{models.KindNull, models.KindBool, models.KindNumber, models.KindString, models.KindArray, models.KindObject} {
		line(k.String()+"s", s.Counts[k])
	}
	line("longest array", s.LongestArray)
	line("largest object", s.LargestObject)
	line("longest string", s.LongestString)
	return b.String()
}
