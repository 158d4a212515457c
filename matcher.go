package spanx

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/projectdiscovery/spanx/fregex"
	"github.com/projectdiscovery/spanx/internal/dedupe"
	"github.com/projectdiscovery/spanx/similarity"
)

// DeviationKind tells which fields of a Deviation are meaningful
type DeviationKind int

const (
	// DeviationNone is the deviation of exact token matches
	DeviationNone DeviationKind = iota
	// DeviationCounts carries edit operation counts
	DeviationCounts
	// DeviationRatio carries a similarity ratio
	DeviationRatio
)

// Deviation describes how far a match differs from its pattern
type Deviation struct {
	Kind          DeviationKind
	Insertions    int
	Deletions     int
	Substitutions int
	Ratio         int
}

// NoDeviation is the deviation of an exact match
func NoDeviation() Deviation {
	return Deviation{}
}

// CountsDeviation returns a deviation made of edit operation counts
func CountsDeviation(insertions, deletions, substitutions int) Deviation {
	return Deviation{Kind: DeviationCounts, Insertions: insertions, Deletions: deletions, Substitutions: substitutions}
}

// RatioDeviation returns a deviation holding a similarity ratio
func RatioDeviation(ratio int) Deviation {
	return Deviation{Kind: DeviationRatio, Ratio: ratio}
}

func countsOf(c fregex.Counts) Deviation {
	return CountsDeviation(c.Insertions, c.Deletions, c.Substitutions)
}

func opsOf(o similarity.Ops) Deviation {
	return CountsDeviation(o.Insertions, o.Deletions, o.Substitutions)
}

// IsNone reports whether d is the exact match deviation
func (d Deviation) IsNone() bool {
	return d.Kind == DeviationNone
}

func (d Deviation) String() string {
	switch d.Kind {
	case DeviationCounts:
		return fmt.Sprintf("(%d, %d, %d)", d.Insertions, d.Deletions, d.Substitutions)
	case DeviationRatio:
		return fmt.Sprint(d.Ratio)
	}
	return "none"
}

// MarshalYAML writes counts as a list, ratios as a number and none as null
func (d Deviation) MarshalYAML() (interface{}, error) {
	switch d.Kind {
	case DeviationCounts:
		return []int{d.Insertions, d.Deletions, d.Substitutions}, nil
	case DeviationRatio:
		return d.Ratio, nil
	}
	return nil, nil
}

func (d Deviation) compare(o Deviation) int {
	return cmp.Or(
		cmp.Compare(d.Kind, o.Kind),
		cmp.Compare(d.Ratio, o.Ratio),
		cmp.Compare(d.Insertions, o.Insertions),
		cmp.Compare(d.Deletions, o.Deletions),
		cmp.Compare(d.Substitutions, o.Substitutions),
	)
}

// Match is a labeled token span [Start, End) of a Doc
type Match struct {
	Label     string
	Start     int
	End       int
	Deviation Deviation
}

// Len returns the number of tokens covered by m
func (m Match) Len() int {
	return m.End - m.Start
}

// Text returns the text of doc covered by m
func (m Match) Text(doc *Doc) string {
	return doc.SpanText(m.Start, m.End)
}

// compareMatches orders by start, then longer first, then label and
// deviation so equal inputs always produce the same order
func compareMatches(a, b Match) int {
	return cmp.Or(
		cmp.Compare(a.Start, b.Start),
		cmp.Compare(b.End, a.End),
		cmp.Compare(a.Label, b.Label),
		a.Deviation.compare(b.Deviation),
	)
}

// SortMatches sorts matches by ascending start and, for equal starts,
// descending length
func SortMatches(matches []Match) {
	slices.SortFunc(matches, compareMatches)
}

// Hit is a span produced by a single pattern variant before labeling
type Hit struct {
	Start     int
	End       int
	Deviation Deviation
}

// Engine matches labeled patterns against documents
type Engine interface {
	// Match returns the deduplicated, sorted matches of doc. It never
	// returns nil.
	Match(doc *Doc) []Match
}

// OnMatch is a per label callback run after matching. i is the index of
// the triggering match in matches. Callbacks may annotate doc but must
// not modify matches.
type OnMatch interface {
	OnMatch(e Engine, doc *Doc, i int, matches []Match)
}

// OnMatchFunc adapts a function to OnMatch
type OnMatchFunc func(e Engine, doc *Doc, i int, matches []Match)

// OnMatch calls f
func (f OnMatchFunc) OnMatch(e Engine, doc *Doc, i int, matches []Match) {
	f(e, doc, i, matches)
}

// scan holds the per call state shared by the variants of a matcher
type scan struct {
	doc      *Doc
	label    string
	observer Observer
	index    *CharTokenIndex
}

func (s *scan) charIndex() *CharTokenIndex {
	if s.index == nil {
		s.index = NewCharTokenIndex(s.doc)
	}
	return s.index
}

func (s *scan) warn(kind WarningKind, format string, args ...interface{}) {
	s.observer.Warn(Warning{Kind: kind, Label: s.label, Message: fmt.Sprintf(format, args...)})
}

// matcher runs every variant of a store against a document
type matcher[P any] struct {
	*Store[P]
	self Engine
}

// Match runs all variants of all labels against doc, deduplicates and
// sorts the results and then invokes label callbacks in match order
func (m *matcher[P]) Match(doc *Doc) []Match {
	s := &scan{doc: doc, observer: m.observer}
	seen := dedupe.NewMapBackend[Match]()
	for _, label := range m.order {
		s.label = label
		for _, v := range m.variants[label] {
			for _, hit := range v.compiled.search(s) {
				if hit.Start < 0 || hit.End > len(doc.Tokens) || hit.Start >= hit.End {
					continue
				}
				seen.Upsert(Match{Label: label, Start: hit.Start, End: hit.End, Deviation: hit.Deviation})
			}
		}
	}
	matches := seen.Items()
	seen.Cleanup()
	SortMatches(matches)
	if len(m.callbacks) > 0 {
		view := slices.Clone(matches)
		for i, match := range matches {
			if cb, ok := m.callbacks[match.Label]; ok {
				cb.OnMatch(m.self, doc, i, view)
			}
		}
	}
	return matches
}
