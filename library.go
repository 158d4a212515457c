package spanx

import (
	"iter"
	"sort"

	"github.com/projectdiscovery/spanx/internal/dedupe"
	sliceutil "github.com/projectdiscovery/utils/slice"
)

// Library bundles a regex, a fuzzy and a token matcher sharing the same
// defaults so a pattern library can be matched in one call
type Library struct {
	Regex *RegexMatcher
	Fuzzy *FuzzyMatcher
	Token *TokenMatcher
}

// NewLibrary returns a Library of empty matchers
func NewLibrary(opts *MatcherOptions) (*Library, error) {
	rm, err := NewRegexMatcher(opts)
	if err != nil {
		return nil, err
	}
	fm, err := NewFuzzyMatcher(opts)
	if err != nil {
		return nil, err
	}
	tm, err := NewTokenMatcher(opts)
	if err != nil {
		return nil, err
	}
	return &Library{Regex: rm, Fuzzy: fm, Token: tm}, nil
}

// Labels returns the distinct labels of all matchers in sorted order
func (l *Library) Labels() []string {
	labels := append(l.Regex.Labels(), l.Fuzzy.Labels()...)
	labels = sliceutil.Dedupe(append(labels, l.Token.Labels()...))
	sort.Strings(labels)
	return labels
}

// Match runs the three matchers and merges their results into one
// sorted, deduplicated list
func (l *Library) Match(doc *Doc) []Match {
	seen := dedupe.NewMapBackend[Match]()
	for _, e := range []Engine{l.Regex, l.Fuzzy, l.Token} {
		for _, m := range e.Match(doc) {
			seen.Upsert(m)
		}
	}
	matches := seen.Items()
	SortMatches(matches)
	return matches
}

// Pipe matches every document of docs, see Pipe
func (l *Library) Pipe(docs iter.Seq[PipeInput], opts PipeOptions) iter.Seq[PipeOutput] {
	return Pipe(l, docs, opts)
}
