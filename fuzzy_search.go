package spanx

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/projectdiscovery/spanx/internal/tokenizer"
	"github.com/projectdiscovery/spanx/similarity"
	"golang.org/x/text/cases"
)

// FuzzySearcher finds token spans of a Doc whose text is similar to a
// query phrase
type FuzzySearcher struct{}

// NewFuzzySearcher returns a phrase searcher
func NewFuzzySearcher() *FuzzySearcher {
	return &FuzzySearcher{}
}

type fuzzyVariant struct {
	query        string
	size         int
	score        similarity.Func
	minRatio     float64
	minCandidate float64
	flex         int
	fold         bool
}

type candidate struct {
	start, end int
	ratio      float64
}

func (f *FuzzySearcher) compile(query string, opts *Options) (*fuzzyVariant, error) {
	size := len(tokenizer.Tokenize(query))
	if size == 0 {
		return nil, fmt.Errorf("%w: fuzzy query %q has no tokens", ErrInvalidPatternType, query)
	}
	flex := intOr(opts.Flex, size)
	if flex > size {
		flex = size
	}
	v := &fuzzyVariant{
		query:        query,
		size:         size,
		score:        opts.fuzzyFunc(),
		minRatio:     float64(opts.minRatio()),
		minCandidate: float64(opts.minCandidateRatio()),
		flex:         flex,
		fold:         opts.ignoreCase(true),
	}
	if v.fold {
		v.query = cases.Fold().String(query)
	}
	return v, nil
}

// Search returns the token spans of doc similar to query. opts may be nil.
func (f *FuzzySearcher) Search(doc *Doc, query string, opts *Options) ([]Hit, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	v, err := f.compile(query, opts.Merge(nil))
	if err != nil {
		return nil, err
	}
	return v.search(&scan{doc: doc, observer: LogObserver{}}), nil
}

func (v *fuzzyVariant) ratio(doc *Doc, start, end int) float64 {
	text := doc.SpanText(start, end)
	if v.fold {
		text = cases.Fold().String(text)
	}
	return v.score(v.query, text)
}

// search scores every window of query length, refines the boundaries of
// promising windows and keeps non overlapping results from left to right
func (v *fuzzyVariant) search(s *scan) []Hit {
	doc := s.doc
	n := len(doc.Tokens)
	if n == 0 {
		return nil
	}
	size := min(v.size, n)

	var found []candidate
	for start := 0; start+size <= n; start++ {
		r := v.ratio(doc, start, start+size)
		if r < v.minCandidate {
			continue
		}
		if c, ok := v.refine(doc, start, start+size, r); ok {
			found = append(found, c)
		}
	}

	// leftmost start first, then the best scoring and longest span there
	slices.SortFunc(found, func(a, b candidate) int {
		return cmp.Or(
			cmp.Compare(a.start, b.start),
			cmp.Compare(b.ratio, a.ratio),
			cmp.Compare(b.end-b.start, a.end-a.start),
		)
	})
	var kept []candidate
	for _, c := range found {
		if len(kept) == 0 || kept[len(kept)-1].end <= c.start {
			kept = append(kept, c)
		}
	}

	hits := make([]Hit, 0, len(kept))
	for _, c := range kept {
		hits = append(hits, Hit{Start: c.start, End: c.end, Deviation: RatioDeviation(int(math.Round(c.ratio)))})
	}
	return hits
}

// refine moves each boundary of [start, end) by up to flex tokens, keeping
// the other fixed, and combines the best positions
func (v *fuzzyVariant) refine(doc *Doc, start, end int, r float64) (candidate, bool) {
	bestStart, bestEnd := start, end
	bestLeft, bestRight := r, r
	for f := 1; f <= v.flex; f++ {
		if start-f >= 0 {
			if lr := v.ratio(doc, start-f, end); lr > bestLeft {
				bestLeft, bestStart = lr, start-f
			}
		}
		if start+f < end {
			if lr := v.ratio(doc, start+f, end); lr > bestLeft {
				bestLeft, bestStart = lr, start+f
			}
		}
		if end-f > start {
			if rr := v.ratio(doc, start, end-f); rr > bestRight {
				bestRight, bestEnd = rr, end-f
			}
		}
		if end+f <= len(doc.Tokens) {
			if rr := v.ratio(doc, start, end+f); rr > bestRight {
				bestRight, bestEnd = rr, end+f
			}
		}
	}
	if bestStart >= bestEnd {
		bestStart, bestEnd = start, end
	}
	final := r
	if bestStart != start || bestEnd != end {
		final = v.ratio(doc, bestStart, bestEnd)
		if final < r {
			bestStart, bestEnd, final = start, end, r
		}
	}
	if final < v.minRatio {
		return candidate{}, false
	}
	return candidate{start: bestStart, end: bestEnd, ratio: final}, true
}
