package spanx

import "iter"

// FuzzyMatcher matches labeled phrases approximately against the tokens
// of documents. Match deviations are similarity ratios.
type FuzzyMatcher struct {
	*matcher[string]
	searcher *FuzzySearcher
}

// NewFuzzyMatcher returns an empty fuzzy phrase matcher
func NewFuzzyMatcher(opts *MatcherOptions) (*FuzzyMatcher, error) {
	defaults, observer, _ := opts.values()
	fm := &FuzzyMatcher{searcher: NewFuzzySearcher()}
	store, err := newStore[string](KindFuzzy, defaults, observer, func(query string, o *Options) (searcher, error) {
		return fm.searcher.compile(query, o)
	})
	if err != nil {
		return nil, err
	}
	fm.matcher = &matcher[string]{Store: store, self: fm}
	return fm, nil
}

// Pipe matches every document of docs, see Pipe
func (fm *FuzzyMatcher) Pipe(docs iter.Seq[PipeInput], opts PipeOptions) iter.Seq[PipeOutput] {
	return Pipe(fm, docs, opts)
}
