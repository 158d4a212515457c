package spanx

import "iter"

// TokenMatcher matches labeled token patterns against documents
type TokenMatcher struct {
	*matcher[TokenPattern]
	searcher *TokenSearcher
}

// NewTokenMatcher returns an empty token pattern matcher
func NewTokenMatcher(opts *MatcherOptions) (*TokenMatcher, error) {
	defaults, observer, _ := opts.values()
	tm := &TokenMatcher{searcher: NewTokenSearcher()}
	store, err := newStore[TokenPattern](KindToken, defaults, observer, func(pattern TokenPattern, o *Options) (searcher, error) {
		return tm.searcher.compile(pattern, o)
	})
	if err != nil {
		return nil, err
	}
	tm.matcher = &matcher[TokenPattern]{Store: store, self: tm}
	return tm, nil
}

// Pipe matches every document of docs, see Pipe
func (tm *TokenMatcher) Pipe(docs iter.Seq[PipeInput], opts PipeOptions) iter.Seq[PipeOutput] {
	return Pipe(tm, docs, opts)
}
