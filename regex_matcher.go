package spanx

import "iter"

// MatcherOptions configures a matcher
type MatcherOptions struct {
	// Defaults apply to every variant that does not set a field itself
	Defaults *Options
	// Observer receives warnings, gologger is used when nil
	Observer Observer
	// Predefined resolves `predefined: true` regex patterns, the built-in
	// aliases are used when nil
	Predefined *Predefined
}

func (o *MatcherOptions) values() (*Options, Observer, *Predefined) {
	if o == nil {
		return nil, nil, nil
	}
	return o.Defaults, o.Observer, o.Predefined
}

// RegexMatcher matches labeled regex patterns, optionally carrying fuzzy
// constraints such as `(united states){e<=1}`, against documents
type RegexMatcher struct {
	*matcher[string]
	searcher *RegexSearcher
}

// NewRegexMatcher returns an empty regex matcher
func NewRegexMatcher(opts *MatcherOptions) (*RegexMatcher, error) {
	defaults, observer, table := opts.values()
	rm := &RegexMatcher{searcher: NewRegexSearcher(table)}
	store, err := newStore[string](KindRegex, defaults, observer, func(pattern string, o *Options) (searcher, error) {
		return rm.searcher.compile(pattern, o)
	})
	if err != nil {
		return nil, err
	}
	rm.matcher = &matcher[string]{Store: store, self: rm}
	return rm, nil
}

// Pipe matches every document of docs, see Pipe
func (rm *RegexMatcher) Pipe(docs iter.Seq[PipeInput], opts PipeOptions) iter.Seq[PipeOutput] {
	return Pipe(rm, docs, opts)
}
