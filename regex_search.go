package spanx

import (
	"github.com/projectdiscovery/spanx/fregex"
)

// RegexSearcher finds regex matches over the text of a Doc and maps them
// to token spans
type RegexSearcher struct {
	predefined *Predefined
}

// NewRegexSearcher returns a searcher resolving `predefined: true`
// patterns through table. A nil table uses the built-in aliases.
func NewRegexSearcher(table *Predefined) *RegexSearcher {
	if table == nil {
		table = NewPredefined(nil)
	}
	return &RegexSearcher{predefined: table}
}

type regexVariant struct {
	re      *fregex.Regexp
	limits  fregex.Limits
	partial bool
}

// compile resolves and compiles pattern with fully merged options
func (r *RegexSearcher) compile(pattern string, opts *Options) (*regexVariant, error) {
	if opts.predefined() {
		resolved, err := r.predefined.Resolve(pattern)
		if err != nil {
			return nil, err
		}
		pattern = resolved
	}
	re, err := fregex.Compile(pattern, opts.regexFlags())
	if err != nil {
		return nil, err
	}
	return &regexVariant{re: re, limits: opts.limits(), partial: opts.partial()}, nil
}

// Search returns the token spans of doc matched by pattern. opts may be
// nil.
func (r *RegexSearcher) Search(doc *Doc, pattern string, opts *Options) ([]Hit, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	v, err := r.compile(pattern, opts.Merge(nil))
	if err != nil {
		return nil, err
	}
	return v.search(&scan{doc: doc, observer: LogObserver{}}), nil
}

func (v *regexVariant) search(s *scan) []Hit {
	doc := s.doc
	var hits []Hit
	for _, m := range v.re.FindAll(doc.Text, v.limits) {
		start, end, ok := s.charIndex().TokenSpan(m.Start, m.End)
		if !ok {
			continue
		}
		if !v.partial && (doc.Tokens[start].Idx != m.Start || doc.Tokens[end-1].End() != m.End) {
			continue
		}
		hits = append(hits, Hit{Start: start, End: end, Deviation: countsOf(m.Counts)})
	}
	return hits
}
