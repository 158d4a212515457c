package spanx

import (
	"fmt"
	"strings"

	"github.com/projectdiscovery/spanx/fregex"
	"github.com/projectdiscovery/spanx/similarity"
	"golang.org/x/text/cases"
)

// TokenSearcher finds token windows satisfying a TokenPattern
type TokenSearcher struct{}

// NewTokenSearcher returns a token pattern searcher
func NewTokenSearcher() *TokenSearcher {
	return &TokenSearcher{}
}

type compiledPredicate struct {
	attr     Attr
	kind     predicateKind
	value    string
	score    similarity.Func
	minRatio float64
	re       *fregex.Regexp
	limits   fregex.Limits
}

type tokenVariant struct {
	sets    [][]compiledPredicate
	unknown []string
	fold    bool
}

func (ts *TokenSearcher) compile(pattern TokenPattern, opts *Options) (*tokenVariant, error) {
	if len(pattern) == 0 {
		return nil, fmt.Errorf("%w: token pattern has no predicate sets", ErrEmptyPattern)
	}
	v := &tokenVariant{fold: opts.ignoreCase(false)}
	for i, set := range pattern {
		if len(set) == 0 {
			return nil, fmt.Errorf("%w: predicate set %d is empty", ErrEmptyPattern, i)
		}
		compiled := make([]compiledPredicate, 0, len(set))
		for _, attr := range set.attrs() {
			if !attr.Valid() {
				return nil, fmt.Errorf("%w: unknown token attribute %q in predicate set %d", ErrInvalidPatternType, attr, i)
			}
			p, err := ts.compilePredicate(attr, set[attr], opts)
			if err != nil {
				return nil, fmt.Errorf("predicate set %d: %w", i, err)
			}
			if p.kind == predicateUnknown {
				for _, key := range set[attr].Unknown {
					v.unknown = append(v.unknown, fmt.Sprintf("%v.%v", attr, key))
				}
			}
			compiled = append(compiled, p)
		}
		v.sets = append(v.sets, compiled)
	}
	return v, nil
}

func (ts *TokenSearcher) compilePredicate(attr Attr, p Predicate, opts *Options) (compiledPredicate, error) {
	kind, err := p.kind()
	if err != nil {
		return compiledPredicate{}, err
	}
	c := compiledPredicate{attr: attr, kind: kind, value: p.Value}
	switch kind {
	case predicateFuzzy:
		c.value = p.Fuzzy
		c.score = opts.fuzzyFunc()
		if p.FuzzyFunc != "" {
			if c.score, err = similarity.Resolve(p.FuzzyFunc); err != nil {
				return c, err
			}
		}
		ratio := opts.minRatio()
		if p.MinRatio != nil {
			ratio = *p.MinRatio
			if ratio < 0 || ratio > 100 {
				return c, fmt.Errorf("%w: %v must be within 0-100, got %d", ErrInvalidOptions, DirectiveMinRatio, ratio)
			}
		}
		c.minRatio = float64(ratio)
	case predicateFRegex:
		c.value = p.FRegex
		if c.re, err = fregex.Compile(p.FRegex, opts.regexFlags()); err != nil {
			return c, err
		}
		c.limits = opts.limits()
	}
	return c, nil
}

// Search returns every window of doc satisfying pattern. opts may be nil.
func (ts *TokenSearcher) Search(doc *Doc, pattern TokenPattern, opts *Options) ([]Hit, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	v, err := ts.compile(pattern, opts.Merge(nil))
	if err != nil {
		return nil, err
	}
	return v.search(&scan{doc: doc, observer: LogObserver{}}), nil
}

func (v *tokenVariant) search(s *scan) []Hit {
	if len(v.unknown) > 0 {
		s.warn(WarnUnknownPredicateKey, "unknown predicate keys %v, pattern cannot match", strings.Join(v.unknown, ", "))
		return nil
	}
	tokens := s.doc.Tokens
	size := len(v.sets)
	var hits []Hit
	for start := 0; start+size <= len(tokens); start++ {
		dev, ok := v.window(tokens[start : start+size])
		if ok {
			hits = append(hits, Hit{Start: start, End: start + size, Deviation: dev})
		}
	}
	return hits
}

// window reports whether every predicate set holds for its token. The
// deviation is the one of the rightmost set that produced one.
func (v *tokenVariant) window(tokens []Token) (Deviation, bool) {
	dev := NoDeviation()
	for i := range v.sets {
		for _, p := range v.sets[i] {
			d, ok := v.eval(&p, &tokens[i])
			if !ok {
				return Deviation{}, false
			}
			if !d.IsNone() {
				dev = d
			}
		}
	}
	return dev, true
}

func (v *tokenVariant) eval(p *compiledPredicate, t *Token) (Deviation, bool) {
	value := p.attr.Value(t)
	switch p.kind {
	case predicateExact:
		return NoDeviation(), value == p.value
	case predicateFuzzy:
		target := p.value
		if v.fold {
			target, value = cases.Fold().String(target), cases.Fold().String(value)
		}
		if p.score(target, value) < p.minRatio {
			return Deviation{}, false
		}
		return opsOf(similarity.EditOps(target, value)), true
	case predicateFRegex:
		m, ok := p.re.Find(value, p.limits)
		if !ok {
			return Deviation{}, false
		}
		return countsOf(m.Counts), true
	}
	return Deviation{}, false
}
