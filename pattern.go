package spanx

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// directive keys of a token predicate
const (
	DirectiveFuzzy     = "FUZZY"
	DirectiveFRegex    = "FREGEX"
	DirectiveMinRatio  = "MIN_R"
	DirectiveFuzzyFunc = "FUZZY_FUNC"
)

type predicateKind int

const (
	predicateExact predicateKind = iota
	predicateFuzzy
	predicateFRegex
	predicateUnknown
)

// Predicate constrains one token attribute. It is either a literal Value
// compared exactly, a FUZZY directive scored against Fuzzy, or a FREGEX
// directive searched with the FRegex expression.
type Predicate struct {
	Value  string
	Fuzzy  string
	FRegex string
	// MinRatio overrides the pattern's min_ratio for a FUZZY directive
	MinRatio *int
	// FuzzyFunc overrides the pattern's fuzzy_func for a FUZZY directive
	FuzzyFunc string
	// Unknown lists directive keys that were not recognized
	Unknown []string
}

// Exact returns a literal predicate
func Exact(value string) Predicate {
	return Predicate{Value: value}
}

// Fuzzy returns a FUZZY directive for target
func Fuzzy(target string) Predicate {
	return Predicate{Fuzzy: target}
}

// FRegex returns a FREGEX directive for expr
func FRegex(expr string) Predicate {
	return Predicate{FRegex: expr}
}

// WithMinRatio returns a copy of p with its own minimum ratio
func (p Predicate) WithMinRatio(ratio int) Predicate {
	p.MinRatio = Int(ratio)
	return p
}

func (p Predicate) kind() (predicateKind, error) {
	switch {
	case p.Fuzzy != "" && p.FRegex != "":
		return 0, fmt.Errorf("%w: predicate cannot carry both %v and %v", ErrInvalidPatternType, DirectiveFuzzy, DirectiveFRegex)
	case len(p.Unknown) > 0:
		return predicateUnknown, nil
	case p.Fuzzy != "":
		return predicateFuzzy, nil
	case p.FRegex != "":
		return predicateFRegex, nil
	}
	if p.MinRatio != nil || p.FuzzyFunc != "" {
		return 0, fmt.Errorf("%w: %v and %v need a %v directive", ErrInvalidPatternType, DirectiveMinRatio, DirectiveFuzzyFunc, DirectiveFuzzy)
	}
	return predicateExact, nil
}

// MarshalYAML writes literals as scalars and directives as mappings
func (p Predicate) MarshalYAML() (interface{}, error) {
	kind, err := p.kind()
	if err != nil {
		return nil, err
	}
	if kind == predicateExact {
		return p.Value, nil
	}
	out := map[string]interface{}{}
	if p.Fuzzy != "" {
		out[DirectiveFuzzy] = p.Fuzzy
	}
	if p.FRegex != "" {
		out[DirectiveFRegex] = p.FRegex
	}
	if p.MinRatio != nil {
		out[DirectiveMinRatio] = *p.MinRatio
	}
	if p.FuzzyFunc != "" {
		out[DirectiveFuzzyFunc] = p.FuzzyFunc
	}
	for _, k := range p.Unknown {
		out[k] = nil
	}
	return out, nil
}

// UnmarshalYAML reads `TEXT: SQL` style literals and
// `LOWER: {FUZZY: database, MIN_R: 80}` style directives. Unrecognized
// directive keys are kept so matching can report them.
func (p *Predicate) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*p = Predicate{Value: value.Value}
		return nil
	case yaml.MappingNode:
	default:
		return fmt.Errorf("%w: predicate at line %d must be a scalar or a mapping", ErrInvalidPatternType, value.Line)
	}
	parsed := Predicate{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var err error
		switch key.Value {
		case DirectiveFuzzy:
			err = val.Decode(&parsed.Fuzzy)
		case DirectiveFRegex:
			err = val.Decode(&parsed.FRegex)
		case DirectiveMinRatio:
			var ratio int
			err = val.Decode(&ratio)
			parsed.MinRatio = &ratio
		case DirectiveFuzzyFunc:
			err = val.Decode(&parsed.FuzzyFunc)
		default:
			parsed.Unknown = append(parsed.Unknown, key.Value)
		}
		if err != nil {
			return fmt.Errorf("%w: directive %v: %v", ErrInvalidPatternType, key.Value, err)
		}
	}
	sort.Strings(parsed.Unknown)
	*p = parsed
	return nil
}

// PredicateSet holds the constraints a single token must satisfy
type PredicateSet map[Attr]Predicate

// attrs returns the selectors of s in sorted order
func (s PredicateSet) attrs() []Attr {
	attrs := make([]Attr, 0, len(s))
	for a := range s {
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i] < attrs[j] })
	return attrs
}

// TokenPattern is a sequence of predicate sets, one per matched token
type TokenPattern []PredicateSet
