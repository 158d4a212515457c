package spanx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/projectdiscovery/spanx/fregex"
	"github.com/projectdiscovery/spanx/similarity"
)

// built-in defaults used when neither a pattern nor its matcher set a value
const (
	DefaultMinRatio          = 75
	DefaultMinCandidateRatio = 25
	DefaultFuzzyFunc         = similarity.Simple
)

// inline regex flags forwarded from Options.Flags
const passthroughFlags = "imsU"

// Options is the keyword configuration of one pattern variant or the
// defaults of a matcher. Nil fields are unset and resolve to the matcher
// default, then to the built-in default.
type Options struct {
	// MinRatio is the similarity (0-100) a fuzzy match must reach
	MinRatio *int `yaml:"min_ratio,omitempty"`
	// MinCandidateRatio is the similarity a window needs before fuzzy
	// phrase search refines its boundaries
	MinCandidateRatio *int `yaml:"min_candidate_ratio,omitempty"`
	// FuzzyFunc names the similarity scorer (see similarity.Names)
	FuzzyFunc *string `yaml:"fuzzy_func,omitempty"`
	// Predefined resolves the pattern through the predefined alias table
	Predefined *bool `yaml:"predefined,omitempty"`
	// IgnoreCase matches case insensitively
	IgnoreCase *bool `yaml:"ignore_case,omitempty"`
	// Partial expands regex matches that cut through a token to the whole
	// token; when false such matches are dropped
	Partial *bool `yaml:"partial,omitempty"`
	// Flex is how many tokens fuzzy phrase search may move each boundary
	Flex *int `yaml:"flex,omitempty"`
	// MaxInsertions, MaxDeletions and MaxSubstitutions cap the edits of a
	// fuzzy regex match
	MaxInsertions    *int `yaml:"max_insertions,omitempty"`
	MaxDeletions     *int `yaml:"max_deletions,omitempty"`
	MaxSubstitutions *int `yaml:"max_substitutions,omitempty"`
	// Flags holds inline regex flags (i, m, s, U); other keys are ignored
	Flags map[string]bool `yaml:"flags,omitempty"`
}

// Int returns a pointer to v
func Int(v int) *int { return &v }

// Bool returns a pointer to v
func Bool(v bool) *bool { return &v }

// String returns a pointer to v
func String(v string) *string { return &v }

// IsEmpty reports whether no field is set
func (o *Options) IsEmpty() bool {
	return o == nil || (o.MinRatio == nil && o.MinCandidateRatio == nil && o.FuzzyFunc == nil &&
		o.Predefined == nil && o.IgnoreCase == nil && o.Partial == nil && o.Flex == nil &&
		o.MaxInsertions == nil && o.MaxDeletions == nil && o.MaxSubstitutions == nil && len(o.Flags) == 0)
}

// Merge returns a copy of o where every unset field is taken from defaults
func (o *Options) Merge(defaults *Options) *Options {
	merged := &Options{}
	if o != nil {
		*merged = *o
	}
	if defaults == nil {
		return merged
	}
	pick(&merged.MinRatio, defaults.MinRatio)
	pick(&merged.MinCandidateRatio, defaults.MinCandidateRatio)
	pick(&merged.FuzzyFunc, defaults.FuzzyFunc)
	pick(&merged.Predefined, defaults.Predefined)
	pick(&merged.IgnoreCase, defaults.IgnoreCase)
	pick(&merged.Partial, defaults.Partial)
	pick(&merged.Flex, defaults.Flex)
	pick(&merged.MaxInsertions, defaults.MaxInsertions)
	pick(&merged.MaxDeletions, defaults.MaxDeletions)
	pick(&merged.MaxSubstitutions, defaults.MaxSubstitutions)
	if len(defaults.Flags) > 0 {
		flags := make(map[string]bool, len(defaults.Flags)+len(merged.Flags))
		for k, v := range defaults.Flags {
			flags[k] = v
		}
		for k, v := range merged.Flags {
			flags[k] = v
		}
		merged.Flags = flags
	}
	return merged
}

func pick[T any](dst **T, fallback *T) {
	if *dst == nil && fallback != nil {
		v := *fallback
		*dst = &v
	}
}

type namedInt struct {
	name  string
	value *int
}

// Validate checks value ranges and that FuzzyFunc names a registered scorer
func (o *Options) Validate() error {
	if o == nil {
		return nil
	}
	ratios := []namedInt{
		{"min_ratio", o.MinRatio},
		{"min_candidate_ratio", o.MinCandidateRatio},
	}
	for _, r := range ratios {
		if r.value != nil && (*r.value < 0 || *r.value > 100) {
			return fmt.Errorf("%w: %v must be within 0-100, got %d", ErrInvalidOptions, r.name, *r.value)
		}
	}
	counts := []namedInt{
		{"flex", o.Flex},
		{"max_insertions", o.MaxInsertions},
		{"max_deletions", o.MaxDeletions},
		{"max_substitutions", o.MaxSubstitutions},
	}
	for _, c := range counts {
		if c.value != nil && *c.value < 0 {
			return fmt.Errorf("%w: %v cannot be negative, got %d", ErrInvalidOptions, c.name, *c.value)
		}
	}
	if o.FuzzyFunc != nil {
		if _, err := similarity.Resolve(*o.FuzzyFunc); err != nil {
			return err
		}
	}
	return nil
}

func (o *Options) minRatio() int {
	return intOr(o.MinRatio, DefaultMinRatio)
}

func (o *Options) minCandidateRatio() int {
	return intOr(o.MinCandidateRatio, DefaultMinCandidateRatio)
}

func (o *Options) fuzzyFunc() similarity.Func {
	name := DefaultFuzzyFunc
	if o.FuzzyFunc != nil {
		name = *o.FuzzyFunc
	}
	fn, err := similarity.Resolve(name)
	if err != nil {
		// names are validated when patterns are added
		return similarity.Ratio
	}
	return fn
}

func (o *Options) ignoreCase(fallback bool) bool {
	if o.IgnoreCase != nil {
		return *o.IgnoreCase
	}
	return fallback
}

func (o *Options) predefined() bool {
	return o.Predefined != nil && *o.Predefined
}

func (o *Options) partial() bool {
	return o.Partial == nil || *o.Partial
}

// regexFlags returns the inline flag letters for the regex engine
func (o *Options) regexFlags() string {
	set := map[rune]bool{}
	for k, v := range o.Flags {
		if v && len(k) == 1 && strings.Contains(passthroughFlags, k) {
			set[rune(k[0])] = true
		}
	}
	if o.ignoreCase(false) {
		set['i'] = true
	}
	flags := make([]string, 0, len(set))
	for r := range set {
		flags = append(flags, string(r))
	}
	sort.Strings(flags)
	return strings.Join(flags, "")
}

func (o *Options) limits() fregex.Limits {
	return fregex.Limits{
		MaxInsertions:    intOr(o.MaxInsertions, -1),
		MaxDeletions:     intOr(o.MaxDeletions, -1),
		MaxSubstitutions: intOr(o.MaxSubstitutions, -1),
	}
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
