package spanx

import (
	"fmt"
	"sort"

	mapsutil "github.com/projectdiscovery/utils/maps"
)

// PatternKind names the pattern family of a matcher
type PatternKind string

const (
	KindRegex PatternKind = "regex"
	KindFuzzy PatternKind = "fuzzy"
	KindToken PatternKind = "token"
)

// PatternInfo describes one stored pattern variant
type PatternInfo[P any] struct {
	Label   string
	Pattern P
	Kind    PatternKind
	// Options are the options given at registration, nil if none
	Options *Options
}

// searcher is a prepared pattern variant
type searcher interface {
	search(s *scan) []Hit
}

type variant[P any] struct {
	pattern  P
	options  *Options
	compiled searcher
}

// prepareFunc validates a pattern with its merged options and returns the
// prepared variant
type prepareFunc[P any] func(pattern P, options *Options) (searcher, error)

// Store keeps the pattern variants and callbacks of a matcher by label.
// Variants of a label are only ever appended; Remove drops a whole label.
// A Store is not safe for concurrent use.
type Store[P any] struct {
	kind      PatternKind
	defaults  *Options
	observer  Observer
	prepare   prepareFunc[P]
	order     []string
	variants  map[string][]variant[P]
	callbacks map[string]OnMatch
}

func newStore[P any](kind PatternKind, defaults *Options, observer Observer, prepare prepareFunc[P]) (*Store[P], error) {
	if err := defaults.Validate(); err != nil {
		return nil, err
	}
	if observer == nil {
		observer = LogObserver{}
	}
	if defaults == nil {
		defaults = &Options{}
	}
	return &Store[P]{
		kind:      kind,
		defaults:  defaults,
		observer:  observer,
		prepare:   prepare,
		variants:  map[string][]variant[P]{},
		callbacks: map[string]OnMatch{},
	}, nil
}

// Add registers patterns under label. options align with patterns by
// position; missing entries use the matcher defaults and extra entries are
// ignored, both with a warning. Adding to an existing label appends the
// variants and replaces its callback. Nothing is stored when an error is
// returned.
func (s *Store[P]) Add(label string, patterns []P, options []*Options, onMatch OnMatch) error {
	if patterns == nil {
		return fmt.Errorf("%w: %v: patterns must be a list", ErrInvalidPatternType, label)
	}
	added := make([]variant[P], 0, len(patterns))
	for i, pattern := range patterns {
		var opts *Options
		if i < len(options) && !options[i].IsEmpty() {
			opts = options[i]
		}
		if err := opts.Validate(); err != nil {
			return fmt.Errorf("%v pattern %d: %w", label, i, err)
		}
		compiled, err := s.prepare(pattern, opts.Merge(s.defaults))
		if err != nil {
			return fmt.Errorf("%v pattern %d: %w", label, i, err)
		}
		added = append(added, variant[P]{pattern: pattern, options: opts, compiled: compiled})
	}
	s.warnOptionCount(label, len(patterns), options)

	if _, ok := s.variants[label]; !ok {
		s.order = append(s.order, label)
	}
	s.variants[label] = append(s.variants[label], added...)
	if onMatch != nil {
		s.callbacks[label] = onMatch
	} else {
		delete(s.callbacks, label)
	}
	return nil
}

// warnOptionCount reports option lists that do not line up with patterns.
// A nil list means defaults for every pattern and is not reported.
func (s *Store[P]) warnOptionCount(label string, patterns int, options []*Options) {
	switch {
	case options != nil && len(options) < patterns:
		s.observer.Warn(Warning{
			Kind:    WarnMissingOptions,
			Label:   label,
			Message: fmt.Sprintf("%d option sets given for %d patterns, defaults used for the rest", len(options), patterns),
		})
	case len(options) > patterns:
		s.observer.Warn(Warning{
			Kind:    WarnExtraOptions,
			Label:   label,
			Message: fmt.Sprintf("%d option sets given for %d patterns, extras ignored", len(options), patterns),
		})
	}
}

// Remove deletes every variant and the callback of label
func (s *Store[P]) Remove(label string) error {
	if _, ok := s.variants[label]; !ok {
		return fmt.Errorf("%w: %v", ErrUnknownLabel, label)
	}
	delete(s.variants, label)
	delete(s.callbacks, label)
	for i, l := range s.order {
		if l == label {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Contains reports whether label is registered
func (s *Store[P]) Contains(label string) bool {
	_, ok := s.variants[label]
	return ok
}

// Labels returns the registered labels in sorted order
func (s *Store[P]) Labels() []string {
	labels := mapsutil.GetKeys(s.variants)
	sort.Strings(labels)
	return labels
}

// Len returns the number of registered labels
func (s *Store[P]) Len() int {
	return len(s.variants)
}

// Patterns returns every stored variant in registration order
func (s *Store[P]) Patterns() []PatternInfo[P] {
	var out []PatternInfo[P]
	for _, label := range s.order {
		for _, v := range s.variants[label] {
			out = append(out, PatternInfo[P]{Label: label, Pattern: v.pattern, Kind: s.kind, Options: v.options})
		}
	}
	return out
}

// Defaults returns the matcher level options
func (s *Store[P]) Defaults() *Options {
	return s.defaults
}
