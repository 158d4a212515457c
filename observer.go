package spanx

import "github.com/projectdiscovery/gologger"

// WarningKind classifies advisory diagnostics
type WarningKind int

const (
	// WarnMissingOptions means fewer option sets than patterns were given
	WarnMissingOptions WarningKind = iota + 1
	// WarnExtraOptions means more option sets than patterns were given
	WarnExtraOptions
	// WarnUnknownPredicateKey means a token pattern used an unknown directive
	WarnUnknownPredicateKey
)

func (k WarningKind) String() string {
	switch k {
	case WarnMissingOptions:
		return "missing-options"
	case WarnExtraOptions:
		return "extra-options"
	case WarnUnknownPredicateKey:
		return "unknown-predicate-key"
	}
	return "unknown"
}

// Warning is a non fatal diagnostic raised while adding or matching patterns
type Warning struct {
	Kind    WarningKind
	Label   string
	Message string
}

// Observer receives warnings
type Observer interface {
	Warn(w Warning)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(w Warning)

// Warn calls f(w)
func (f ObserverFunc) Warn(w Warning) {
	f(w)
}

// LogObserver forwards warnings to gologger
type LogObserver struct{}

// Warn logs w at warning level
func (LogObserver) Warn(w Warning) {
	gologger.Warning().Str("kind", w.Kind.String()).Msgf("%v: %v", w.Label, w.Message)
}
