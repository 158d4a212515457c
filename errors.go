package spanx

import (
	"github.com/projectdiscovery/spanx/fregex"
	"github.com/projectdiscovery/spanx/similarity"
	"github.com/projectdiscovery/utils/errkit"
)

var (
	// ErrInvalidPatternType is returned when a pattern is not of the shape a matcher expects
	ErrInvalidPatternType = errkit.New("invalid pattern type")
	// ErrEmptyPattern is returned for token patterns without predicates
	ErrEmptyPattern = errkit.New("empty token pattern")
	// ErrUnknownLabel is returned when removing a label that was never added
	ErrUnknownLabel = errkit.New("label does not exist within the matcher rules")
	// ErrUnknownPredefinedPattern is returned when a predefined alias is not found
	ErrUnknownPredefinedPattern = errkit.New("unknown predefined pattern")
	// ErrInvalidOptions is returned for out of range option values
	ErrInvalidOptions = errkit.New("invalid matcher options")
	// ErrInvalidDocument is returned when tokens do not fit their text
	ErrInvalidDocument = errkit.New("invalid document")

	// ErrUnknownStrategy is returned when a fuzzy_func name is not registered
	ErrUnknownStrategy = similarity.ErrUnknownStrategy
	// ErrPatternCompile is returned for malformed regex sources
	ErrPatternCompile = fregex.ErrCompile
)
