package spanx

import (
	"errors"
	"testing"

	"github.com/projectdiscovery/spanx/fregex"
	"github.com/stretchr/testify/require"
)

func TestOptionsMerge(t *testing.T) {
	defaults := &Options{MinRatio: Int(80), IgnoreCase: Bool(true), Flags: map[string]bool{"m": true}}
	variant := &Options{MinRatio: Int(60), Flags: map[string]bool{"s": true, "m": false}}

	merged := variant.Merge(defaults)
	require.Equal(t, 60, merged.minRatio())
	require.True(t, merged.ignoreCase(false))
	require.Equal(t, map[string]bool{"m": false, "s": true}, merged.Flags)
	require.Equal(t, 60, *variant.MinRatio, "merge does not modify its receiver")
	require.Nil(t, variant.IgnoreCase)

	var none *Options
	merged = none.Merge(defaults)
	require.Equal(t, 80, merged.minRatio())
	merged = none.Merge(nil)
	require.Equal(t, DefaultMinRatio, merged.minRatio())
	require.Equal(t, DefaultMinCandidateRatio, merged.minCandidateRatio())
	require.True(t, merged.partial())
	require.False(t, merged.predefined())
	require.Equal(t, fregex.NoLimits, merged.limits())
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, (*Options)(nil).Validate())
	require.NoError(t, (&Options{MinRatio: Int(100), FuzzyFunc: String("token_set")}).Validate())

	err := (&Options{MinRatio: Int(101)}).Validate()
	require.True(t, errors.Is(err, ErrInvalidOptions))
	err = (&Options{MaxDeletions: Int(-1)}).Validate()
	require.True(t, errors.Is(err, ErrInvalidOptions))
	err = (&Options{FuzzyFunc: String("levenshtein")}).Validate()
	require.True(t, errors.Is(err, ErrUnknownStrategy))

	// several invalid fields always report the first in field order
	invalid := &Options{MinRatio: Int(101), MinCandidateRatio: Int(-1), Flex: Int(-1), MaxSubstitutions: Int(-2)}
	for i := 0; i < 20; i++ {
		err = invalid.Validate()
		require.ErrorContains(t, err, "min_ratio must be within 0-100, got 101")
	}
	err = (&Options{Flex: Int(-1), MaxInsertions: Int(-1), MaxSubstitutions: Int(-1)}).Validate()
	require.ErrorContains(t, err, "flex cannot be negative")
}

func TestOptionsRegexFlags(t *testing.T) {
	opts := &Options{IgnoreCase: Bool(true), Flags: map[string]bool{"s": true, "x": true, "U": false, "multiline": true}}
	require.Equal(t, "is", opts.regexFlags())
	require.Equal(t, "", (&Options{}).regexFlags())
	require.True(t, (&Options{}).IsEmpty())
	require.False(t, opts.IsEmpty())
}

func TestOptionsLimits(t *testing.T) {
	opts := &Options{MaxSubstitutions: Int(1)}
	require.Equal(t, fregex.Limits{MaxInsertions: -1, MaxDeletions: -1, MaxSubstitutions: 1}, opts.limits())
}
