package similarity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	for _, name := range Names() {
		fn, err := Resolve(name)
		require.Nilf(t, err, "failed to resolve %v", name)
		require.EqualValuesf(t, 100, fn("hello world", "hello world"), "identical strings with %v", name)
	}
	require.Len(t, Names(), 9)

	_, err := Resolve("jaro")
	require.NotNil(t, err)
	require.True(t, errors.Is(err, ErrUnknownStrategy))
}

func TestRatio(t *testing.T) {
	testcases := []struct {
		a, b     string
		expected float64
	}{
		{a: "", b: "", expected: 100},
		{a: "abc", b: "", expected: 0},
		{a: "database", b: "databese", expected: 87.5},
		{a: "access", b: "acess", expected: 200.0 * 5 / 11},
		{a: "Sequel", b: "Sequal", expected: 200.0 * 5 / 12},
		{a: "abc", b: "xyz", expected: 0},
		{a: "café", b: "cafe", expected: 75},
		{a: "naïve", b: "naive", expected: 80},
	}
	for _, v := range testcases {
		require.InDeltaf(t, v.expected, Ratio(v.a, v.b), 0.001, "ratio of %q and %q", v.a, v.b)
	}
}

func TestPartialRatio(t *testing.T) {
	require.EqualValues(t, 100, PartialRatio("states", "united states of america"))
	require.EqualValues(t, 100, PartialRatio("united states of america", "states"))
	require.EqualValues(t, 0, PartialRatio("", "abc"))
	require.Less(t, PartialRatio("xyz", "united states"), 75.0)
}

func TestTokenRatios(t *testing.T) {
	require.EqualValues(t, 100, TokenSortRatio("states united", "united states"))
	require.EqualValues(t, 100, TokenSetRatio("the united states", "united states"))
	require.EqualValues(t, 0, TokenSetRatio("", "united states"))
	require.EqualValues(t, 100, PartialTokenSetRatio("new york city", "york"))
	require.EqualValues(t, 100, PartialTokenSortRatio("york new", "new york city"))
	require.Less(t, TokenSortRatio("alpha beta", "gamma delta"), 50.0)
}

func TestProcessedRatios(t *testing.T) {
	require.Equal(t, "united states", Process("  United-States! "))
	require.EqualValues(t, 100, QRatio("United States!", "united states"))
	require.EqualValues(t, 0, QRatio("!!!", "united states"))
	require.EqualValues(t, 100, WRatio("UNITED STATES", "united states"))
	require.Greater(t, WRatio("states", "the united states of america"), 80.0)
}

func TestQuickLevRatio(t *testing.T) {
	require.EqualValues(t, 100, QuickLevRatio("", ""))
	require.InDelta(t, 75.0, QuickLevRatio("abcd", "abce"), 0.001)
	require.EqualValues(t, 0, QuickLevRatio("abc", "xyz"))
}

func TestEditOps(t *testing.T) {
	testcases := []struct {
		pattern, text string
		expected      Ops
	}{
		{pattern: "database", text: "databese", expected: Ops{Substitutions: 1}},
		{pattern: "access", text: "acess", expected: Ops{Deletions: 1}},
		{pattern: "Prosh", text: "Prossh", expected: Ops{Insertions: 1}},
		{pattern: "same", text: "same", expected: Ops{}},
		{pattern: "", text: "abc", expected: Ops{Insertions: 3}},
	}
	for _, v := range testcases {
		got := EditOps(v.pattern, v.text)
		require.Equalf(t, v.expected, got, "edit ops of %q -> %q", v.pattern, v.text)
	}
	require.Equal(t, 2, Ops{Insertions: 1, Substitutions: 1}.Total())
}
