package spanx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newRegexMatcher(t *testing.T) *RegexMatcher {
	rm, err := NewRegexMatcher(&MatcherOptions{Observer: &recorder{}})
	require.NoError(t, err)
	return rm
}

func TestRegexMatcherGPE(t *testing.T) {
	rm := newRegexMatcher(t)
	require.NoError(t, rm.Add("GPE", []string{"(united states){e<=1}", `\bUS\b`}, nil, nil))

	doc := FromText("I live in the united states, or the US")
	matches := rm.Match(doc)
	require.Equal(t, []Match{
		{Label: "GPE", Start: 4, End: 6, Deviation: CountsDeviation(0, 0, 0)},
		{Label: "GPE", Start: 9, End: 10, Deviation: CountsDeviation(0, 0, 0)},
	}, matches)
	require.Equal(t, "united states", matches[0].Text(doc))

	doc = FromText("I live in the unitd states")
	require.Equal(t, []Match{
		{Label: "GPE", Start: 4, End: 6, Deviation: CountsDeviation(0, 1, 0)},
	}, rm.Match(doc))
}

func TestRegexMatcherNoMatches(t *testing.T) {
	rm := newRegexMatcher(t)
	matches := rm.Match(FromText("nothing registered"))
	require.NotNil(t, matches)
	require.Empty(t, matches)

	require.NoError(t, rm.Add("GPE", []string{"canada"}, nil, nil))
	matches = rm.Match(FromText("I live in the united states"))
	require.NotNil(t, matches)
	require.Empty(t, matches)
	require.Empty(t, rm.Match(&Doc{}))
}

func TestRegexMatcherIgnoreCase(t *testing.T) {
	rm, err := NewRegexMatcher(&MatcherOptions{Defaults: &Options{IgnoreCase: Bool(true)}})
	require.NoError(t, err)
	require.NoError(t, rm.Add("GPE", []string{"united states"}, nil, nil))
	require.NoError(t, rm.Add("STRICT", []string{"united states"}, []*Options{{IgnoreCase: Bool(false)}}, nil))

	matches := rm.Match(FromText("The United States"))
	require.Equal(t, []Match{{Label: "GPE", Start: 1, End: 3, Deviation: CountsDeviation(0, 0, 0)}}, matches)
}

func TestRegexMatcherPredefined(t *testing.T) {
	rm := newRegexMatcher(t)
	predefined := []*Options{{Predefined: Bool(true)}}
	require.NoError(t, rm.Add("EMAIL", []string{"emails"}, predefined, nil))
	require.NoError(t, rm.Add("PHONE", []string{"phones"}, predefined, nil))

	doc := FromText("Contact me at jane.doe@example.com or 555-123-4567.")
	require.Equal(t, []Match{
		{Label: "EMAIL", Start: 3, End: 4, Deviation: CountsDeviation(0, 0, 0)},
		{Label: "PHONE", Start: 5, End: 6, Deviation: CountsDeviation(0, 0, 0)},
	}, rm.Match(doc))
}

func TestRegexMatcherPartial(t *testing.T) {
	rm := newRegexMatcher(t)
	require.NoError(t, rm.Add("EXPANDED", []string{"ana"}, nil, nil))
	require.NoError(t, rm.Add("ALIGNED", []string{"ana", "banana"}, []*Options{{Partial: Bool(false)}, {Partial: Bool(false)}}, nil))

	require.Equal(t, []Match{
		{Label: "ALIGNED", Start: 0, End: 1, Deviation: CountsDeviation(0, 0, 0)},
		{Label: "EXPANDED", Start: 0, End: 1, Deviation: CountsDeviation(0, 0, 0)},
	}, rm.Match(FromText("banana split")))
}

func TestRegexMatcherFuzzyLimits(t *testing.T) {
	rm := newRegexMatcher(t)
	require.NoError(t, rm.Add("DB", []string{"(database){e<=1}"}, []*Options{{MaxSubstitutions: Int(0)}}, nil))

	require.Empty(t, rm.Match(FromText("the databese is down")))
	require.Equal(t, []Match{{Label: "DB", Start: 1, End: 2, Deviation: CountsDeviation(0, 1, 0)}}, rm.Match(FromText("the databse is down")))
}

func TestRegexMatcherDedupe(t *testing.T) {
	rm := newRegexMatcher(t)
	require.NoError(t, rm.Add("GPE", []string{`\bUS\b`}, nil, nil))
	require.NoError(t, rm.Add("GPE", []string{`\bUS\b`}, nil, nil))

	matches := rm.Match(FromText("the US and the US"))
	require.Equal(t, []Match{
		{Label: "GPE", Start: 1, End: 2, Deviation: CountsDeviation(0, 0, 0)},
		{Label: "GPE", Start: 4, End: 5, Deviation: CountsDeviation(0, 0, 0)},
	}, matches)
}

func TestRegexMatcherOrdering(t *testing.T) {
	rm := newRegexMatcher(t)
	require.NoError(t, rm.Add("B", []string{"new", `new york city`}, nil, nil))
	require.NoError(t, rm.Add("A", []string{"new york", "york"}, nil, nil))

	doc := FromText("I love new york city")
	first := rm.Match(doc)
	require.Equal(t, []Match{
		{Label: "B", Start: 2, End: 5, Deviation: CountsDeviation(0, 0, 0)},
		{Label: "A", Start: 2, End: 4, Deviation: CountsDeviation(0, 0, 0)},
		{Label: "B", Start: 2, End: 3, Deviation: CountsDeviation(0, 0, 0)},
		{Label: "A", Start: 3, End: 4, Deviation: CountsDeviation(0, 0, 0)},
	}, first)
	require.Equal(t, first, rm.Match(doc), "matching is idempotent")

	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		require.True(t, prev.Start < cur.Start || (prev.Start == cur.Start && prev.End >= cur.End))
	}
	for _, m := range first {
		require.True(t, 0 <= m.Start && m.Start < m.End && m.End <= doc.Len())
	}
}

func TestRegexSearcher(t *testing.T) {
	doc := FromText("cost $42 now")
	hits, err := NewRegexSearcher(nil).Search(doc, `(?<=\$)\d+`, nil)
	require.NoError(t, err)
	require.Equal(t, []Hit{{Start: 1, End: 2, Deviation: CountsDeviation(0, 0, 0)}}, hits)
}
