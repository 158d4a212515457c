package spanx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPredicateYAML(t *testing.T) {
	input := `
- TEXT: SQL
- LOWER:
    FUZZY: database
    MIN_R: 80
    FUZZY_FUNC: quick
- LOWER:
    FREGEX: (sequel){s<=1}
  POS: PROPN
- TEXT:
    fuzzy: garfield
`
	var pattern TokenPattern
	require.NoError(t, yaml.Unmarshal([]byte(input), &pattern))
	require.Len(t, pattern, 4)
	require.Equal(t, Exact("SQL"), pattern[0][AttrText])
	require.Equal(t, Fuzzy("database").WithMinRatio(80), Predicate{Fuzzy: pattern[1][AttrLower].Fuzzy, MinRatio: pattern[1][AttrLower].MinRatio})
	require.Equal(t, "quick", pattern[1][AttrLower].FuzzyFunc)
	require.Equal(t, FRegex("(sequel){s<=1}"), pattern[2][AttrLower])
	require.Equal(t, Exact("PROPN"), pattern[2][AttrPOS])
	require.Equal(t, []string{"fuzzy"}, pattern[3][AttrText].Unknown)

	kind, err := pattern[3][AttrText].kind()
	require.NoError(t, err)
	require.Equal(t, predicateUnknown, kind)

	out, err := yaml.Marshal(pattern[:3])
	require.NoError(t, err)
	var back TokenPattern
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Equal(t, pattern[:3], back)
}

func TestPredicateKind(t *testing.T) {
	_, err := Predicate{Fuzzy: "a", FRegex: "b"}.kind()
	require.True(t, errors.Is(err, ErrInvalidPatternType))
	_, err = Predicate{Value: "a", MinRatio: Int(80)}.kind()
	require.True(t, errors.Is(err, ErrInvalidPatternType))

	kind, err := Exact("").kind()
	require.NoError(t, err)
	require.Equal(t, predicateExact, kind)

	var p Predicate
	err = yaml.Unmarshal([]byte("[a, b]"), &p)
	require.True(t, errors.Is(err, ErrInvalidPatternType))
}
