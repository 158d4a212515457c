package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func texts(pieces []Piece) []string {
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		out = append(out, p.Text)
	}
	return out
}

func TestTokenize(t *testing.T) {
	testcases := []struct {
		text     string
		expected []string
	}{
		{text: "I live in the united states, or the US", expected: []string{"I", "live", "in", "the", "united", "states", ",", "or", "the", "US"}},
		{text: `I live in the "United States", or the US.`, expected: []string{"I", "live", "in", "the", `"`, "United", "States", `"`, ",", "or", "the", "US", "."}},
		{text: "My manager's name is Grfield.", expected: []string{"My", "manager", "'s", "name", "is", "Grfield", "."}},
		{text: "we don't (really)", expected: []string{"we", "do", "n't", "(", "really", ")"}},
		{text: "  \n ", expected: []string{}},
	}
	for _, v := range testcases {
		require.Equal(t, v.expected, texts(Tokenize(v.text)), v.text)
	}
}

func TestTokenizeOffsets(t *testing.T) {
	text := "héllo,  wörld"
	pieces := Tokenize(text)
	require.Len(t, pieces, 3)
	for _, p := range pieces {
		require.Equal(t, p.Text, text[p.Idx:p.Idx+len(p.Text)])
	}
	require.Equal(t, "", pieces[0].Whitespace)
	require.Equal(t, "  ", pieces[1].Whitespace)
	require.Equal(t, "", pieces[2].Whitespace)
}

func TestShape(t *testing.T) {
	testcases := map[string]string{
		"Apple":    "Xxxxx",
		"SQL":      "XXX",
		"12345678": "dddd",
		"C3-PO":    "Xd-XX",
		"database": "xxxx",
	}
	for input, expected := range testcases {
		require.Equal(t, expected, Shape(input), input)
	}
	require.Equal(t, "fi", Norm("ﬁ"))
}
