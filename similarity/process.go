package similarity

import (
	"sort"
	"strings"
	"unicode"

	sliceutil "github.com/projectdiscovery/utils/slice"
	"golang.org/x/text/cases"
)

// Process applies the default preprocessing of QRatio and WRatio:
// case folding, every non alphanumeric rune replaced by a space, and
// surrounding whitespace trimmed.
func Process(s string) string {
	folded := cases.Fold().String(s)
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return ' '
	}, folded)
	return strings.TrimSpace(mapped)
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}

// tokenSets holds the sorted token intersection and differences of two strings
type tokenSets struct {
	inter, onlyA, onlyB []string
	sizeA, sizeB        int
}

func newTokenSets(a, b string) tokenSets {
	tokensA := sliceutil.Dedupe(strings.Fields(a))
	tokensB := sliceutil.Dedupe(strings.Fields(b))
	inB := make(map[string]struct{}, len(tokensB))
	for _, t := range tokensB {
		inB[t] = struct{}{}
	}
	inA := make(map[string]struct{}, len(tokensA))
	ts := tokenSets{sizeA: len(tokensA), sizeB: len(tokensB)}
	for _, t := range tokensA {
		inA[t] = struct{}{}
		if _, ok := inB[t]; ok {
			ts.inter = append(ts.inter, t)
		} else {
			ts.onlyA = append(ts.onlyA, t)
		}
	}
	for _, t := range tokensB {
		if _, ok := inA[t]; !ok {
			ts.onlyB = append(ts.onlyB, t)
		}
	}
	sort.Strings(ts.inter)
	sort.Strings(ts.onlyA)
	sort.Strings(ts.onlyB)
	return ts
}

func (ts tokenSets) empty() bool {
	return ts.sizeA == 0 || ts.sizeB == 0
}
