// Package similarity provides the named string scorers used by fuzzy
// predicates and fuzzy phrase search. Every scorer returns a similarity
// between 0 and 100.
package similarity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/hbollon/go-edlib"
	"github.com/projectdiscovery/utils/errkit"
)

// ErrUnknownStrategy is returned when a scorer name is not registered
var ErrUnknownStrategy = errkit.New("unknown fuzzy matching function")

// Func scores the similarity of a and b in the range [0,100]
type Func func(a, b string) float64

// Scorer names accepted by Resolve
const (
	Simple           = "simple"
	Partial          = "partial"
	TokenSet         = "token_set"
	TokenSort        = "token_sort"
	PartialTokenSet  = "partial_token_set"
	PartialTokenSort = "partial_token_sort"
	Quick            = "quick"
	Weighted         = "weighted"
	QuickLev         = "quick_lev"
)

var registry = map[string]Func{
	Simple:           Ratio,
	Partial:          PartialRatio,
	TokenSet:         TokenSetRatio,
	TokenSort:        TokenSortRatio,
	PartialTokenSet:  PartialTokenSetRatio,
	PartialTokenSort: PartialTokenSortRatio,
	Quick:            QRatio,
	Weighted:         WRatio,
	QuickLev:         QuickLevRatio,
}

// Resolve returns the scorer registered under name
func Resolve(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (must be one of %v)", ErrUnknownStrategy, name, Names())
	}
	return fn, nil
}

// Names returns all registered scorer names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Ratio is the normalized InDel similarity of a and b.
func Ratio(a, b string) float64 {
	return runeRatio([]rune(a), []rune(b))
}

func runeRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return 200 * float64(edlib.LCS(string(a), string(b))) / float64(total)
}

// PartialRatio returns the best Ratio of the shorter string against
// every equally long window of the longer one. Windows clipped by either
// edge of the longer string are considered as well.
func PartialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}
	best := 0.0
	n := len(short)
	for i := 0; i+n <= len(long); i++ {
		if r := runeRatio(short, long[i:i+n]); r > best {
			best = r
			if best == 100 {
				return best
			}
		}
	}
	for k := 1; k < n && k <= len(long); k++ {
		if r := runeRatio(short, long[:k]); r > best {
			best = r
		}
		if r := runeRatio(short, long[len(long)-k:]); r > best {
			best = r
		}
	}
	return best
}

// TokenSortRatio compares both strings after sorting their whitespace
// separated tokens.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

// PartialTokenSortRatio is PartialRatio over the token sorted strings
func PartialTokenSortRatio(a, b string) float64 {
	return PartialRatio(sortedTokens(a), sortedTokens(b))
}

// TokenSetRatio compares the token intersection of a and b against each
// side's remainder and keeps the best score.
func TokenSetRatio(a, b string) float64 {
	ts := newTokenSets(a, b)
	if ts.empty() {
		return 0
	}
	if len(ts.inter) > 0 && (len(ts.onlyA) == 0 || len(ts.onlyB) == 0) {
		return 100
	}
	sect := strings.Join(ts.inter, " ")
	sectA := joinNonEmpty(sect, strings.Join(ts.onlyA, " "))
	sectB := joinNonEmpty(sect, strings.Join(ts.onlyB, " "))
	best := Ratio(sectA, sectB)
	if sect != "" {
		best = max(best, Ratio(sect, sectA), Ratio(sect, sectB))
	}
	return best
}

// PartialTokenSetRatio is 100 when both strings share a token, otherwise
// the PartialRatio of their token differences.
func PartialTokenSetRatio(a, b string) float64 {
	ts := newTokenSets(a, b)
	if ts.empty() {
		return 0
	}
	if len(ts.inter) > 0 {
		return 100
	}
	return PartialRatio(strings.Join(ts.onlyA, " "), strings.Join(ts.onlyB, " "))
}

// QRatio is Ratio over default processed strings. An empty processed
// string scores 0.
func QRatio(a, b string) float64 {
	a, b = Process(a), Process(b)
	if a == "" || b == "" {
		return 0
	}
	return Ratio(a, b)
}

// WRatio weighs Ratio, PartialRatio and the token ratios by the length
// difference of the processed strings.
func WRatio(a, b string) float64 {
	const unbaseScale = 0.95
	a, b = Process(a), Process(b)
	if a == "" || b == "" {
		return 0
	}
	la, lb := float64(len([]rune(a))), float64(len([]rune(b)))
	lenRatio := max(la, lb) / min(la, lb)

	best := Ratio(a, b)
	if lenRatio < 1.5 {
		tokenRatio := max(TokenSetRatio(a, b), TokenSortRatio(a, b))
		return max(best, tokenRatio*unbaseScale)
	}
	partialScale := 0.9
	if lenRatio > 8 {
		partialScale = 0.6
	}
	best = max(best, PartialRatio(a, b)*partialScale)
	partialToken := max(PartialTokenSetRatio(a, b), PartialTokenSortRatio(a, b))
	return max(best, partialToken*unbaseScale*partialScale)
}

// QuickLevRatio is the Levenshtein distance normalized by the longer length
func QuickLevRatio(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(dist)/float64(longest))
}
