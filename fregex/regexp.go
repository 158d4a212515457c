// Package fregex implements regular expressions with inline fuzzy
// constraints in the style of `(database){s<=1}` or `(united states){e<=2}`.
//
// The syntax is RE2 (regexp/syntax) extended with constraint blocks that
// follow a group, character class, escape or literal:
//
//	{e<=N}           up to N edits of any kind
//	{i<=N,d<=N,s<=N} per kind limits (i insertions, d deletions, s substitutions)
//	{s<=1,e<=2}      per kind limits under a total budget
//
// Kinds missing from a block without an e term allow no edits. Expressions
// without constraints run on the standard library engine with leftmost
// longest semantics; expressions RE2 rejects (lookaround, backreferences)
// fall back to github.com/dlclark/regexp2.
package fregex

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/projectdiscovery/utils/errkit"
)

// ErrCompile is returned for expressions that cannot be compiled
var ErrCompile = errkit.New("could not compile regex pattern")

// Match is a non-empty match of an expression. Start and End are byte
// offsets into the searched text.
type Match struct {
	Start  int
	End    int
	Counts Counts
}

// Regexp is a compiled expression
type Regexp struct {
	expr string

	std       *regexp.Regexp
	backtrack *regexp2.Regexp

	prog        *syntax.Prog
	constraints []Constraint
	openSlot    map[uint32]int
	closeSlot   map[uint32]int
}

// Compile compiles expr. flags holds inline flag letters (for example
// "i" or "ms") that are applied to the whole expression.
func Compile(expr, flags string) (*Regexp, error) {
	prefix := ""
	if flags != "" {
		prefix = "(?" + flags + ")"
	}
	rewritten, constraints, err := rewrite(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}
	re := &Regexp{expr: expr}
	if len(constraints) == 0 {
		std, stdErr := regexp.Compile(prefix + expr)
		if stdErr == nil {
			std.Longest()
			re.std = std
			return re, nil
		}
		backtrack, btErr := regexp2.Compile(backtrackFlags(flags)+expr, regexp2.None)
		if btErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrCompile, stdErr)
		}
		re.backtrack = backtrack
		return re, nil
	}
	if err := re.compileFuzzy(prefix+rewritten, constraints); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}
	return re, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(expr, flags string) *Regexp {
	re, err := Compile(expr, flags)
	if err != nil {
		panic(err)
	}
	return re
}

func (re *Regexp) compileFuzzy(expr string, constraints []Constraint) error {
	parsed, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return err
	}
	// region k of the scan owns capture index capOf[k]
	capOf := make([]int, len(constraints))
	for idx, name := range parsed.CapNames() {
		if !strings.HasPrefix(name, fuzzyGroupPrefix) {
			continue
		}
		k, err := strconv.Atoi(strings.TrimPrefix(name, fuzzyGroupPrefix))
		if err != nil || k < 0 || k >= len(constraints) {
			continue
		}
		capOf[k] = idx
	}
	prog, err := syntax.Compile(parsed.Simplify())
	if err != nil {
		return err
	}

	// regions are renumbered by capture index so that the highest active
	// region of a thread is always the innermost one
	order := make([]int, len(constraints))
	for k := range order {
		order[k] = k
	}
	sortByCapture(order, capOf)

	re.prog = prog
	re.constraints = make([]Constraint, len(constraints))
	re.openSlot = make(map[uint32]int, len(constraints))
	re.closeSlot = make(map[uint32]int, len(constraints))
	for region, k := range order {
		re.constraints[region] = constraints[k]
		re.openSlot[uint32(2*capOf[k])] = region
		re.closeSlot[uint32(2*capOf[k]+1)] = region
	}
	return nil
}

func sortByCapture(order, capOf []int) {
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && capOf[order[j]] < capOf[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
}

// backtrackFlags keeps the inline flags regexp2 understands
func backtrackFlags(flags string) string {
	var kept strings.Builder
	for _, f := range flags {
		if strings.ContainsRune("imsx", f) {
			kept.WriteRune(f)
		}
	}
	if kept.Len() == 0 {
		return ""
	}
	return "(?" + kept.String() + ")"
}

// String returns the source expression
func (re *Regexp) String() string {
	return re.expr
}

// Fuzzy reports whether the expression carries fuzzy constraints
func (re *Regexp) Fuzzy() bool {
	return re.prog != nil
}

// FindAll returns successive non-overlapping, non-empty matches of re in
// text. Scanning is greedy from the left: each match starts as far left as
// possible, needs as few edits as possible and then extends as far as
// possible; the next search resumes at its end.
func (re *Regexp) FindAll(text string, limits Limits) []Match {
	switch {
	case re.std != nil:
		return re.findAllStd(text)
	case re.backtrack != nil:
		return re.findAllBacktrack(text)
	}
	return re.findAllFuzzy(text, limits, -1)
}

// Find returns the leftmost match of re in text
func (re *Regexp) Find(text string, limits Limits) (Match, bool) {
	var matches []Match
	switch {
	case re.std != nil:
		if loc := re.std.FindStringIndex(text); loc != nil && loc[1] > loc[0] {
			return Match{Start: loc[0], End: loc[1]}, true
		}
		// the leftmost match may be empty while a later one is not
		matches = re.findAllStd(text)
	case re.backtrack != nil:
		matches = re.findAllBacktrack(text)
	default:
		matches = re.findAllFuzzy(text, limits, 1)
	}
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

func (re *Regexp) findAllStd(text string) []Match {
	var out []Match
	for _, loc := range re.std.FindAllStringIndex(text, -1) {
		if loc[1] > loc[0] {
			out = append(out, Match{Start: loc[0], End: loc[1]})
		}
	}
	return out
}

func (re *Regexp) findAllBacktrack(text string) []Match {
	var out []Match
	offsets := runeOffsets(text)
	m, err := re.backtrack.FindStringMatch(text)
	for m != nil && err == nil {
		if m.Length > 0 {
			out = append(out, Match{Start: offsets[m.Index], End: offsets[m.Index+m.Length]})
		}
		m, err = re.backtrack.FindNextMatch(m)
	}
	return out
}

// runeOffsets maps rune indexes of text to byte offsets, with one extra
// entry for the end of the text
func runeOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}
