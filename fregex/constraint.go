package fregex

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// fuzzyGroupPrefix names the capture groups wrapped around fuzzy atoms
const fuzzyGroupPrefix = "spanxfz"

// maxRegions is the number of fuzzy constraints a single expression can carry
const maxRegions = 8

var (
	constraintBlock = regexp.MustCompile(`^\{\s*[eisd]\s*<=?\s*\d+\s*(?:,\s*[eisd]\s*<=?\s*\d+\s*)*\}`)
	constraintItem  = regexp.MustCompile(`^\s*([eisd])\s*(<=|<)\s*(\d+)\s*$`)
)

// Counts holds the edit operations a match needed
type Counts struct {
	Insertions    int
	Deletions     int
	Substitutions int
}

// Total returns the number of edits
func (c Counts) Total() int {
	return c.Insertions + c.Deletions + c.Substitutions
}

func (c Counts) add(o Counts) Counts {
	return Counts{
		Insertions:    c.Insertions + o.Insertions,
		Deletions:     c.Deletions + o.Deletions,
		Substitutions: c.Substitutions + o.Substitutions,
	}
}

// Limits caps the edits of a whole match. Negative fields are unlimited.
type Limits struct {
	MaxInsertions    int
	MaxDeletions     int
	MaxSubstitutions int
}

// NoLimits places no cap beyond the inline constraints
var NoLimits = Limits{MaxInsertions: -1, MaxDeletions: -1, MaxSubstitutions: -1}

func (l Limits) allows(c Counts) bool {
	return (l.MaxInsertions < 0 || c.Insertions <= l.MaxInsertions) &&
		(l.MaxDeletions < 0 || c.Deletions <= l.MaxDeletions) &&
		(l.MaxSubstitutions < 0 || c.Substitutions <= l.MaxSubstitutions)
}

// Constraint is an inline fuzzy directive such as {e<=2} or {i<=1,s<=2}.
// MaxErrors is negative when the directive has no e term.
type Constraint struct {
	MaxInsertions    int
	MaxDeletions     int
	MaxSubstitutions int
	MaxErrors        int
}

func (c Constraint) allows(o Counts) bool {
	return o.Insertions <= c.MaxInsertions &&
		o.Deletions <= c.MaxDeletions &&
		o.Substitutions <= c.MaxSubstitutions &&
		(c.MaxErrors < 0 || o.Total() <= c.MaxErrors)
}

// parseConstraint parses the body of a constraint block (without braces).
// Error kinds not named are disallowed unless an e term bounds them.
func parseConstraint(body string) (Constraint, error) {
	limits := map[string]int{}
	for _, item := range strings.Split(body, ",") {
		parts := constraintItem.FindStringSubmatch(item)
		if parts == nil {
			return Constraint{}, fmt.Errorf("invalid fuzzy constraint term %q", item)
		}
		if _, ok := limits[parts[1]]; ok {
			return Constraint{}, fmt.Errorf("fuzzy constraint term %q given twice", parts[1])
		}
		n, err := strconv.Atoi(parts[3])
		if err != nil {
			return Constraint{}, err
		}
		if parts[2] == "<" {
			n--
		}
		if n < 0 {
			return Constraint{}, fmt.Errorf("fuzzy constraint term %q allows no edits", item)
		}
		limits[parts[1]] = n
	}
	fallback := 0
	c := Constraint{MaxErrors: -1}
	if e, ok := limits["e"]; ok {
		fallback = e
		c.MaxErrors = e
	}
	get := func(k string) int {
		if v, ok := limits[k]; ok {
			return v
		}
		return fallback
	}
	c.MaxInsertions = get("i")
	c.MaxDeletions = get("d")
	c.MaxSubstitutions = get("s")
	return c, nil
}

// region is a fuzzy atom found while scanning an expression
type region struct {
	start, end int // byte range of the atom in the source expression
	skip       int // length of the constraint block following the atom
	constraint Constraint
}

// rewrite strips inline fuzzy constraints from expr and wraps each
// constrained atom (group, class, escape or literal) in a named capture
// group so the compiled program can tell where edits are allowed.
func rewrite(expr string) (string, []Constraint, error) {
	var (
		regions    []region
		groups     []int
		atomStart  = -1
		atomEnd    = -1
		inClass    bool
		classStart int
	)
	resetAtom := func() { atomStart, atomEnd = -1, -1 }

	for i := 0; i < len(expr); {
		c := expr[i]
		if inClass {
			switch c {
			case '\\':
				i = escapeEnd(expr, i)
				continue
			case '[':
				if strings.HasPrefix(expr[i:], "[:") {
					if j := strings.Index(expr[i+2:], ":]"); j >= 0 {
						i += j + 4
						continue
					}
				}
			case ']':
				first := classStart + 1
				if first < len(expr) && expr[first] == '^' {
					first++
				}
				if i > first {
					inClass = false
					atomStart, atomEnd = classStart, i+1
				}
			}
			i++
			continue
		}
		switch c {
		case '\\':
			j := escapeEnd(expr, i)
			atomStart, atomEnd = i, j
			i = j
			continue
		case '[':
			inClass = true
			classStart = i
		case '(':
			groups = append(groups, i)
			resetAtom()
		case ')':
			if len(groups) == 0 {
				// unbalanced, the regexp parser reports it
				resetAtom()
				break
			}
			open := groups[len(groups)-1]
			groups = groups[:len(groups)-1]
			atomStart, atomEnd = open, i+1
		case '{':
			loc := constraintBlock.FindStringIndex(expr[i:])
			if loc == nil {
				// ordinary repetition
				resetAtom()
				break
			}
			if atomEnd != i {
				return "", nil, fmt.Errorf("fuzzy constraint at offset %d does not follow a group, class or literal", i)
			}
			constraint, err := parseConstraint(expr[i+1 : i+loc[1]-1])
			if err != nil {
				return "", nil, err
			}
			regions = append(regions, region{start: atomStart, end: atomEnd, skip: loc[1], constraint: constraint})
			resetAtom()
			i += loc[1]
			continue
		case '*', '+', '?', '|', '^', '$', '}':
			resetAtom()
		default:
			_, w := utf8.DecodeRuneInString(expr[i:])
			atomStart, atomEnd = i, i+w
			i += w
			continue
		}
		i++
	}
	if len(regions) == 0 {
		return expr, nil, nil
	}
	if len(regions) > maxRegions {
		return "", nil, fmt.Errorf("at most %d fuzzy constraints are supported, got %d", maxRegions, len(regions))
	}
	return applyRegions(expr, regions), constraintsOf(regions), nil
}

func constraintsOf(regions []region) []Constraint {
	out := make([]Constraint, len(regions))
	for k, r := range regions {
		out[k] = r.constraint
	}
	return out
}

func applyRegions(expr string, regions []region) string {
	type insert struct {
		pos   int
		order int
		text  string
	}
	var inserts []insert
	skips := map[int]int{}
	for k, r := range regions {
		// closes sort before opens at the same offset, outer opens first
		inserts = append(inserts,
			insert{pos: r.start, order: 1_000_000 - (r.end - r.start), text: fmt.Sprintf("(?P<%s%d>", fuzzyGroupPrefix, k)},
			insert{pos: r.end, order: r.end - r.start, text: ")"},
		)
		skips[r.end] = r.skip
	}
	sort.SliceStable(inserts, func(a, b int) bool {
		if inserts[a].pos != inserts[b].pos {
			return inserts[a].pos < inserts[b].pos
		}
		return inserts[a].order < inserts[b].order
	})

	var sb strings.Builder
	next := 0
	for i := 0; i <= len(expr); {
		for next < len(inserts) && inserts[next].pos == i {
			sb.WriteString(inserts[next].text)
			next++
		}
		if skip, ok := skips[i]; ok {
			delete(skips, i)
			i += skip
			continue
		}
		if i == len(expr) {
			break
		}
		sb.WriteByte(expr[i])
		i++
	}
	return sb.String()
}

// escapeEnd returns the offset just past the escape sequence starting at i
func escapeEnd(expr string, i int) int {
	if i+1 >= len(expr) {
		return len(expr)
	}
	switch expr[i+1] {
	case 'p', 'P', 'x':
		if i+2 < len(expr) && expr[i+2] == '{' {
			if j := strings.IndexByte(expr[i+2:], '}'); j >= 0 {
				return i + 2 + j + 1
			}
			return len(expr)
		}
		if expr[i+1] == 'x' {
			return min(i+4, len(expr))
		}
		return min(i+3, len(expr))
	case 'Q':
		if j := strings.Index(expr[i+2:], `\E`); j >= 0 {
			return i + 2 + j + 2
		}
		return len(expr)
	}
	_, w := utf8.DecodeRuneInString(expr[i+1:])
	return i + 1 + w
}
