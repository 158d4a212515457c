package fregex

import (
	"math/bits"
	"regexp/syntax"
	"unicode/utf8"
)

type editOp int

const (
	editInsert editOp = iota
	editDelete
	editSubstitute
)

// thread is one state of the fuzzy machine. active is the set of fuzzy
// regions the thread is inside of, counts are the edits spent per region.
type thread struct {
	pc     uint32
	active uint8
	counts [maxRegions]Counts
}

func (t thread) total() Counts {
	var c Counts
	for _, v := range t.counts {
		c = c.add(v)
	}
	return c
}

type queue struct {
	seen    map[thread]struct{}
	threads []thread
}

func newQueue() *queue {
	return &queue{seen: map[thread]struct{}{}}
}

// machine runs the compiled program anchored at one start offset
type machine struct {
	re     *Regexp
	text   string
	limits Limits
}

func (re *Regexp) findAllFuzzy(text string, limits Limits, n int) []Match {
	var out []Match
	m := &machine{re: re, text: text, limits: limits}
	for pos := 0; pos <= len(text); {
		if end, counts, ok := m.matchAt(pos); ok && end > pos {
			out = append(out, Match{Start: pos, End: end, Counts: counts})
			if n > 0 && len(out) == n {
				return out
			}
			pos = end
			continue
		}
		if pos == len(text) {
			break
		}
		_, w := utf8.DecodeRuneInString(text[pos:])
		pos += w
	}
	return out
}

// matchAt returns the cheapest match starting at start, preferring the
// longest among equally cheap ones. Insertions are not allowed before the
// first consumed rune so a match never starts with skipped text.
func (m *machine) matchAt(start int) (int, Counts, bool) {
	prog := m.re.prog
	clist := newQueue()
	m.add(clist, thread{pc: uint32(prog.Start)}, start)

	bestEnd, bestCost := -1, Counts{}
	for pos := start; ; {
		for _, t := range clist.threads {
			if prog.Inst[t.pc].Op != syntax.InstMatch {
				continue
			}
			cost := t.total()
			if bestEnd < 0 || cost.Total() < bestCost.Total() || (cost.Total() == bestCost.Total() && pos > bestEnd) {
				bestEnd, bestCost = pos, cost
			}
		}
		if pos >= len(m.text) || len(clist.threads) == 0 {
			break
		}
		r, w := utf8.DecodeRuneInString(m.text[pos:])
		nlist := newQueue()
		for _, t := range clist.threads {
			inst := &prog.Inst[t.pc]
			if inst.Op == syntax.InstMatch {
				continue
			}
			if bestEnd >= 0 && t.total().Total() > bestCost.Total() {
				continue
			}
			if inst.MatchRune(r) {
				next := t
				next.pc = inst.Out
				m.add(nlist, next, pos+w)
			} else if next, ok := m.edit(t, editSubstitute); ok {
				next.pc = inst.Out
				m.add(nlist, next, pos+w)
			}
			if pos > start {
				if next, ok := m.edit(t, editInsert); ok {
					m.add(nlist, next, pos+w)
				}
			}
		}
		clist = nlist
		pos += w
	}
	if bestEnd < 0 {
		return 0, Counts{}, false
	}
	return bestEnd, bestCost, true
}

// add follows empty transitions from t and queues every rune consuming or
// matching state it reaches. Deletions skip a rune instruction without
// consuming text.
func (m *machine) add(q *queue, t thread, pos int) {
	if _, ok := q.seen[t]; ok {
		return
	}
	q.seen[t] = struct{}{}
	inst := &m.re.prog.Inst[t.pc]
	switch inst.Op {
	case syntax.InstFail:
	case syntax.InstAlt, syntax.InstAltMatch:
		left, right := t, t
		left.pc, right.pc = inst.Out, inst.Arg
		m.add(q, left, pos)
		m.add(q, right, pos)
	case syntax.InstNop:
		t.pc = inst.Out
		m.add(q, t, pos)
	case syntax.InstCapture:
		if k, ok := m.re.openSlot[inst.Arg]; ok {
			t.active |= 1 << k
		} else if k, ok := m.re.closeSlot[inst.Arg]; ok {
			t.active &^= 1 << k
		}
		t.pc = inst.Out
		m.add(q, t, pos)
	case syntax.InstEmptyWidth:
		if inst.MatchEmptyWidth(m.before(pos), m.after(pos)) {
			t.pc = inst.Out
			m.add(q, t, pos)
		}
	case syntax.InstMatch:
		q.threads = append(q.threads, t)
	default:
		q.threads = append(q.threads, t)
		if next, ok := m.edit(t, editDelete); ok {
			next.pc = inst.Out
			m.add(q, next, pos)
		}
	}
}

// edit charges op to the innermost active region of t
func (m *machine) edit(t thread, op editOp) (thread, bool) {
	if t.active == 0 {
		return t, false
	}
	k := bits.Len8(t.active) - 1
	c := t.counts[k]
	switch op {
	case editInsert:
		c.Insertions++
	case editDelete:
		c.Deletions++
	case editSubstitute:
		c.Substitutions++
	}
	if !m.re.constraints[k].allows(c) {
		return t, false
	}
	t.counts[k] = c
	if !m.limits.allows(t.total()) {
		return t, false
	}
	return t, true
}

func (m *machine) before(pos int) rune {
	if pos <= 0 {
		return -1
	}
	r, _ := utf8.DecodeLastRuneInString(m.text[:pos])
	return r
}

func (m *machine) after(pos int) rune {
	if pos >= len(m.text) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(m.text[pos:])
	return r
}
