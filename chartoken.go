package spanx

// CharTokenIndex maps byte offsets of a Doc's text to the index of the
// token owning them. Offsets in gaps between tokens have no owner.
type CharTokenIndex struct {
	owners []int // owner token per byte, -1 for gaps
}

// NewCharTokenIndex builds the mapping for doc
func NewCharTokenIndex(doc *Doc) *CharTokenIndex {
	owners := make([]int, len(doc.Text))
	for i := range owners {
		owners[i] = -1
	}
	for i := range doc.Tokens {
		t := &doc.Tokens[i]
		for pos := t.Idx; pos < t.End() && pos < len(owners); pos++ {
			owners[pos] = t.Index
		}
	}
	return &CharTokenIndex{owners: owners}
}

// Lookup returns the token owning pos
func (c *CharTokenIndex) Lookup(pos int) (int, bool) {
	if pos < 0 || pos >= len(c.owners) || c.owners[pos] < 0 {
		return 0, false
	}
	return c.owners[pos], true
}

// StartToken returns the token owning pos or, for a gap, the next token
// after it
func (c *CharTokenIndex) StartToken(pos int) (int, bool) {
	for p := max(pos, 0); p < len(c.owners); p++ {
		if c.owners[p] >= 0 {
			return c.owners[p], true
		}
	}
	return 0, false
}

// EndToken returns the token owning pos or, for a gap, the closest token
// before it
func (c *CharTokenIndex) EndToken(pos int) (int, bool) {
	for p := min(pos, len(c.owners)-1); p >= 0; p-- {
		if c.owners[p] >= 0 {
			return c.owners[p], true
		}
	}
	return 0, false
}

// TokenSpan converts the byte range [start, end) to the token range
// covering it. ok is false when the range covers no token.
func (c *CharTokenIndex) TokenSpan(start, end int) (int, int, bool) {
	if end <= start {
		return 0, 0, false
	}
	first, ok := c.StartToken(start)
	if !ok {
		return 0, 0, false
	}
	last, ok := c.EndToken(end - 1)
	if !ok || last+1 <= first {
		return 0, 0, false
	}
	return first, last + 1, true
}
