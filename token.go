package spanx

import (
	"fmt"
	"sort"

	"github.com/projectdiscovery/spanx/internal/tokenizer"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Token is one token of a Doc as produced by an external tokenizer
type Token struct {
	Index      int    // position of the token in the Doc
	Idx        int    // byte offset of Text in Doc.Text
	Text       string // verbatim text
	Lower      string // lowercase form of Text
	POS        string // coarse part of speech tag
	Tag        string // fine grained tag
	Lemma      string // base form
	Norm       string // normalized form
	Shape      string // orthographic shape (ex: Xxxx, dd)
	Whitespace string // trailing whitespace
}

// End returns the byte offset just past the token
func (t *Token) End() int {
	return t.Idx + len(t.Text)
}

// Span is a labeled token range attached to a Doc
type Span struct {
	Label string
	Start int
	End   int
}

// Doc is a tokenized text. Matchers read it and callbacks may annotate it
// through Ents.
type Doc struct {
	Text   string
	Tokens []Token
	Ents   []Span
}

// NewDoc validates tokens against text and returns a Doc. Tokens must be
// in order, inside text and non overlapping. Missing Lower forms are
// derived from Text.
func NewDoc(text string, tokens []Token) (*Doc, error) {
	lower := cases.Lower(language.Und)
	prevEnd := 0
	for i := range tokens {
		t := &tokens[i]
		if t.Index != i {
			return nil, fmt.Errorf("%w: token %d has index %d", ErrInvalidDocument, i, t.Index)
		}
		if t.Idx < prevEnd || t.End() > len(text) || text[t.Idx:t.End()] != t.Text {
			return nil, fmt.Errorf("%w: token %d (%q) does not fit text at offset %d", ErrInvalidDocument, i, t.Text, t.Idx)
		}
		if t.Text == "" {
			return nil, fmt.Errorf("%w: token %d is empty", ErrInvalidDocument, i)
		}
		if t.Lower == "" {
			t.Lower = lower.String(t.Text)
		}
		prevEnd = t.End()
	}
	return &Doc{Text: text, Tokens: tokens}, nil
}

// FromText tokenizes text with the built-in rule based tokenizer. Tokens
// carry Text, Lower, Norm and Shape; tagging attributes are left empty.
func FromText(text string) *Doc {
	lower := cases.Lower(language.Und)
	pieces := tokenizer.Tokenize(text)
	tokens := make([]Token, 0, len(pieces))
	for i, p := range pieces {
		l := lower.String(p.Text)
		tokens = append(tokens, Token{
			Index:      i,
			Idx:        p.Idx,
			Text:       p.Text,
			Lower:      l,
			Norm:       tokenizer.Norm(l),
			Shape:      tokenizer.Shape(p.Text),
			Whitespace: p.Whitespace,
		})
	}
	return &Doc{Text: text, Tokens: tokens}
}

// Len returns the number of tokens
func (d *Doc) Len() int {
	return len(d.Tokens)
}

// SpanText returns the text covered by tokens [start, end)
func (d *Doc) SpanText(start, end int) string {
	if start < 0 || end > len(d.Tokens) || start >= end {
		return ""
	}
	return d.Text[d.Tokens[start].Idx:d.Tokens[end-1].End()]
}

// AddEnt attaches a labeled span to the Doc. Spans that overlap an
// existing one are rejected.
func (d *Doc) AddEnt(label string, start, end int) error {
	if start < 0 || end > len(d.Tokens) || start >= end {
		return fmt.Errorf("%w: span [%d, %d) outside of %d tokens", ErrInvalidDocument, start, end, len(d.Tokens))
	}
	for _, e := range d.Ents {
		if start < e.End && e.Start < end {
			return fmt.Errorf("%w: span [%d, %d) overlaps %v [%d, %d)", ErrInvalidDocument, start, end, e.Label, e.Start, e.End)
		}
	}
	d.Ents = append(d.Ents, Span{Label: label, Start: start, End: end})
	sort.Slice(d.Ents, func(i, j int) bool { return d.Ents[i].Start < d.Ents[j].Start })
	return nil
}

// Attr selects a string attribute of a Token in token patterns
type Attr string

const (
	AttrText  Attr = "TEXT"
	AttrLower Attr = "LOWER"
	AttrPOS   Attr = "POS"
	AttrTag   Attr = "TAG"
	AttrLemma Attr = "LEMMA"
	AttrNorm  Attr = "NORM"
	AttrShape Attr = "SHAPE"
)

var attrAccessors = map[Attr]func(*Token) string{
	AttrText:  func(t *Token) string { return t.Text },
	AttrLower: func(t *Token) string { return t.Lower },
	AttrPOS:   func(t *Token) string { return t.POS },
	AttrTag:   func(t *Token) string { return t.Tag },
	AttrLemma: func(t *Token) string { return t.Lemma },
	AttrNorm:  func(t *Token) string { return t.Norm },
	AttrShape: func(t *Token) string { return t.Shape },
}

// Valid reports whether a is a supported selector
func (a Attr) Valid() bool {
	_, ok := attrAccessors[a]
	return ok
}

// Value returns the attribute of t selected by a
func (a Attr) Value(t *Token) string {
	if fn, ok := attrAccessors[a]; ok {
		return fn(t)
	}
	return ""
}
