package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Piece is a token produced by Tokenize
type Piece struct {
	// Text is the raw token text
	Text string
	// Idx is the byte offset of Text in the tokenized string
	Idx int
	// Whitespace is the whitespace directly following the token
	Whitespace string
}

// leading and trailing runes split off a whitespace delimited chunk
const (
	prefixes = `"'([{<¿¡«“‘`
	suffixes = `"')]}>,.;:!?%»”’…`
)

// Tokenize splits text on whitespace and then peels punctuation off both
// ends of every chunk. Possessive and contracted suffixes ('s, n't, 're,
// 've, 'll, 'd, 'm) become tokens of their own.
//
// EXAMPLE:
//
//	Input:  `I live in the "United States", or the US.`
//	Output: I | live | in | the | " | United | States | " | , | or | the | US | .
func Tokenize(text string) []Piece {
	var pieces []Piece
	for i := 0; i < len(text); {
		r, w := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			i += w
			continue
		}
		end := i
		for end < len(text) {
			r, w := utf8.DecodeRuneInString(text[end:])
			if unicode.IsSpace(r) {
				break
			}
			end += w
		}
		pieces = append(pieces, splitChunk(text[i:end], i)...)
		i = end
	}
	for k := range pieces {
		stop := len(text)
		if k+1 < len(pieces) {
			stop = pieces[k+1].Idx
		}
		tail := text[pieces[k].Idx+len(pieces[k].Text) : stop]
		if strings.TrimSpace(tail) == "" {
			pieces[k].Whitespace = tail
		}
	}
	return pieces
}

func splitChunk(chunk string, offset int) []Piece {
	var head, tail []Piece
	for chunk != "" {
		r, w := utf8.DecodeRuneInString(chunk)
		if !strings.ContainsRune(prefixes, r) || w == len(chunk) {
			break
		}
		head = append(head, Piece{Text: chunk[:w], Idx: offset})
		chunk, offset = chunk[w:], offset+w
	}
	for chunk != "" {
		if suffix := contraction(chunk); suffix != "" {
			tail = append(tail, Piece{Text: suffix, Idx: offset + len(chunk) - len(suffix)})
			chunk = chunk[:len(chunk)-len(suffix)]
			continue
		}
		r, w := utf8.DecodeLastRuneInString(chunk)
		if !strings.ContainsRune(suffixes, r) || w == len(chunk) {
			break
		}
		tail = append(tail, Piece{Text: chunk[len(chunk)-w:], Idx: offset + len(chunk) - w})
		chunk = chunk[:len(chunk)-w]
	}
	pieces := head
	if chunk != "" {
		pieces = append(pieces, Piece{Text: chunk, Idx: offset})
	}
	for k := len(tail) - 1; k >= 0; k-- {
		pieces = append(pieces, tail[k])
	}
	return pieces
}

var contractions = []string{"n't", "'s", "'re", "'ve", "'ll", "'d", "'m", "’s"}

func contraction(chunk string) string {
	for _, c := range contractions {
		if len(chunk) > len(c) && strings.EqualFold(chunk[len(chunk)-len(c):], c) {
			return chunk[len(chunk)-len(c):]
		}
	}
	return ""
}

// Shape returns the orthographic shape of a token: letters map to x or X,
// digits to d, other runes are kept, and runs longer than four collapse.
func Shape(text string) string {
	var sb strings.Builder
	var last rune
	run := 0
	for _, r := range text {
		var s rune
		switch {
		case unicode.IsUpper(r):
			s = 'X'
		case unicode.IsLetter(r):
			s = 'x'
		case unicode.IsDigit(r):
			s = 'd'
		default:
			s = r
		}
		if s == last {
			run++
		} else {
			last, run = s, 1
		}
		if run <= 4 {
			sb.WriteRune(s)
		}
	}
	return sb.String()
}

// Norm returns the compatibility normalized form of an already lowercased token
func Norm(lower string) string {
	return norm.NFKC.String(lower)
}
