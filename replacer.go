package spanx

import (
	"fmt"

	"github.com/projectdiscovery/fasttemplate"
)

const (
	// ParenthesisOpen marker - begin of a placeholder
	ParenthesisOpen = "{{"
	// ParenthesisClose marker - end of a placeholder
	ParenthesisClose = "}}"
)

// DefaultTemplate renders a match as tab separated fields
const DefaultTemplate = "{{label}}\t{{start}}\t{{end}}\t{{text}}\t{{deviation}}"

// Replace replaces placeholders in template with values on the fly.
// Unknown placeholders are kept as is.
func Replace(template string, values map[string]interface{}) string {
	valuesMap := make(map[string]interface{}, len(values))
	for k, v := range values {
		valuesMap[k] = fmt.Sprint(v)
	}
	return fasttemplate.ExecuteStringStd(template, ParenthesisOpen, ParenthesisClose, valuesMap)
}

// MatchValues returns the placeholder values of m: label, start, end,
// text, deviation, start_char and end_char
func MatchValues(doc *Doc, m Match) map[string]interface{} {
	values := map[string]interface{}{
		"label":     m.Label,
		"start":     m.Start,
		"end":       m.End,
		"text":      m.Text(doc),
		"deviation": m.Deviation,
	}
	if m.Start >= 0 && m.End <= len(doc.Tokens) && m.Start < m.End {
		values["start_char"] = doc.Tokens[m.Start].Idx
		values["end_char"] = doc.Tokens[m.End-1].End()
	}
	return values
}

// FormatMatch renders m with template, see MatchValues for placeholders
func FormatMatch(template string, doc *Doc, m Match) string {
	return Replace(template, MatchValues(doc, m))
}
