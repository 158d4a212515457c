package spanx

import (
	_ "embed"
	"fmt"
	"strings"

	radix "github.com/armon/go-radix"
	"gopkg.in/yaml.v3"
)

//go:embed predefined.yaml
var predefinedBin []byte

// builtinPredefined holds the embedded alias table
var builtinPredefined map[string]string

func init() {
	if err := yaml.Unmarshal(predefinedBin, &builtinPredefined); err != nil {
		panic(fmt.Sprintf("malformed predefined.yaml: %v", err))
	}
}

// Predefined maps alias names such as "emails" or "phones" to regex
// sources. It is consulted for patterns added with `predefined: true`.
type Predefined struct {
	tree *radix.Tree
}

// NewPredefined returns a table with the built-in aliases and the given
// extra entries, which take precedence
func NewPredefined(extra map[string]string) *Predefined {
	p := &Predefined{tree: radix.NewFromMap(toAny(builtinPredefined))}
	for name, pattern := range extra {
		p.Set(name, pattern)
	}
	return p
}

// Set adds or replaces an alias
func (p *Predefined) Set(name, pattern string) {
	p.tree.Insert(name, pattern)
}

// Resolve returns the regex source of name
func (p *Predefined) Resolve(name string) (string, error) {
	if v, ok := p.tree.Get(name); ok {
		return v.(string), nil
	}
	if suggestions := p.suggest(name); len(suggestions) > 0 {
		return "", fmt.Errorf("%w: %v (did you mean %v?)", ErrUnknownPredefinedPattern, name, strings.Join(suggestions, ", "))
	}
	return "", fmt.Errorf("%w: %v", ErrUnknownPredefinedPattern, name)
}

// Names returns the alias names in sorted order
func (p *Predefined) Names() []string {
	names := make([]string, 0, p.tree.Len())
	p.tree.Walk(func(s string, _ interface{}) bool {
		names = append(names, s)
		return false
	})
	return names
}

// Entries returns a copy of the table
func (p *Predefined) Entries() map[string]string {
	out := make(map[string]string, p.tree.Len())
	p.tree.Walk(func(s string, v interface{}) bool {
		out[s] = v.(string)
		return false
	})
	return out
}

// suggest lists aliases sharing the longest available prefix with name
func (p *Predefined) suggest(name string) []string {
	for n := len(name); n > 0; n-- {
		var found []string
		p.tree.WalkPrefix(name[:n], func(s string, _ interface{}) bool {
			found = append(found, s)
			return len(found) >= 3
		})
		if len(found) > 0 {
			return found
		}
	}
	return nil
}

func toAny(m map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
