package spanx

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one labeled group of patterns in a pattern library file
type Entry[P any] struct {
	Label    string     `yaml:"label"`
	Patterns []P        `yaml:"patterns"`
	Options  []*Options `yaml:"options,omitempty"`
}

// Config is a pattern library: matcher defaults, extra predefined aliases
// and labeled regex, fuzzy and token patterns
type Config struct {
	Defaults   *Options              `yaml:"defaults,omitempty"`
	Predefined map[string]string     `yaml:"predefined,omitempty"`
	Regex      []Entry[string]       `yaml:"regex,omitempty"`
	Fuzzy      []Entry[string]       `yaml:"fuzzy,omitempty"`
	Token      []Entry[TokenPattern] `yaml:"token,omitempty"`
}

// NewConfig reads config from file
func NewConfig(filePath string) (*Config, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseConfig(bin)
}

// ParseConfig decodes a YAML pattern library
func ParseConfig(bin []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SampleConfig is the library written by GenerateSample
var SampleConfig = Config{
	Defaults:   &Options{MinRatio: Int(DefaultMinRatio)},
	Predefined: map[string]string{"tickets": `\bTCK-\d{4,}\b`},
	Regex: []Entry[string]{
		{Label: "GPE", Patterns: []string{`(?i)\b(?:united states|US|USA)\b`}},
		{Label: "EMAIL", Patterns: []string{"emails"}, Options: []*Options{{Predefined: Bool(true)}}},
		{Label: "TICKET", Patterns: []string{"tickets"}, Options: []*Options{{Predefined: Bool(true)}}},
		{Label: "STREET", Patterns: []string{`(\d+\s+(?:[A-Z][a-z]+\s+)+(?:street|st|avenue|ave)){e<=2}`}},
	},
	Fuzzy: []Entry[string]{
		{Label: "FOOD", Patterns: []string{"chicken", "grilled cheese"}, Options: []*Options{{MinRatio: Int(85)}, nil}},
	},
	Token: []Entry[TokenPattern]{
		{Label: "DATA", Patterns: []TokenPattern{
			{{AttrText: Exact("SQL")}, {AttrLower: Fuzzy("database")}},
			{{AttrLower: FRegex("(sequel){s<=1}")}, {AttrText: Exact("DB")}},
		}},
	},
}

// GenerateSample creates a sample yaml file with default/sample values
func GenerateSample(filePath string) error {
	bin, err := yaml.Marshal(SampleConfig)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0644)
}

// Build returns a Library holding the patterns of c
func (c *Config) Build(observer Observer) (*Library, error) {
	opts := &MatcherOptions{Defaults: c.Defaults, Observer: observer, Predefined: NewPredefined(c.Predefined)}
	lib, err := NewLibrary(opts)
	if err != nil {
		return nil, err
	}
	if err := c.Apply(lib); err != nil {
		return nil, err
	}
	return lib, nil
}

// Apply registers the patterns of c with lib
func (c *Config) Apply(lib *Library) error {
	for _, e := range c.Regex {
		if err := lib.Regex.Add(e.Label, e.Patterns, e.Options, nil); err != nil {
			return fmt.Errorf("regex %w", err)
		}
	}
	for _, e := range c.Fuzzy {
		if err := lib.Fuzzy.Add(e.Label, e.Patterns, e.Options, nil); err != nil {
			return fmt.Errorf("fuzzy %w", err)
		}
	}
	for _, e := range c.Token {
		if err := lib.Token.Add(e.Label, e.Patterns, e.Options, nil); err != nil {
			return fmt.Errorf("token %w", err)
		}
	}
	return nil
}
