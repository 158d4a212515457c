package spanx

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const libraryYAML = `
defaults:
  min_ratio: 80
predefined:
  tickets: 'TCK-\d{4}'
regex:
  - label: GPE
    patterns: ['(united states){e<=1}', '\bUS\b']
  - label: TICKET
    patterns: [tickets]
    options:
      - predefined: true
fuzzy:
  - label: NAME
    patterns: [Garfield]
token:
  - label: DATA
    patterns:
      - - TEXT: SQL
        - LOWER: {FUZZY: database}
`

func TestConfigBuild(t *testing.T) {
	cfg, err := ParseConfig([]byte(libraryYAML))
	require.NoError(t, err)
	require.Equal(t, 80, *cfg.Defaults.MinRatio)
	require.Len(t, cfg.Token[0].Patterns[0], 2)

	lib, err := cfg.Build(&recorder{})
	require.NoError(t, err)
	require.Equal(t, []string{"DATA", "GPE", "NAME", "TICKET"}, lib.Labels())

	doc := FromText("The US ticket TCK-1234 says SQL databesE is down. Ask Grfield.")
	matches := lib.Match(doc)
	labels := make([]string, 0, len(matches))
	for _, m := range matches {
		labels = append(labels, m.Label+":"+m.Text(doc))
	}
	require.Equal(t, []string{"GPE:US", "TICKET:TCK-1234", "DATA:SQL databesE", "NAME:Grfield"}, labels)
}

func TestConfigErrors(t *testing.T) {
	cfg, err := ParseConfig([]byte("token:\n  - label: EMPTY\n    patterns: [[]]\n"))
	require.NoError(t, err)
	_, err = cfg.Build(&recorder{})
	require.True(t, errors.Is(err, ErrEmptyPattern))

	_, err = ParseConfig([]byte("regex: {label: x}"))
	require.Error(t, err)

	_, err = NewConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestGenerateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, GenerateSample(path))

	cfg, err := NewConfig(path)
	require.NoError(t, err)
	require.Equal(t, SampleConfig.Token, cfg.Token)
	require.Equal(t, len(SampleConfig.Regex), len(cfg.Regex))

	rec := &recorder{}
	lib, err := cfg.Build(rec)
	require.NoError(t, err)
	require.Empty(t, rec.warnings)
	require.NotEmpty(t, lib.Match(FromText("email jane@example.com about TCK-0042 in the US")))
}
