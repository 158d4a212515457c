package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/projectdiscovery/spanx"
	"github.com/stretchr/testify/require"
)

const library = `
regex:
  - label: GPE
    patterns: ['(united states){e<=1}', '\bUS\b']
token:
  - label: DATA
    patterns:
      - - TEXT: SQL
        - LOWER: {FUZZY: database}
`

func testOptions(t *testing.T) *Options {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "library.yaml")
	require.NoError(t, os.WriteFile(libPath, []byte(library), 0600))
	return &Options{
		Library:   libPath,
		Output:    filepath.Join(dir, "out.txt"),
		Format:    spanx.DefaultTemplate,
		MinRatio:  spanx.DefaultMinRatio,
		FuzzyFunc: spanx.DefaultFuzzyFunc,
		Texts:     []string{"I live in the unitd states, or the US", "the US again and the US"},
		Regex:     map[string]string{},
		Fuzzy:     map[string]string{"FOOD": "grilled cheese"},
	}
}

func readLines(t *testing.T, path string) []string {
	bin, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(bin)), "\n")
}

func TestRunnerTemplate(t *testing.T) {
	opts := testOptions(t)
	opts.Format = "{{input}} {{label}} {{start}} {{end}} {{deviation}}"
	r, err := New(opts)
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))
	require.Equal(t, []string{
		"text:0 GPE 4 6 (0, 1, 0)",
		"text:0 GPE 9 10 (0, 0, 0)",
		"text:1 GPE 1 2 (0, 0, 0)",
		"text:1 GPE 5 6 (0, 0, 0)",
	}, readLines(t, opts.Output))
}

func TestRunnerUniqueJSON(t *testing.T) {
	opts := testOptions(t)
	opts.JSON = true
	opts.Unique = true
	opts.Texts = []string{"SQL databesE", "SQL databesE"}
	r, err := New(opts)
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))

	lines := readLines(t, opts.Output)
	require.Equal(t, []string{
		`{"input":"text:0","label":"DATA","start":0,"end":2,"start_char":0,"end_char":12,"text":"SQL databesE","deviation":[0,0,1]}`,
		`{"input":"text:1","label":"DATA","start":0,"end":2,"start_char":0,"end_char":12,"text":"SQL databesE","deviation":[0,0,1]}`,
	}, lines)

	opts.Format = "{{label}} {{text}}"
	opts.JSON = false
	r, err = New(opts)
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))
	require.Equal(t, []string{"DATA SQL databesE"}, readLines(t, opts.Output))
}

func TestRunnerPredefinedAndCLIPatterns(t *testing.T) {
	opts := testOptions(t)
	opts.Texts = []string{"mail jane@example.com today"}
	opts.Predefined = []string{"emails"}
	opts.Regex = map[string]string{"DAY": "today"}
	opts.Format = "{{label}}={{text}}"
	r, err := New(opts)
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))
	require.Equal(t, []string{"EMAILS=jane@example.com", "DAY=today"}, readLines(t, opts.Output))
}

func TestRunnerErrors(t *testing.T) {
	opts := testOptions(t)
	opts.Library = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := New(opts)
	require.Error(t, err)

	opts = testOptions(t)
	opts.Texts = nil
	r, err := New(opts)
	require.NoError(t, err)
	require.Error(t, r.Run(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts = testOptions(t)
	r, err = New(opts)
	require.NoError(t, err)
	require.ErrorIs(t, r.Run(ctx), context.Canceled)

	opts = testOptions(t)
	opts.MinRatio = 120
	require.Error(t, opts.validate())
	opts = testOptions(t)
	opts.FuzzyFunc = "nope"
	require.ErrorIs(t, opts.validate(), spanx.ErrUnknownStrategy)
}

func TestRunnerFlagsOverrideLibraryDefaults(t *testing.T) {
	opts := testOptions(t)
	require.NoError(t, os.WriteFile(opts.Library, []byte("defaults:\n  min_ratio: 99\n"), 0600))
	opts.Texts = []string{"We had a grilled chese today."}
	opts.Format = "{{label}} {{start}} {{end}} {{deviation}}"

	// an unchanged -mr keeps the library value
	r, err := New(opts)
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))
	require.Equal(t, []string{""}, readLines(t, opts.Output))

	opts.MinRatio = 90
	r, err = New(opts)
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))
	require.Equal(t, []string{"FOOD 3 5 96"}, readLines(t, opts.Output))

	require.Equal(t, &spanx.Options{}, (&Options{MinRatio: spanx.DefaultMinRatio, FuzzyFunc: spanx.DefaultFuzzyFunc}).libraryDefaults())
	require.Equal(t, &spanx.Options{FuzzyFunc: spanx.String("token_set"), IgnoreCase: spanx.Bool(true)},
		(&Options{MinRatio: spanx.DefaultMinRatio, FuzzyFunc: "token_set", IgnoreCase: true}).libraryDefaults())
}
