package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/spanx"
	"github.com/projectdiscovery/spanx/internal/dedupe"
	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"
	mapsutil "github.com/projectdiscovery/utils/maps"
	updateutils "github.com/projectdiscovery/utils/update"
)

// MaxInMemoryDedupeSize is the input size above which -unique keeps seen
// lines on disk (default : 100 MB)
var MaxInMemoryDedupeSize = 100 * 1024 * 1024

// input is one document to match
type input struct {
	name string
	text string
}

// Runner matches input documents against a pattern library
type Runner struct {
	options *Options
	library *spanx.Library
}

// Result is the JSON form of one match
type Result struct {
	Input     string      `json:"input"`
	Label     string      `json:"label"`
	Start     int         `json:"start"`
	End       int         `json:"end"`
	StartChar int         `json:"start_char"`
	EndChar   int         `json:"end_char"`
	Text      string      `json:"text"`
	Deviation interface{} `json:"deviation"`
}

// New builds the pattern library described by options
func New(options *Options) (*Runner, error) {
	cfg, err := loadLibrary(options.Library)
	if err != nil {
		return nil, errorutil.New("could not read pattern library %v: %v", options.Library, err)
	}
	cfg.Defaults = options.libraryDefaults().Merge(cfg.Defaults)

	for _, label := range sortedKeys(options.Regex) {
		cfg.Regex = append(cfg.Regex, spanx.Entry[string]{Label: label, Patterns: []string{options.Regex[label]}})
	}
	for _, label := range sortedKeys(options.Fuzzy) {
		cfg.Fuzzy = append(cfg.Fuzzy, spanx.Entry[string]{Label: label, Patterns: []string{options.Fuzzy[label]}})
	}
	for _, name := range options.Predefined {
		cfg.Regex = append(cfg.Regex, spanx.Entry[string]{
			Label:    strings.ToUpper(name),
			Patterns: []string{name},
			Options:  []*spanx.Options{{Predefined: spanx.Bool(true)}},
		})
	}

	library, err := cfg.Build(spanx.LogObserver{})
	if err != nil {
		return nil, err
	}
	gologger.Verbose().Msgf("loaded %d labels: %v", len(library.Labels()), strings.Join(library.Labels(), ","))
	return &Runner{options: options, library: library}, nil
}

// libraryDefaults returns the matching flags that were changed from their
// built-in values. They take precedence over the library defaults.
func (o *Options) libraryDefaults() *spanx.Options {
	defaults := &spanx.Options{}
	if o.MinRatio != spanx.DefaultMinRatio {
		defaults.MinRatio = spanx.Int(o.MinRatio)
	}
	if o.FuzzyFunc != "" && o.FuzzyFunc != spanx.DefaultFuzzyFunc {
		defaults.FuzzyFunc = spanx.String(o.FuzzyFunc)
	}
	if o.IgnoreCase {
		defaults.IgnoreCase = spanx.Bool(true)
	}
	return defaults
}

// Run matches every input and writes the results. The context is checked
// between documents.
func (r *Runner) Run(ctx context.Context) error {
	inputs, size, err := r.readInputs()
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errorutil.New("no input found")
	}

	output, closer, err := r.writer()
	if err != nil {
		return err
	}
	defer closer()

	var seen dedupe.Backend
	if r.options.Unique {
		seen = dedupe.New(size > MaxInMemoryDedupeSize)
		defer seen.Cleanup()
	}

	count := 0
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc := spanx.FromText(in.text)
		for _, m := range r.library.Match(doc) {
			line, err := r.format(in.name, doc, m)
			if err != nil {
				return err
			}
			if seen != nil && !seen.Upsert(line) {
				continue
			}
			if _, err := output.WriteString(line + "\n"); err != nil {
				return err
			}
			count++
		}
		gologger.Verbose().Msgf("matched %v", in.name)
	}
	if err := output.Flush(); err != nil {
		return err
	}
	gologger.Info().Msgf("Found %d matches in %d documents", count, len(inputs))
	return nil
}

func (r *Runner) format(name string, doc *spanx.Doc, m spanx.Match) (string, error) {
	values := spanx.MatchValues(doc, m)
	if !r.options.JSON {
		values["input"] = name
		return spanx.Replace(r.options.Format, values), nil
	}
	result := Result{
		Input: name,
		Label: m.Label,
		Start: m.Start,
		End:   m.End,
		Text:  m.Text(doc),
	}
	result.StartChar, _ = values["start_char"].(int)
	result.EndChar, _ = values["end_char"].(int)
	switch m.Deviation.Kind {
	case spanx.DeviationCounts:
		result.Deviation = []int{m.Deviation.Insertions, m.Deviation.Deletions, m.Deviation.Substitutions}
	case spanx.DeviationRatio:
		result.Deviation = m.Deviation.Ratio
	}
	bin, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(bin), nil
}

// readInputs collects documents from -text, -list and stdin and returns
// them with their total size in bytes
func (r *Runner) readInputs() ([]input, int, error) {
	var inputs []input
	size := 0
	for i, text := range r.options.Texts {
		inputs = append(inputs, input{name: "text:" + strconv.Itoa(i), text: text})
		size += len(text)
	}
	for _, path := range r.options.Inputs {
		if !fileutil.FileExists(path) {
			return nil, 0, errorutil.New("input file %v does not exist", path)
		}
		bin, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, err
		}
		inputs = append(inputs, input{name: path, text: string(bin)})
		size += len(bin)
	}
	if r.options.Stdin {
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		line := 0
		for scanner.Scan() {
			line++
			text := scanner.Text()
			if strings.TrimSpace(text) == "" {
				continue
			}
			inputs = append(inputs, input{name: "stdin:" + strconv.Itoa(line), text: text})
			size += len(text)
		}
		if err := scanner.Err(); err != nil {
			gologger.Error().Msgf("failed to read input from stdin got %v", err)
		}
	}
	return inputs, size, nil
}

// writer returns the buffered output and a function closing it
func (r *Runner) writer() (*bufio.Writer, func(), error) {
	var w io.Writer = os.Stdout
	closer := func() {}
	if r.options.Output != "" {
		fs, err := os.OpenFile(r.options.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return nil, nil, errorutil.New("failed to open output file %v got %v", r.options.Output, err)
		}
		w = fs
		closer = func() { _ = fs.Close() }
	}
	return bufio.NewWriter(w), closer, nil
}

func checkUpdate(verbose bool) {
	latestVersion, err := updateutils.GetVersionCheckCallback("spanx")()
	if err != nil {
		if verbose {
			gologger.Error().Msgf("spanx version check failed: %v", err.Error())
		}
		return
	}
	gologger.Info().Msgf("Current spanx version %v %v", version, updateutils.GetVersionDescription(version, latestVersion))
}

func sortedKeys(m map[string]string) []string {
	keys := mapsutil.GetKeys(m)
	sort.Strings(keys)
	return keys
}
