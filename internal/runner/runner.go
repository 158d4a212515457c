package runner

import (
	"os"
	"strings"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/spanx"
	"github.com/projectdiscovery/spanx/similarity"
	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"
)

type Options struct {
	Inputs             goflags.StringSlice // Input files, one document each
	Texts              goflags.StringSlice // Inline input documents
	Library            string              // Pattern library file
	Predefined         goflags.StringSlice // Predefined aliases to match, labeled after their name
	Output             string
	Format             string
	Config             string
	JSON               bool
	Unique             bool
	IgnoreCase         bool
	MinRatio           int
	FuzzyFunc          string
	ListPredefined     bool
	DisableUpdateCheck bool
	Verbose            bool
	Silent             bool
	// Stdin reads one document per line from standard input
	Stdin bool
	// Regex and Fuzzy hold the label=pattern pairs given on the cli
	Regex map[string]string
	Fuzzy map[string]string
	// internal/unexported fields
	regex goflags.RuntimeMap
	fuzzy goflags.RuntimeMap
}

func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Fuzzy, regex and token pattern matcher for text documents.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringSliceVarP(&opts.Inputs, "list", "l", nil, "files to match, each file is one document (comma-separated, file)", goflags.FileCommaSeparatedStringSliceOptions),
		flagSet.StringSliceVarP(&opts.Texts, "text", "t", nil, "inline text documents to match", goflags.StringSliceOptions),
	)

	flagSet.CreateGroup("patterns", "Patterns",
		flagSet.StringVarP(&opts.Library, "library", "lib", defaultLibraryPath, "pattern library file (yaml)"),
		flagSet.RuntimeMapVarP(&opts.regex, "regex", "re", nil, "regex pattern in label=pattern format (-re 'GPE=(united states){e<=1}')"),
		flagSet.RuntimeMapVarP(&opts.fuzzy, "fuzzy", "fz", nil, "fuzzy phrase in label=phrase format (-fz 'FOOD=grilled cheese')"),
		flagSet.StringSliceVarP(&opts.Predefined, "predefined", "pd", nil, "predefined patterns to match (emails,phones,...)", goflags.CommaSeparatedStringSliceOptions),
		flagSet.BoolVarP(&opts.ListPredefined, "list-predefined", "lp", false, "list predefined pattern names"),
	)

	flagSet.CreateGroup("matching", "Matching",
		flagSet.IntVarP(&opts.MinRatio, "min-ratio", "mr", spanx.DefaultMinRatio, "minimum similarity ratio (0-100) of fuzzy matches"),
		flagSet.StringVarP(&opts.FuzzyFunc, "fuzzy-func", "ff", spanx.DefaultFuzzyFunc, "similarity function ("+strings.Join(similarity.Names(), ",")+")"),
		flagSet.BoolVarP(&opts.IgnoreCase, "ignore-case", "ic", false, "match regex patterns case insensitively"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output file to write matches"),
		flagSet.StringVarP(&opts.Format, "format", "f", spanx.DefaultTemplate, "output template ({{input}},{{label}},{{start}},{{end}},{{text}},{{deviation}},{{start_char}},{{end_char}})"),
		flagSet.BoolVarP(&opts.JSON, "json", "j", false, "write output in JSONL(ines) format"),
		flagSet.BoolVarP(&opts.Unique, "unique", "u", false, "write each distinct output line once"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display spanx version"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.Config, "config", "", `spanx cli config file (default '$HOME/.config/spanx/config.yaml')`),
	)

	flagSet.CreateGroup("update", "Update",
		flagSet.CallbackVarP(GetUpdateCallback(), "update", "up", "update spanx to latest version"),
		flagSet.BoolVarP(&opts.DisableUpdateCheck, "disable-update-check", "duc", false, "disable automatic spanx update check"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Config != "" {
		if err := flagSet.MergeConfigFile(opts.Config); err != nil {
			gologger.Error().Msgf("failed to read config file got %v", err)
		}
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if !opts.DisableUpdateCheck {
		checkUpdate(opts.Verbose)
	}

	if opts.Library == defaultLibraryPath {
		ensureDefaultLibrary(defaultLibraryPath)
	}

	opts.Stdin = fileutil.HasStdin()
	opts.Regex = pairs(opts.regex)
	opts.Fuzzy = pairs(opts.fuzzy)

	if opts.ListPredefined {
		for _, name := range spanx.NewPredefined(nil).Names() {
			gologger.Silent().Msg(name)
		}
		os.Exit(0)
	}

	if err := opts.validate(); err != nil {
		gologger.Fatal().Msgf("spanx: %v", err)
	}
	return opts
}

func (o *Options) validate() error {
	if o.MinRatio < 0 || o.MinRatio > 100 {
		return errorutil.New("min-ratio must be within 0-100, got %d", o.MinRatio)
	}
	if _, err := similarity.Resolve(o.FuzzyFunc); err != nil {
		return err
	}
	if o.JSON && o.Format != spanx.DefaultTemplate {
		return errorutil.New("json and format cannot be used together")
	}
	return nil
}

func pairs(m goflags.RuntimeMap) map[string]string {
	out := map[string]string{}
	for k, v := range m.AsMap() {
		if value, ok := v.(string); ok {
			out[k] = value
		}
	}
	return out
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}
