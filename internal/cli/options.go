// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"molcover/internal/matcher"
	"molcover/internal/version"
)

// ErrConfig marks invalid command-line configuration.
var ErrConfig = errors.New("configuration error")

// Options holds all CLI flags and arguments.
type Options struct {
	// Input / selection
	Input    string
	Target   int // 0 = no limit
	MinCount int
	Workers  int // 0 = all CPUs

	// Output
	Output       string
	FullOutput   string
	CountsOutput string

	// Categorization
	Categorizer string
	ConfigFile  string
	LabelsFile  string
	Exec        string
	ExecTimeout time.Duration

	// Logging
	LogLevel string
	Quiet    bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: greedy category-coverage selection of molecules

License: MIT
Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Input, "i", "", "input SMILES library, one molecule per line ('-' = stdin; .gz/.zst/.lz4 ok) [*]")
	fs.IntVar(&opt.Target, "n", 0, "number of molecules to select (0 = until coverage is exhausted) [0]")
	fs.IntVar(&opt.Workers, "np", 1, "number of categorization workers (0 = all CPUs) [1]")
	fs.IntVar(&opt.MinCount, "c", 0, "minimum categories a molecule needs to be a candidate [0]")

	fs.StringVar(&opt.Output, "o", "", "selected molecules output (default <input>.selected.smi)")
	fs.StringVar(&opt.FullOutput, "of", "", "per-molecule category CSV (optional)")
	fs.StringVar(&opt.CountsOutput, "oc", "", "per-category count CSV (optional)")

	fs.StringVar(&opt.Categorizer, "categorizer", matcher.KindRules, "categorizer backend: "+strings.Join(matcher.Kinds(), " | ")+" ["+matcher.KindRules+"]")
	fs.StringVar(&opt.ConfigFile, "config", "", "rule set file for the rules backend (yaml/toml/json; default embedded)")
	fs.StringVar(&opt.LabelsFile, "labels", "", "precomputed label CSV for the table backend")
	fs.StringVar(&opt.Exec, "exec", "", "labeller command for the exec backend (SMILES on stdin, one category per line)")
	fs.DurationVar(&opt.ExecTimeout, "exec-timeout", 30*time.Second, "per-molecule timeout for the exec backend (0 = none) [30s]")

	fs.StringVar(&opt.LogLevel, "log-level", "info", "log level: debug | info | warn | error [info]")
	fs.BoolVar(&opt.Quiet, "q", false, "only log errors [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if fs.NArg() > 0 {
		return opt, fmt.Errorf("%w: unexpected arguments %q", ErrConfig, fs.Args())
	}

	// Validation
	switch {
	case opt.Input == "":
		return opt, fmt.Errorf("%w: -i is required", ErrConfig)
	case opt.Target < 0:
		return opt, fmt.Errorf("%w: -n must be ≥ 0", ErrConfig)
	case opt.Workers < 0:
		return opt, fmt.Errorf("%w: -np must be ≥ 0", ErrConfig)
	case opt.MinCount < 0:
		return opt, fmt.Errorf("%w: -c must be ≥ 0", ErrConfig)
	case opt.ExecTimeout < 0:
		return opt, fmt.Errorf("%w: -exec-timeout must be ≥ 0", ErrConfig)
	}
	switch opt.Categorizer {
	case matcher.KindTable:
		if opt.LabelsFile == "" {
			return opt, fmt.Errorf("%w: -categorizer table needs -labels", ErrConfig)
		}
	case matcher.KindExec:
		if strings.TrimSpace(opt.Exec) == "" {
			return opt, fmt.Errorf("%w: -categorizer exec needs -exec", ErrConfig)
		}
	}

	if opt.Output == "" {
		opt.Output = DefaultOutput(opt.Input)
	}
	return opt, nil
}

// DefaultOutput derives the selected-molecules path from the input path:
// lib.smi.gz → lib.selected.smi in the same directory.
func DefaultOutput(input string) string {
	if input == "-" {
		return "selected.smi"
	}
	dir, base := filepath.Split(input)
	for _, ext := range []string{".gz", ".zst", ".lz4"} {
		base = strings.TrimSuffix(base, ext)
	}
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return filepath.Join(dir, base+".selected.smi")
}

// MatcherOptions maps the categorization flags onto matcher.Options.
func (o Options) MatcherOptions() matcher.Options {
	return matcher.Options{
		Kind:        o.Categorizer,
		RulesFile:   o.ConfigFile,
		LabelsFile:  o.LabelsFile,
		Command:     o.Exec,
		ExecTimeout: o.ExecTimeout,
	}
}
