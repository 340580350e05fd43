// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"time"

	"molcover/internal/category"
	"molcover/internal/cli"
	"molcover/internal/coverage"
	"molcover/internal/logging"
	"molcover/internal/matcher"
	"molcover/internal/pipeline"
	"molcover/internal/smiles"
	"molcover/internal/version"
	"molcover/internal/writers"

	"github.com/rs/zerolog"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitConfig      = 2
	ExitIO          = 3
	ExitInterrupted = 130
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("molcover")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		code := ExitConfig
		if errors.Is(err, flag.ErrHelp) {
			code = ExitOK
		} else {
			_, _ = fmt.Fprintln(stderr, err)
		}
		fs.SetOutput(outw)
		fs.Usage()
		return flushed(outw, stderr, code)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "molcover version %s\n", version.Version)
		return flushed(outw, stderr, ExitOK)
	}

	log, _, err := logging.New(stderr, logging.Options{Level: opts.LogLevel, Quiet: opts.Quiet})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "%v: %v\n", cli.ErrConfig, err)
		return ExitConfig
	}
	ctx := logging.Attach(parent, log)

	err = run(ctx, opts)
	switch {
	case err == nil:
		return ExitOK
	case parent.Err() != nil:
		log.Error().Err(err).Msg("interrupted")
		return ExitInterrupted
	case errors.Is(err, cli.ErrConfig):
		log.Error().Err(err).Msg("invalid configuration")
		return ExitConfig
	default:
		log.Error().Err(err).Msg("run failed")
		return ExitIO
	}
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func run(ctx context.Context, opts cli.Options) error {
	log := zerolog.Ctx(ctx)
	start := time.Now()

	cat, err := matcher.Open(opts.MatcherOptions())
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrConfig, err)
	}

	recs, err := smiles.ReadFile(opts.Input)
	if err != nil {
		return err
	}
	log.Info().Int("molecules", len(recs)).Str("input", opts.Input).Msg("read library")

	workers := opts.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	results, err := pipeline.CategorizeAll(ctx, pipeline.Config{Workers: workers}, recs, cat)
	if err != nil {
		return err
	}
	st := pipeline.Summarize(results)
	if st.OK == 0 {
		return fmt.Errorf("%w: none of %d molecules could be categorized", smiles.ErrInput, st.Total)
	}
	if st.Failed > 0 {
		log.Warn().Int("failed", st.Failed).Int("molecules", st.Total).Msg("some molecules were not categorized")
	}

	entries := make([]coverage.Entry, len(results))
	sets := make([]category.Set, len(results))
	for i, r := range results {
		entries[i] = coverage.Entry{Index: r.Record.Index, Set: r.Set}
		sets[i] = r.Set
	}
	target := opts.Target
	if target == 0 {
		target = len(entries)
	}
	sel, state := coverage.Select(entries, target, coverage.Options{MinCount: opts.MinCount})
	for _, p := range sel {
		if r := results[p.Index]; r.Err != nil {
			log.Warn().
				Int("index", r.Record.Index).
				Str("molecule", r.Record.ID()).
				Err(r.Err).
				Msg("selected molecule that failed categorization")
		}
	}
	log.Info().
		Int("selected", len(sel)).
		Int("target", opts.Target).
		Int("covered", state.Covered()).
		Int("categories", len(state.Categories())).
		Msg("selection finished")
	if opts.Target > 0 && len(sel) < opts.Target {
		log.Info().Msgf("coverage exhausted after %d of %d molecules", len(sel), opts.Target)
	}

	rep := &writers.Report{Records: recs, Sets: sets, Selection: sel, State: state, Vocabulary: cat.Vocabulary()}
	if err := writers.Commit(ctx, rep, artifacts(opts)); err != nil {
		return err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msgf("Wrote %d molecules to %s", len(sel), opts.Output)
	return nil
}

func artifacts(opts cli.Options) []writers.Artifact {
	arts := []writers.Artifact{{Kind: writers.KindSMILES, Path: opts.Output}}
	if opts.FullOutput != "" {
		arts = append(arts, writers.Artifact{Kind: writers.KindFull, Path: opts.FullOutput})
	}
	if opts.CountsOutput != "" {
		arts = append(arts, writers.Artifact{Kind: writers.KindCounts, Path: opts.CountsOutput})
	}
	return arts
}

// flushed flushes usage/version output; a closed pipe on stdout is not an error.
func flushed(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return code
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitIO
	}
	return code
}
