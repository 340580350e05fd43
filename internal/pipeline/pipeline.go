// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"time"

	"molcover/internal/category"
	"molcover/internal/smiles"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
)

// Config controls the categorization pool.
type Config struct {
	Workers int // pool size; <=1 runs sequentially in the caller's goroutine
}

// Result is the outcome for one record. Set is never nil; it is empty
// when Err is set.
type Result struct {
	Record smiles.Record
	Set    category.Set
	Err    error
}

// Stats summarizes a batch.
type Stats struct {
	Total  int
	OK     int
	Failed int
}

// CategorizeAll categorizes every record and returns one Result per record,
// in input order regardless of completion order. It blocks until all
// dispatched records are finished. When ctx is canceled no new records are
// dispatched; records that never ran carry the context error, and ctx.Err()
// is returned alongside the complete result slice.
func CategorizeAll(ctx context.Context, cfg Config, recs []smiles.Record, c category.Categorizer) ([]Result, error) {
	log := zerolog.Ctx(ctx)
	start := time.Now()

	out := make([]Result, len(recs))
	done := make([]bool, len(recs))

	// Each index is written by exactly one goroutine.
	run := func(i int) {
		out[i] = categorizeOne(ctx, c, recs[i])
		done[i] = true
		if out[i].Err != nil {
			log.Warn().
				Int("index", recs[i].Index).
				Str("molecule", recs[i].ID()).
				Err(out[i].Err).
				Msg("categorization failed; treating as empty category set")
		}
	}

	if cfg.Workers <= 1 {
		for i := range recs {
			if ctx.Err() != nil {
				break
			}
			run(i)
		}
	} else {
		p := pool.New().WithMaxGoroutines(cfg.Workers)
	feed:
		for i := range recs {
			select {
			case <-ctx.Done():
				break feed
			default:
			}
			p.Go(func() { run(i) })
		}
		p.Wait()
	}

	err := ctx.Err()
	if err != nil {
		for i := range out {
			if !done[i] {
				out[i] = Result{Record: recs[i], Set: category.Set{}, Err: category.Wrap(recs[i], err)}
			}
		}
	}

	st := Summarize(out)
	log.Debug().
		Int("workers", cfg.Workers).
		Int("molecules", st.Total).
		Int("failed", st.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("categorization finished")
	return out, err
}

// categorizeOne runs the categorizer for one record, converting errors and
// panics into a *category.Error with an empty set.
func categorizeOne(ctx context.Context, c category.Categorizer, rec smiles.Record) Result {
	var (
		set category.Set
		err error
	)
	if r := panics.Try(func() { set, err = c.Categorize(ctx, rec) }); r != nil {
		err = r.AsError()
	}
	if err != nil {
		return Result{Record: rec, Set: category.Set{}, Err: category.Wrap(rec, err)}
	}
	if set == nil {
		set = category.Set{}
	}
	return Result{Record: rec, Set: set}
}

// Summarize counts successes and failures.
func Summarize(rs []Result) Stats {
	st := Stats{Total: len(rs)}
	for _, r := range rs {
		if r.Err != nil {
			st.Failed++
		} else {
			st.OK++
		}
	}
	return st
}
