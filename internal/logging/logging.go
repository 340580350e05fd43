// Package logging builds the run logger. Every line carries a run id so
// concurrent batch jobs writing to one stream can be told apart.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options controls New.
type Options struct {
	Level string // zerolog level name; "" = info
	Quiet bool   // only errors
	JSON  bool   // raw JSON lines instead of the console format
}

// New returns a logger writing to w. The returned run id is also attached
// to every event as the "run" field.
func New(w io.Writer, o Options) (zerolog.Logger, string, error) {
	lvl := zerolog.InfoLevel
	if s := strings.TrimSpace(o.Level); s != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(s))
		if err != nil {
			return zerolog.Nop(), "", fmt.Errorf("log level %q: %w", o.Level, err)
		}
		lvl = l
	}
	if o.Quiet && lvl < zerolog.ErrorLevel {
		lvl = zerolog.ErrorLevel
	}

	out := w
	if !o.JSON {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.Kitchen}
	}
	run := uuid.NewString()
	lg := zerolog.New(out).Level(lvl).With().Timestamp().Str("run", run).Logger()
	return lg, run, nil
}

// Attach stores lg in ctx for zerolog.Ctx.
func Attach(ctx context.Context, lg zerolog.Logger) context.Context {
	return lg.WithContext(ctx)
}

// FromContext returns the logger stored by Attach, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
