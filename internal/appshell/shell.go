// Package appshell wires a RunContext-style entry point to the process:
// signals, argv, stdio and the exit code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs run under a context canceled by SIGINT/SIGTERM and exits with
// its code. A canceled run never exits 0.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	os.Exit(invoke(run, os.Args[1:], os.Stdout, os.Stderr))
}

func invoke(run func(context.Context, []string, io.Writer, io.Writer) int, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
