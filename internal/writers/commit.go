package writers

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Artifact is one report destined for Path.
type Artifact struct {
	Kind string
	Path string
}

// rename is swapped in tests to fail a commit midway.
var rename = os.Rename

// Commit renders every artifact concurrently into a temporary file next to
// its destination (creating parent directories), then renames them all into
// place. Existing destinations are moved aside first and restored if any
// rename fails, so on error every destination is as it was before the call.
func Commit(ctx context.Context, rep *Report, arts []Artifact) error {
	temps := make([]string, len(arts))
	cleanup := func() {
		for _, t := range temps {
			if t != "" {
				_ = os.Remove(t)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, a := range arts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tmp, err := renderTemp(a, rep)
			temps[i] = tmp
			if err != nil {
				return fmt.Errorf("write %s report %s: %w", a.Kind, a.Path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		cleanup()
		return err
	}
	if err := ctx.Err(); err != nil {
		cleanup()
		return err
	}

	if err := install(arts, temps); err != nil {
		cleanup()
		return err
	}
	return nil
}

// install moves temps[i] to arts[i].Path for every i, or for none.
// Installed entries in temps are cleared.
func install(arts []Artifact, temps []string) error {
	backups := make([]string, len(arts))
	done := 0
	rollback := func() {
		for i := done - 1; i >= 0; i-- {
			_ = os.Remove(arts[i].Path)
		}
		for i, b := range backups {
			if b != "" {
				_ = rename(b, arts[i].Path)
			}
		}
	}

	for i, a := range arts {
		if _, err := os.Lstat(a.Path); err == nil {
			backups[i] = temps[i] + ".bak"
			if err := rename(a.Path, backups[i]); err != nil {
				backups[i] = ""
				rollback()
				return fmt.Errorf("commit %s: %w", a.Path, err)
			}
		}
		if err := rename(temps[i], a.Path); err != nil {
			rollback()
			return fmt.Errorf("commit %s: %w", a.Path, err)
		}
		temps[i] = ""
		done++
	}

	for _, b := range backups {
		if b != "" {
			_ = os.Remove(b)
		}
	}
	return nil
}

func renderTemp(a Artifact, rep *Report) (string, error) {
	if fi, err := os.Stat(a.Path); err == nil && !fi.Mode().IsRegular() {
		return "", fmt.Errorf("%s exists and is not a regular file", a.Path)
	}
	dir := filepath.Dir(a.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	fh, err := os.CreateTemp(dir, "."+filepath.Base(a.Path)+".*.tmp")
	if err != nil {
		return "", err
	}
	bw := bufio.NewWriter(fh)
	rerr := Render(a.Kind, bw, rep)
	if rerr == nil {
		rerr = bw.Flush()
	}
	if cerr := fh.Close(); rerr == nil {
		rerr = cerr
	}
	if rerr == nil {
		rerr = os.Chmod(fh.Name(), 0o644)
	}
	return fh.Name(), rerr
}
