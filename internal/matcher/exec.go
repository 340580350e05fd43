package matcher

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"molcover/internal/category"
)

var ErrNoCommand = errors.New("exec categorizer: empty command")

// Exec labels molecules by running an external command once per molecule.
// The SMILES string is written to the command's stdin followed by a
// newline; every non-blank stdout line that does not start with '#' is one
// category id. A non-zero exit status is a categorization failure.
type Exec struct {
	name    string
	args    []string
	timeout time.Duration
}

// NewExec builds an Exec from a command line split on whitespace (no shell
// interpretation). timeout <= 0 disables the per-molecule deadline.
func NewExec(command string, timeout time.Duration) (*Exec, error) {
	f := strings.Fields(command)
	if len(f) == 0 {
		return nil, ErrNoCommand
	}
	return &Exec{name: f[0], args: f[1:], timeout: timeout}, nil
}

func (e *Exec) Labels(ctx context.Context, notation string) ([]category.ID, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.name, e.args...)
	cmd.Stdin = strings.NewReader(notation + "\n")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w", e.name, ctx.Err())
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", e.name, err, firstLine(msg))
		}
		return nil, fmt.Errorf("%s: %w", e.name, err)
	}

	var ids []category.ID
	sc := bufio.NewScanner(&stdout)
	for sc.Scan() {
		l := strings.TrimSpace(sc.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		ids = append(ids, category.ID(l))
	}
	return ids, sc.Err()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
