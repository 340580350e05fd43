// internal/smiles/reader.go
package smiles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInput marks a library that is missing, unreadable or has no records.
var ErrInput = errors.New("input error")

// Record is one molecule of the library.
type Record struct {
	Index    int    // position among non-blank lines; library order
	Notation string // first whitespace-separated field
	Name     string // remainder of the line, may be empty
	Line     string // trimmed source line, written back verbatim
}

// ID is a human-readable identifier for logs.
func (r Record) ID() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Notation
}

// ParseLine splits a trimmed .smi line into notation and optional name.
// ok is false for blank lines.
func ParseLine(line string) (notation, name string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", "", false
	}
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, "", true
	}
	return line[:i], strings.TrimSpace(line[i+1:]), true
}

// Read parses every non-blank line of r into a Record. Blank lines are
// skipped and do not consume an index.
func Read(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var recs []Record
	for sc.Scan() {
		notation, name, ok := ParseLine(sc.Text())
		if !ok {
			continue
		}
		recs = append(recs, Record{
			Index:    len(recs),
			Notation: notation,
			Name:     name,
			Line:     strings.TrimSpace(sc.Text()),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// ReadFile loads a whole library. Failures and empty libraries are
// reported as ErrInput.
func ReadFile(path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrInput, path, err)
	}
	defer rc.Close()

	recs, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrInput, path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: %s contains no molecules", ErrInput, displayPath(path))
	}
	return recs, nil
}

func displayPath(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
