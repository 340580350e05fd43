package matcher

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"molcover/internal/category"
)

var ErrTableFormat = errors.New("unrecognized label table")

// Table labels molecules from a table precomputed by an external toolkit.
// Two layouts are accepted, both with a header row:
//
//	SMILES,Count,<category>,<category>...   boolean cells (the -of report layout)
//	SMILES,Categories                       ';'-separated category ids
//
// Lookups are by exact notation.
type Table struct {
	vocab  []category.ID
	labels map[string][]category.ID
}

// LoadTable reads a label table from path.
func LoadTable(path string) (*Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	t, err := ReadTable(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadTable parses a label table.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty", ErrTableFormat)
	}
	if err != nil {
		return nil, err
	}
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "smiles") {
		return nil, fmt.Errorf("%w: first column must be SMILES", ErrTableFormat)
	}

	t := &Table{labels: make(map[string][]category.ID)}
	wide := strings.EqualFold(strings.TrimSpace(header[1]), "count")
	if wide {
		for _, h := range header[2:] {
			t.vocab = append(t.vocab, category.ID(strings.TrimSpace(h)))
		}
	} else if len(header) != 2 {
		return nil, fmt.Errorf("%w: expected SMILES,Categories or SMILES,Count,...", ErrTableFormat)
	}

	seen := make(map[category.ID]struct{}, len(t.vocab))
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		notation := strings.TrimSpace(row[0])
		if notation == "" {
			continue
		}
		var ids []category.ID
		if wide {
			if len(row) != len(header) {
				return nil, fmt.Errorf("%w: line %d has %d fields, want %d", ErrTableFormat, line, len(row), len(header))
			}
			for i, cell := range row[2:] {
				on, err := strconv.ParseBool(strings.TrimSpace(cell))
				if err != nil {
					return nil, fmt.Errorf("%w: line %d column %q: %v", ErrTableFormat, line, t.vocab[i], err)
				}
				if on {
					ids = append(ids, t.vocab[i])
				}
			}
		} else {
			if len(row) > 1 {
				for _, f := range strings.Split(row[1], ";") {
					if id := category.ID(strings.TrimSpace(f)); id != "" {
						ids = append(ids, id)
						if _, ok := seen[id]; !ok {
							seen[id] = struct{}{}
							t.vocab = append(t.vocab, id)
						}
					}
				}
			}
		}
		t.labels[notation] = append(t.labels[notation], ids...)
		if t.labels[notation] == nil {
			t.labels[notation] = []category.ID{}
		}
	}
	return t, nil
}

func (t *Table) Labels(_ context.Context, notation string) ([]category.ID, error) {
	ids, ok := t.labels[notation]
	if !ok {
		return nil, ErrUnknownMolecule
	}
	return ids, nil
}

func (t *Table) Vocabulary() []category.ID { return t.vocab }

// Len is the number of labelled molecules.
func (t *Table) Len() int { return len(t.labels) }
