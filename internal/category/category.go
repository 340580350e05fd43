// Package category holds the vocabulary shared by the matcher adapter, the
// dispatcher and the coverage selector: category identifiers, per-molecule
// category sets and the per-record categorization error.
package category

import (
	"context"
	"fmt"
	"slices"

	"molcover/internal/smiles"
)

// ID identifies one structural or force-field-parameter class, e.g. "b83"
// or "Thioketone". Equality is exact.
type ID string

// Set is a sorted, de-duplicated list of IDs. The zero value is the empty set.
type Set []ID

// NewSet builds a Set from ids in any order, dropping duplicates and empties.
func NewSet(ids ...ID) Set {
	out := make(Set, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// FromStrings is NewSet for plain strings.
func FromStrings(ids []string) Set {
	conv := make([]ID, len(ids))
	for i, s := range ids {
		conv[i] = ID(s)
	}
	return NewSet(conv...)
}

func (s Set) Len() int { return len(s) }

func (s Set) Contains(id ID) bool {
	_, ok := slices.BinarySearch(s, id)
	return ok
}

// Categorizer maps one molecule to the categories it exercises.
// Implementations must be safe for concurrent use.
type Categorizer interface {
	Categorize(ctx context.Context, rec smiles.Record) (Set, error)
}

// Vocabularian is implemented by categorizers that know every category they
// can emit; the order fixes report column order.
type Vocabularian interface {
	Vocabulary() []ID
}

// Error is a per-record categorization failure. It is never fatal to a batch.
type Error struct {
	Index    int
	Notation string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("molecule %d (%s): %v", e.Index, e.Notation, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns err as an *Error for rec, leaving existing *Error values alone.
func Wrap(rec smiles.Record, err error) error {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*Error); ok {
		return ce
	}
	return &Error{Index: rec.Index, Notation: rec.Notation, Err: err}
}
