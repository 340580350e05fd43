package matcher

import (
	"context"
	"errors"

	"molcover/internal/category"
	"molcover/internal/smiles"
)

var ErrUnknownMolecule = errors.New("molecule not labelled by backend")

// Backend labels one SMILES string. Implementations must be safe for
// concurrent use and must not retain notation.
type Backend interface {
	Labels(ctx context.Context, notation string) ([]category.ID, error)
}

// Adapter implements category.Categorizer on top of a Backend.
type Adapter struct {
	backend  Backend
	validate bool
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithoutValidation skips the lexical SMILES check, for backends that
// accept other line notations.
func WithoutValidation() Option { return func(a *Adapter) { a.validate = false } }

func NewAdapter(b Backend, opts ...Option) *Adapter {
	a := &Adapter{backend: b, validate: true}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Categorize returns the category set of rec. Every failure is a
// *category.Error carrying the record's index and notation.
func (a *Adapter) Categorize(ctx context.Context, rec smiles.Record) (category.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, category.Wrap(rec, err)
	}
	if a.validate {
		if err := smiles.Validate(rec.Notation); err != nil {
			return nil, category.Wrap(rec, err)
		}
	}
	ids, err := a.backend.Labels(ctx, rec.Notation)
	if err != nil {
		return nil, category.Wrap(rec, err)
	}
	return category.NewSet(ids...), nil
}

// Vocabulary forwards the backend's vocabulary when it has one.
func (a *Adapter) Vocabulary() []category.ID {
	if v, ok := a.backend.(category.Vocabularian); ok {
		return v.Vocabulary()
	}
	return nil
}

// Backend returns the wrapped backend.
func (a *Adapter) Backend() Backend { return a.backend }

var _ category.Categorizer = (*Adapter)(nil)
