package writers

import (
	"molcover/internal/category"
	"molcover/internal/coverage"
	"molcover/internal/smiles"
)

// Report is everything a renderer may need. Records and Sets are indexed
// by library index.
type Report struct {
	Records    []smiles.Record
	Sets       []category.Set
	Selection  coverage.Selection
	State      *coverage.State
	Vocabulary []category.ID // preferred column order; nil = first seen
}

// Selected returns the chosen records in selection order.
func (r *Report) Selected() []smiles.Record {
	out := make([]smiles.Record, 0, len(r.Selection))
	for _, p := range r.Selection {
		out = append(out, r.Records[p.Index])
	}
	return out
}

// Columns is the category column order shared by the CSV reports.
func (r *Report) Columns() []category.ID {
	return r.State.Columns(r.Vocabulary)
}
