// Package matcher adapts a chemistry backend to category.Categorizer.
//
// The backend is a black box mapping one SMILES string to category ids.
// The Adapter owns everything around it: lexical validation of the
// record, normalization into a category.Set and wrapping of failures as
// *category.Error. It never retries; suppression is the dispatcher's job.
//
// Backends:
//   • rules: SMILES fragment rules (viper-loaded, Aho-Corasick matched).
//   • table: labels precomputed by an external toolkit, read from CSV.
//   • exec:  an external labeller command, one process per molecule.
package matcher
