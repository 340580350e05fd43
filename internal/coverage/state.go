package coverage

import (
	"molcover/internal/category"

	"github.com/RoaringBitmap/roaring/v2"
)

// State is the coverage accumulator owned by one Select call: the covered
// categories and, per category, how many selected molecules exercise it.
type State struct {
	names   []category.ID
	ids     map[category.ID]uint32
	covered *roaring.Bitmap
	hits    []int
	history []int
}

// CategoryCount is one row of the aggregate counts report.
type CategoryCount struct {
	ID    category.ID
	Count int
}

func newState() *State {
	return &State{ids: make(map[category.ID]uint32), covered: roaring.New()}
}

// intern returns the dense id of c, assigning the next one on first sight.
func (s *State) intern(c category.ID) uint32 {
	if id, ok := s.ids[c]; ok {
		return id
	}
	id := uint32(len(s.names))
	s.ids[c] = id
	s.names = append(s.names, c)
	s.hits = append(s.hits, 0)
	return id
}

func (s *State) bitmap(set category.Set) *roaring.Bitmap {
	bm := roaring.New()
	for _, c := range set {
		bm.Add(s.intern(c))
	}
	return bm
}

// credit marks bm covered and counts one hit for each of its categories.
func (s *State) credit(bm *roaring.Bitmap) {
	s.covered.Or(bm)
	it := bm.Iterator()
	for it.HasNext() {
		s.hits[it.Next()]++
	}
	s.history = append(s.history, int(s.covered.GetCardinality()))
}

// Covered is the number of distinct categories covered so far.
func (s *State) Covered() int { return int(s.covered.GetCardinality()) }

// IsCovered reports whether c is exercised by some selected molecule.
func (s *State) IsCovered(c category.ID) bool {
	id, ok := s.ids[c]
	return ok && s.covered.Contains(id)
}

// Hits is the number of selected molecules exercising c.
func (s *State) Hits(c category.ID) int {
	if id, ok := s.ids[c]; ok {
		return s.hits[id]
	}
	return 0
}

// Categories lists every category seen in the library, first-seen order.
func (s *State) Categories() []category.ID { return s.names }

// History is the covered-category count after each selection step.
func (s *State) History() []int { return s.history }

// Counts returns hit counts in vocab order. Categories seen in the library
// but missing from vocab follow in first-seen order; a nil vocab means
// first-seen order throughout.
func (s *State) Counts(vocab []category.ID) []CategoryCount {
	out := make([]CategoryCount, 0, len(vocab)+len(s.names))
	listed := make(map[category.ID]struct{}, len(vocab))
	for _, c := range vocab {
		if _, dup := listed[c]; dup {
			continue
		}
		listed[c] = struct{}{}
		out = append(out, CategoryCount{ID: c, Count: s.Hits(c)})
	}
	for _, c := range s.names {
		if _, ok := listed[c]; !ok {
			out = append(out, CategoryCount{ID: c, Count: s.Hits(c)})
		}
	}
	return out
}

// Columns is Counts without the numbers: vocab order, then the remaining
// library categories in first-seen order.
func (s *State) Columns(vocab []category.ID) []category.ID {
	counts := s.Counts(vocab)
	cols := make([]category.ID, len(counts))
	for i, c := range counts {
		cols[i] = c.ID
	}
	return cols
}
