package coverage

import (
	"container/heap"
	"slices"

	"molcover/internal/category"

	"github.com/RoaringBitmap/roaring/v2"
)

// Entry is one categorized molecule. Index is its library position and is
// the tie-break key.
type Entry struct {
	Index int
	Set   category.Set
}

// Pick is one selection step.
type Pick struct {
	Index int // library index of the chosen molecule
	Gain  int // categories it newly covered
}

// Selection is ordered by selection step; the first pick is the most valuable.
type Selection []Pick

// Indices returns the library indices in selection order.
func (s Selection) Indices() []int {
	out := make([]int, len(s))
	for i, p := range s {
		out[i] = p.Index
	}
	return out
}

// Options tunes Select.
type Options struct {
	// MinCount excludes molecules exercising fewer categories than this.
	MinCount int
}

// Select runs greedy maximum coverage over entries and returns at most
// target picks together with the final coverage state.
//
// Each step picks the candidate with the largest number of uncovered
// categories, lowest Index first among equals, and credits every category
// of the pick to the hit counts. A step whose best gain is zero ends the
// selection, unless no candidate has any category at all: then the
// selection degenerates to library order, which may include entries whose
// empty Set stands for a failed categorization. target <= 0 selects nothing.
func Select(entries []Entry, target int, opts Options) (Selection, *State) {
	st := newState()

	lib := slices.Clone(entries)
	slices.SortStableFunc(lib, func(a, b Entry) int { return a.Index - b.Index })

	// Intern in library order so category ids do not depend on who the
	// candidates are.
	sets := make([]*roaring.Bitmap, len(lib))
	for i, e := range lib {
		sets[i] = st.bitmap(e.Set)
	}

	h := make(gainHeap, 0, len(lib))
	anyCategory := false
	for i, e := range lib {
		if e.Set.Len() < opts.MinCount {
			continue
		}
		card := int(sets[i].GetCardinality())
		anyCategory = anyCategory || card > 0
		h = append(h, candidate{pos: i, index: e.Index, gain: card})
	}
	heap.Init(&h)

	var sel Selection
	for len(sel) < target && h.Len() > 0 {
		top := heap.Pop(&h).(candidate)
		if top.round != len(sel) {
			// Gains only shrink as coverage grows; refresh and retry.
			bm := sets[top.pos]
			top.gain = int(bm.GetCardinality() - bm.AndCardinality(st.covered))
			top.round = len(sel)
			heap.Push(&h, top)
			continue
		}
		if top.gain == 0 && anyCategory {
			break
		}
		sel = append(sel, Pick{Index: top.index, Gain: top.gain})
		st.credit(sets[top.pos])
	}
	return sel, st
}

// candidate is a heap item. gain is exact when round equals the number of
// picks made so far, an upper bound otherwise.
type candidate struct {
	pos   int
	index int
	gain  int
	round int
}

// gainHeap pops the highest gain first, then the lowest library index.
type gainHeap []candidate

func (h gainHeap) Len() int { return len(h) }
func (h gainHeap) Less(i, j int) bool {
	if h[i].gain != h[j].gain {
		return h[i].gain > h[j].gain
	}
	return h[i].index < h[j].index
}
func (h gainHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *gainHeap) Push(x any)   { *h = append(*h, x.(candidate)) }
func (h *gainHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
