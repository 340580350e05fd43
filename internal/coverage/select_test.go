package coverage

import (
	"fmt"
	"math/rand"
	"testing"

	"molcover/internal/category"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lib(sets ...category.Set) []Entry {
	out := make([]Entry, len(sets))
	for i, s := range sets {
		out[i] = Entry{Index: i, Set: s}
	}
	return out
}

func set(ids ...category.ID) category.Set { return category.NewSet(ids...) }

const (
	A = 0
	B = 1
	C = 2
)

func TestSelect_OverlappingScenario(t *testing.T) {
	// A:{x,y} B:{y,z} C:{z}; B and C tie on gain 1, B has the lower index.
	sel, st := Select(lib(set("x", "y"), set("y", "z"), set("z")), 2, Options{})

	assert.Equal(t, []int{A, B}, sel.Indices())
	assert.Equal(t, Selection{{Index: A, Gain: 2}, {Index: B, Gain: 1}}, sel)
	assert.Equal(t, 3, st.Covered())
	for _, c := range []category.ID{"x", "y", "z"} {
		assert.True(t, st.IsCovered(c))
	}
	assert.Equal(t, 1, st.Hits("x"))
	assert.Equal(t, 2, st.Hits("y"), "every category of a pick is credited")
	assert.Equal(t, 1, st.Hits("z"))
}

func TestSelect_AllEmptySetsDegenerateToLibraryOrder(t *testing.T) {
	sel, st := Select(lib(set(), set()), 5, Options{})
	assert.Equal(t, []int{A, B}, sel.Indices())
	assert.Equal(t, 0, st.Covered())

	sel, _ = Select(lib(set(), set(), set(), set()), 3, Options{})
	assert.Equal(t, []int{0, 1, 2}, sel.Indices())
}

func TestSelect_EarlyTermination(t *testing.T) {
	sel, st := Select(lib(set("x"), set("x"), set("x")), 3, Options{})
	assert.Equal(t, []int{A}, sel.Indices())
	assert.Less(t, len(sel), 3)
	assert.Equal(t, 1, st.Hits("x"))

	sel, _ = Select(lib(set("x"), set()), 5, Options{})
	assert.Equal(t, []int{A}, sel.Indices())
}

func TestSelect_EmptyLibrary(t *testing.T) {
	sel, st := Select(nil, 10, Options{})
	assert.Empty(t, sel)
	assert.Equal(t, 0, st.Covered())
	assert.Empty(t, st.Counts(nil))
}

func TestSelect_NonPositiveTarget(t *testing.T) {
	for _, n := range []int{0, -1} {
		sel, st := Select(lib(set("x"), set("y")), n, Options{})
		assert.Empty(t, sel)
		assert.Equal(t, 0, st.Covered())
	}
}

func TestSelect_TargetBeyondLibrary(t *testing.T) {
	// Greedy order, not library order.
	sel, _ := Select(lib(set("a"), set("b", "c", "d"), set("a", "e")), 10, Options{})
	assert.Equal(t, []int{1, 2}, sel.Indices())
}

func TestSelect_UsesIndexNotSlicePosition(t *testing.T) {
	entries := []Entry{
		{Index: 7, Set: set("x")},
		{Index: 3, Set: set("x")},
		{Index: 5, Set: set("y", "z")},
	}
	sel, _ := Select(entries, 3, Options{})
	assert.Equal(t, []int{5, 3}, sel.Indices())
}

func TestSelect_MinCount(t *testing.T) {
	entries := lib(set("x", "y"), set("z"), set("w", "v"))
	sel, st := Select(entries, 5, Options{MinCount: 2})
	assert.Equal(t, []int{0, 2}, sel.Indices())
	assert.False(t, st.IsCovered("z"))

	// Non-candidates still contribute columns to the reports.
	assert.Equal(t, []category.ID{"x", "y", "z", "v", "w"}, st.Categories())
}

func TestState_CountsOrder(t *testing.T) {
	_, st := Select(lib(set("b", "a"), set("c")), 2, Options{})

	assert.Equal(t, []CategoryCount{{"a", 1}, {"b", 1}, {"c", 1}}, st.Counts(nil))
	assert.Equal(t,
		[]CategoryCount{{"c", 1}, {"q", 0}, {"a", 1}, {"b", 1}},
		st.Counts([]category.ID{"c", "q", "c"}))
	assert.Equal(t, []category.ID{"c", "q", "a", "b"}, st.Columns([]category.ID{"c", "q"}))
}

// naiveSelect recomputes every gain every round; it is the reference the
// lazy heap must agree with.
func naiveSelect(entries []Entry, target, minCount int) []int {
	covered := map[category.ID]bool{}
	used := map[int]bool{}
	anyCategory := false
	for _, e := range entries {
		if e.Set.Len() >= minCount && e.Set.Len() > 0 {
			anyCategory = true
		}
	}
	var out []int
	for len(out) < target {
		best, bestGain := -1, -1
		for _, e := range entries {
			if used[e.Index] || e.Set.Len() < minCount {
				continue
			}
			g := 0
			for _, c := range e.Set {
				if !covered[c] {
					g++
				}
			}
			if g > bestGain || (g == bestGain && e.Index < best) {
				best, bestGain = e.Index, g
			}
		}
		if best < 0 || (bestGain == 0 && anyCategory) {
			break
		}
		used[best] = true
		out = append(out, best)
		for _, e := range entries {
			if e.Index == best {
				for _, c := range e.Set {
					covered[c] = true
				}
			}
		}
	}
	return out
}

func randomEntries(rng *rand.Rand, n, vocab, maxSet int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		var ids []category.ID
		for j := rng.Intn(maxSet + 1); j > 0; j-- {
			ids = append(ids, category.ID(fmt.Sprintf("c%d", rng.Intn(vocab))))
		}
		out[i] = Entry{Index: i, Set: category.NewSet(ids...)}
	}
	return out
}

func TestSelect_MatchesNaiveGreedy(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		entries := randomEntries(rng, 1+rng.Intn(60), 1+rng.Intn(30), 6)
		target := rng.Intn(len(entries) + 3)
		minCount := rng.Intn(3)

		sel, _ := Select(entries, target, Options{MinCount: minCount})
		want := naiveSelect(entries, target, minCount)
		if len(want) == 0 {
			require.Empty(t, sel, "trial %d", trial)
			continue
		}
		require.Equal(t, want, sel.Indices(), "trial %d", trial)
	}
}

func TestSelect_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	entries := randomEntries(rng, 400, 80, 8)
	sel, st := Select(entries, 100, Options{})

	seen := map[int]bool{}
	for _, p := range sel {
		require.False(t, seen[p.Index], "molecule %d selected twice", p.Index)
		seen[p.Index] = true
	}

	hist := st.History()
	require.Len(t, hist, len(sel))
	for i := 1; i < len(hist); i++ {
		assert.GreaterOrEqual(t, hist[i], hist[i-1])
	}

	// Total hits equal the summed set sizes of the picks.
	total, hits := 0, 0
	for _, p := range sel {
		total += entries[p.Index].Set.Len()
	}
	for _, c := range st.Counts(nil) {
		hits += c.Count
	}
	assert.Equal(t, total, hits)

	// Gains add up to coverage and are non-increasing.
	sum := 0
	for i, p := range sel {
		sum += p.Gain
		if i > 0 {
			assert.LessOrEqual(t, p.Gain, sel[i-1].Gain)
		}
	}
	assert.Equal(t, st.Covered(), sum)
}

func TestSelect_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	entries := randomEntries(rng, 300, 40, 5)
	first, _ := Select(entries, 50, Options{})

	shuffled := append([]Entry(nil), entries...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	again, _ := Select(shuffled, 50, Options{})
	assert.Equal(t, first, again)
}
