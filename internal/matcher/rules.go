package matcher

import (
	"context"
	"strings"
	"sync"

	"molcover/internal/category"
	"molcover/internal/config"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Rules labels molecules by literal SMILES fragments. All fragments of all
// rules are compiled into one Aho-Corasick automaton, so a molecule is
// scanned once regardless of rule count.
type Rules struct {
	vocab     []category.ID
	fragments []string
	owners    [][]int // fragment index -> rule indices
	matchers  sync.Pool
}

// NewRules compiles rs. Duplicate fragments across rules are matched once
// and credited to every owning rule.
func NewRules(rs *config.RuleSet) (*Rules, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	r := &Rules{vocab: make([]category.ID, 0, len(rs.Rules))}
	index := make(map[string]int)
	for ri, rule := range rs.Rules {
		r.vocab = append(r.vocab, category.ID(strings.TrimSpace(rule.ID)))
		for _, p := range rule.Patterns {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			fi, ok := index[p]
			if !ok {
				fi = len(r.fragments)
				index[p] = fi
				r.fragments = append(r.fragments, p)
				r.owners = append(r.owners, nil)
			}
			r.owners[fi] = appendUnique(r.owners[fi], ri)
		}
	}
	// Match mutates per-call dedup counters inside the automaton, so each
	// goroutine borrows its own copy.
	r.matchers.New = func() any { return ahocorasick.NewStringMatcher(r.fragments) }
	return r, nil
}

func (r *Rules) Labels(ctx context.Context, notation string) ([]category.ID, error) {
	m := r.matchers.Get().(*ahocorasick.Matcher)
	hits := m.Match([]byte(notation))
	r.matchers.Put(m)

	var out []category.ID
	for _, fi := range hits {
		if fi < 0 || fi >= len(r.owners) {
			continue
		}
		for _, ri := range r.owners[fi] {
			out = append(out, r.vocab[ri])
		}
	}
	return out, nil
}

// Vocabulary returns rule ids in rule-set order.
func (r *Rules) Vocabulary() []category.ID { return r.vocab }

func appendUnique(xs []int, x int) []int {
	for _, v := range xs {
		if v == x {
			return xs
		}
	}
	return append(xs, x)
}
