package blocking

import (
	"sort"

	"medmatch/internal/record"
)

// Pair is an unordered candidate pair stored with the smaller record id
// first, so the same pair emitted by several predicates deduplicates to one
// comparison.
type Pair struct {
	Left  string
	Right string
}

// NewPair builds a Pair in canonical order.
func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{Left: a, Right: b}
}

// Index generates candidate pairs from canonical records using a fixed
// predicate set.
type Index struct {
	predicates []Predicate
}

// NewIndex constructs an Index over the named predicates.
func NewIndex(names []string) (*Index, error) {
	predicates, err := ByNames(names)
	if err != nil {
		return nil, err
	}
	return &Index{predicates: predicates}, nil
}

// Pairs returns every unique candidate pair produced by any predicate,
// sorted for deterministic downstream processing.
func (idx *Index) Pairs(records []record.Canonical) []Pair {
	unique := make(map[Pair]struct{})
	for _, predicate := range idx.predicates {
		groups := make(map[string][]string)
		for _, rec := range records {
			key := predicate.Key(rec)
			if key == "" {
				continue
			}
			groups[key] = append(groups[key], rec.ID)
		}
		for _, ids := range groups {
			for i := 0; i < len(ids); i++ {
				for j := i + 1; j < len(ids); j++ {
					unique[NewPair(ids[i], ids[j])] = struct{}{}
				}
			}
		}
	}

	pairs := make([]Pair, 0, len(unique))
	for pair := range unique {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Left != pairs[j].Left {
			return pairs[i].Left < pairs[j].Left
		}
		return pairs[i].Right < pairs[j].Right
	})
	return pairs
}
