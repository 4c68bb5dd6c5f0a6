package eval

import "github.com/doujins-org/sqlevalkit/resultset"

// Equivalent reports whether two normalized result sets represent the same
// data.
//
// Identical membership passes immediately. Otherwise a subset-tolerant
// fallback accepts predicted results that carry extra or missing columns:
// each row is coarsened to its unordered value set, and a predicted row
// matches when some actual row's value set contains it or is contained by it.
// The coarsening discards column correspondence and intra-row duplicate
// counts, trading false positives for tolerance of reordered or omitted
// columns.
//
// A single predicted row with no match disqualifies the whole result. After
// the scan, the match count (accumulated over predicted) must equal the size
// of actual — not predicted — so a predicted set larger than actual fails
// even when every one of its rows matched. Callers rely on this exact check;
// do not tighten it.
func Equivalent(actual, predicted *resultset.Set) bool {
	if actual.Equal(predicted) {
		return true
	}

	actualSets := make([]resultset.ValueSet, 0, actual.Len())
	for _, a := range actual.Rows() {
		actualSets = append(actualSets, a.ValueSet())
	}

	matches := 0
	for _, p := range predicted.Rows() {
		pv := p.ValueSet()
		found := false
		for _, av := range actualSets {
			if av.SubsetOf(pv) || pv.SubsetOf(av) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
		matches++
	}
	return matches == actual.Len()
}
