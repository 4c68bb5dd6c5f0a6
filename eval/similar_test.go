package eval

import (
	"testing"

	"github.com/doujins-org/sqlevalkit/resultset"
)

func set(rows ...resultset.Row) *resultset.Set {
	return resultset.FromRows(rows)
}

func TestEquivalentExactMatch(t *testing.T) {
	actual := set(resultset.Row{resultset.IntValue(1), resultset.TextValue("Alice")})
	predicted := set(resultset.Row{resultset.IntValue(1), resultset.TextValue("ALICE")})
	if !Equivalent(actual, predicted) {
		t.Fatalf("case-insensitive identical rows must be equivalent")
	}
}

func TestEquivalentEmptySets(t *testing.T) {
	if !Equivalent(set(), set()) {
		t.Fatalf("two empty result sets are equivalent")
	}
	if Equivalent(set(), set(resultset.Row{resultset.IntValue(1)})) {
		t.Fatalf("empty actual with non-empty predicted must fail")
	}
	if Equivalent(set(resultset.Row{resultset.IntValue(1)}), set()) {
		t.Fatalf("non-empty actual with empty predicted must fail")
	}
}

func TestEquivalentExtraColumnTolerance(t *testing.T) {
	actual := set(resultset.Row{resultset.IntValue(1)})
	predicted := set(resultset.Row{resultset.IntValue(1), resultset.IntValue(2)})
	if !Equivalent(actual, predicted) {
		t.Fatalf("predicted rows with extra columns must be tolerated")
	}
	// The other direction: predicted missing a column of actual.
	actual = set(resultset.Row{resultset.IntValue(1), resultset.IntValue(2)})
	predicted = set(resultset.Row{resultset.IntValue(1)})
	if !Equivalent(actual, predicted) {
		t.Fatalf("predicted rows with missing columns must be tolerated")
	}
}

func TestEquivalentColumnOrderDiscarded(t *testing.T) {
	actual := set(resultset.Row{resultset.IntValue(5), resultset.TextValue("a")})
	predicted := set(resultset.Row{resultset.TextValue("a"), resultset.IntValue(5)})
	if !Equivalent(actual, predicted) {
		t.Fatalf("the fallback compares rows as unordered value sets")
	}
}

func TestEquivalentMismatch(t *testing.T) {
	actual := set(resultset.Row{resultset.IntValue(1), resultset.IntValue(2)})
	predicted := set(resultset.Row{resultset.IntValue(3), resultset.IntValue(4)})
	if Equivalent(actual, predicted) {
		t.Fatalf("disjoint rows must not be equivalent")
	}
}

func TestEquivalentMultiRowWithExtraColumns(t *testing.T) {
	actual := set(
		resultset.Row{resultset.IntValue(1), resultset.TextValue("alice")},
		resultset.Row{resultset.IntValue(2), resultset.TextValue("bob")},
	)
	predicted := set(
		resultset.Row{resultset.IntValue(1), resultset.TextValue("Alice"), resultset.TextValue("extra1")},
		resultset.Row{resultset.IntValue(2), resultset.TextValue("BOB"), resultset.TextValue("extra2")},
	)
	if !Equivalent(actual, predicted) {
		t.Fatalf("matching row counts with extra columns must pass")
	}
}

// Pins the final count check: the match count accumulated while scanning
// predicted is compared against the size of actual. Three predicted rows can
// each match one of two actual rows, and the whole result still fails.
func TestEquivalentSizeAsymmetry(t *testing.T) {
	actual := set(
		resultset.Row{resultset.IntValue(1)},
		resultset.Row{resultset.IntValue(2)},
	)
	predicted := set(
		resultset.Row{resultset.IntValue(1)},
		resultset.Row{resultset.IntValue(2)},
		resultset.Row{resultset.IntValue(1), resultset.IntValue(3)},
	)
	if Equivalent(actual, predicted) {
		t.Fatalf("three matches against two actual rows must fail the count check")
	}
}

func TestEquivalentUnmatchedPredictedRowFailsFast(t *testing.T) {
	actual := set(
		resultset.Row{resultset.IntValue(1)},
		resultset.Row{resultset.IntValue(2)},
	)
	predicted := set(
		resultset.Row{resultset.IntValue(1)},
		resultset.Row{resultset.IntValue(9)},
	)
	if Equivalent(actual, predicted) {
		t.Fatalf("a predicted row matching nothing in actual must fail")
	}
}
