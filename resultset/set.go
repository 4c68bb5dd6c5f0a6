package resultset

import "strings"

// Row is one query result row, column order preserved.
type Row []Value

// NormalizeRow normalizes every cell, preserving column position and count.
func NormalizeRow(row Row) Row {
	out := make(Row, len(row))
	for i, v := range row {
		out[i] = Normalize(v)
	}
	return out
}

// Key returns a stable key for the ordered tuple of cell keys. Two rows get
// the same key exactly when they have the same length and pairwise-equal
// cells.
func (r Row) Key() string {
	var b strings.Builder
	for i, v := range r {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		b.WriteString(v.Key())
	}
	return b.String()
}

// ValueSet is the unordered set of distinct cell keys in a row. Column
// position and duplicate cells are discarded, so (5, "a") and ("a", 5) carry
// the same value set and (5, 5) collapses to a single member.
type ValueSet map[string]struct{}

// ValueSet returns the row's cells as an unordered key set.
func (r Row) ValueSet() ValueSet {
	out := make(ValueSet, len(r))
	for _, v := range r {
		out[v.Key()] = struct{}{}
	}
	return out
}

// SubsetOf reports whether every member of s is also in other.
func (s ValueSet) SubsetOf(other ValueSet) bool {
	if len(s) > len(other) {
		return false
	}
	for k := range s {
		if _, ok := other[k]; !ok {
			return false
		}
	}
	return true
}

// Set is a deduplicated, order-independent set of normalized rows. Rows are
// keyed by their full ordered tuple, so rows differing only by
// normalization-insignificant formatting collapse to one member while rows
// differing in any normalized cell stay distinct.
type Set struct {
	rows map[string]Row
}

// FromRows normalizes every row and deduplicates by full-tuple equality.
// Feeding a Set's own rows back in reproduces an equal Set.
func FromRows(rows []Row) *Set {
	s := &Set{rows: make(map[string]Row, len(rows))}
	for _, r := range rows {
		s.Add(r)
	}
	return s
}

// Add normalizes row and inserts it, collapsing duplicates.
func (s *Set) Add(row Row) {
	n := NormalizeRow(row)
	s.rows[n.Key()] = n
}

// Len returns the number of distinct normalized rows.
func (s *Set) Len() int { return len(s.rows) }

// Contains reports whether the normalization of row is a member.
func (s *Set) Contains(row Row) bool {
	_, ok := s.rows[NormalizeRow(row).Key()]
	return ok
}

// Rows returns the member rows in unspecified order.
func (s *Set) Rows() []Row {
	out := make([]Row, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r)
	}
	return out
}

// Equal reports whether both sets have exactly the same membership.
func (s *Set) Equal(other *Set) bool {
	if len(s.rows) != len(other.rows) {
		return false
	}
	for k := range s.rows {
		if _, ok := other.rows[k]; !ok {
			return false
		}
	}
	return true
}
