package rules

import (
	"sort"

	"github.com/abes-esr/qualimarc/internal/types"
)

// OccurrenceSet is a set of field occurrences, keyed by index in Record.Fields.
// A nil set is empty and safe to read.
type OccurrenceSet map[int]struct{}

// newOccurrenceSet builds a set from field references.
func newOccurrenceSet(refs []types.FieldRef) OccurrenceSet {
	s := make(OccurrenceSet, len(refs))
	for _, ref := range refs {
		s[ref.Occurrence] = struct{}{}
	}
	return s
}

// Has reports whether occurrence i is in the set.
func (s OccurrenceSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Len returns the number of occurrences.
func (s OccurrenceSet) Len() int { return len(s) }

// Sorted returns occurrence indices in ascending order.
func (s OccurrenceSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Refs resolves the set against rec, in record order.
func (s OccurrenceSet) Refs(rec *types.Record) []types.FieldRef {
	if len(s) == 0 {
		return nil
	}
	refs := make([]types.FieldRef, 0, len(s))
	for _, i := range s.Sorted() {
		refs = append(refs, types.FieldRef{Tag: rec.Field(types.FieldRef{Occurrence: i}).Tag, Occurrence: i})
	}
	return refs
}

func intersect(a, b OccurrenceSet) OccurrenceSet {
	out := make(OccurrenceSet)
	for i := range a {
		if b.Has(i) {
			out[i] = struct{}{}
		}
	}
	return out
}

func union(a, b OccurrenceSet) OccurrenceSet {
	out := make(OccurrenceSet, len(a)+len(b))
	for i := range a {
		out[i] = struct{}{}
	}
	for i := range b {
		out[i] = struct{}{}
	}
	return out
}

// combineSets is the set counterpart of Combine:
// BoolNone replaces, BoolAnd intersects, BoolOr unions.
func combineSets(op BoolOp, acc, value OccurrenceSet) OccurrenceSet {
	switch op {
	case BoolAnd:
		return intersect(acc, value)
	case BoolOr:
		return union(acc, value)
	default:
		return union(nil, value)
	}
}
