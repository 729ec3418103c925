package rules

import "github.com/abes-esr/qualimarc/internal/types"

// SubZoneClause is one presence clause of a same-zone presence rule.
type SubZoneClause struct {
	SubZone  string
	Present  bool
	Operator BoolOp // BoolNone for the first clause
}

// PresenceSubZonesSameZone holds when one single occurrence of Zone satisfies
// the clause expression. Clauses fold left to right, per occurrence.
type PresenceSubZonesSameZone struct {
	RuleBase
	Clauses []SubZoneClause
}

// evaluateSameZonePresence builds, per clause, the set of occurrences whose
// presence of the code matches the clause, then folds the sets with
// combineSets. Intersecting sets keeps only occurrences satisfying every
// ET clause, which is what ties the clauses to one occurrence.
func evaluateSameZonePresence(r *PresenceSubZonesSameZone, rec *types.Record) Outcome {
	refs := rec.FieldsByTag(r.Zone)
	var acc OccurrenceSet
	for _, c := range r.Clauses {
		matching := make(OccurrenceSet)
		for _, ref := range refs {
			if rec.Field(ref).HasCode(c.SubZone) == c.Present {
				matching[ref.Occurrence] = struct{}{}
			}
		}
		acc = combineSets(c.Operator, acc, matching)
	}
	return Outcome{Matched: acc.Len() > 0, Candidates: acc}
}
