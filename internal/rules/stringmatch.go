// internal/rules/stringmatch.go
package rules

import "github.com/abes-esr/qualimarc/internal/types"

/*
 * String match rule.
 *
 * Tests sub-values of Zone$SubZone against an ordered list of target strings
 * with one predicate selected by MatchMode. The first target carries no
 * operator; each later target is ET- or OU-linked to the accumulated result
 * of the targets before it.
 *
 * Evaluation flow (boolean result):
 *   1. No targets: unsatisfiable, false
 *   2. For each occurrence of Zone, for each sub-value with SubZone:
 *      fold targets left to right with Combine
 *   3. Short-circuit: return true as soon as the accumulator is true after an
 *      OU-linked target, or after the first target when the next one is not
 *      ET-linked. A sub-value whose whole fold is true also returns true.
 *
 * Short-circuit asymmetry: [a, b OU, c ET] returns true once a or b holds,
 * without evaluating c. Left-to-right accumulation, no operator precedence.
 *
 * Candidate flow (occurrence set): per target, the occurrences having at
 * least one sub-value satisfying it, folded with combineSets in declared
 * order. Never short-circuited.
 */

// Target is one target string of a string-match rule.
type Target struct {
	Text     string
	Operator BoolOp // BoolNone for the first target
}

// StringMatch tests Zone$SubZone values against Targets using Mode.
type StringMatch struct {
	RuleBase
	SubZone string
	Mode    MatchMode
	Targets []Target
}

func evaluateStringMatch(r *StringMatch, rec *types.Record) Outcome {
	pred := predicateFor(r.Mode)
	if pred == nil || len(r.Targets) == 0 {
		return Outcome{}
	}
	return Outcome{
		Matched:    stringMatchHolds(r, rec, pred),
		Candidates: stringMatchCandidates(r, rec, pred),
	}
}

// stringMatchHolds returns true on the first sub-value satisfying the target fold.
func stringMatchHolds(r *StringMatch, rec *types.Record, pred Predicate) bool {
	for _, ref := range rec.FieldsByTag(r.Zone) {
		for _, sv := range rec.Field(ref).SubValuesByCode(r.SubZone) {
			if matchTargets(sv.Text, r.Targets, pred) {
				return true
			}
		}
	}
	return false
}

// matchTargets folds targets over one value, stopping early per the
// short-circuit policy above.
func matchTargets(value string, targets []Target, pred Predicate) bool {
	acc := false
	for i, t := range targets {
		acc = Combine(t.Operator, acc, pred(value, t.Text))
		if !acc {
			continue
		}
		switch t.Operator {
		case BoolOr:
			return true
		case BoolNone:
			if i+1 == len(targets) || targets[i+1].Operator != BoolAnd {
				return true
			}
		}
	}
	return acc
}

// stringMatchCandidates folds the per-target occurrence sets.
func stringMatchCandidates(r *StringMatch, rec *types.Record, pred Predicate) OccurrenceSet {
	refs := rec.FieldsByTag(r.Zone)
	var acc OccurrenceSet
	for _, t := range r.Targets {
		matching := make(OccurrenceSet)
		for _, ref := range refs {
			for _, sv := range rec.Field(ref).SubValuesByCode(r.SubZone) {
				if pred(sv.Text, t.Text) {
					matching[ref.Occurrence] = struct{}{}
					break
				}
			}
		}
		acc = combineSets(t.Operator, acc, matching)
	}
	return acc
}
