// internal/rules/simple.go
package rules

import (
	"unicode/utf8"

	"github.com/abes-esr/qualimarc/internal/types"
)

/*
 * Simple rule variants.
 *
 * Closed set of atomic checks. SimpleRule is sealed: only the types in this
 * package implement it, and evaluateSimple dispatches with a type switch over
 * every variant. A new variant without a case falls into the default branch,
 * which is unsatisfiable.
 *
 * Outcome semantics: Matched=true means the anomaly the rule describes is
 * present and the owning compound rule raises its message. Candidates are the
 * field occurrences that individually satisfy the check; the composer uses
 * them for same-zone narrowing and for reporting triggering fields.
 *
 * Variants:
 *   - PresenceZone, PresenceSubZone: existence / negated existence
 *   - StringMatch: see stringmatch.go
 *   - CountZone, CountSubZone, CountCharacters: Compare over counts
 *   - PositionSubZone: code at a 1-based ordinal position
 *   - Indicator: indicator slot value
 *   - PresenceSubZonesSameZone: see samezone.go
 */

// RuleBase carries the fields every variant shares.
type RuleBase struct {
	ID   int
	Zone string
}

// Base returns the shared fields.
func (b RuleBase) Base() RuleBase { return b }

func (RuleBase) sealed() {}

// SimpleRule is one atomic check over a record.
type SimpleRule interface {
	Base() RuleBase
	sealed()
}

// Outcome is the result of one simple rule on one record.
type Outcome struct {
	Matched    bool
	Candidates OccurrenceSet
}

// PresenceZone checks that the zone is present (or absent when Present is false).
type PresenceZone struct {
	RuleBase
	Present bool
}

// PresenceSubZone checks that a sub-zone code is present (or absent) in the zone.
type PresenceSubZone struct {
	RuleBase
	SubZone string
	Present bool
}

// CountZone compares the number of zone occurrences with Count.
type CountZone struct {
	RuleBase
	Comparison Comparison
	Count      int
}

// CountSubZone compares the number of Zone$SubZone values with the number of
// TargetZone$TargetSubZone values.
type CountSubZone struct {
	RuleBase
	SubZone       string
	Comparison    Comparison
	TargetZone    string
	TargetSubZone string
}

// PositionSubZone checks that the sub-value at Position (1-based) carries SubZone.
type PositionSubZone struct {
	RuleBase
	SubZone  string
	Position int
}

// Indicator checks the value of indicator Slot (1 or 2).
type Indicator struct {
	RuleBase
	Slot  int
	Value string
}

// CountCharacters compares the rune length of SubZone values with Count.
type CountCharacters struct {
	RuleBase
	SubZone    string
	Comparison Comparison
	Count      int
}

// evaluateSimple dispatches to the variant's evaluation.
func evaluateSimple(rule SimpleRule, rec *types.Record) Outcome {
	switch r := rule.(type) {
	case *PresenceZone:
		return evaluatePresenceZone(r, rec)
	case *PresenceSubZone:
		return evaluatePresenceSubZone(r, rec)
	case *StringMatch:
		return evaluateStringMatch(r, rec)
	case *CountZone:
		return evaluateCountZone(r, rec)
	case *CountSubZone:
		return evaluateCountSubZone(r, rec)
	case *PositionSubZone:
		return evaluatePositionSubZone(r, rec)
	case *Indicator:
		return evaluateIndicator(r, rec)
	case *CountCharacters:
		return evaluateCountCharacters(r, rec)
	case *PresenceSubZonesSameZone:
		return evaluateSameZonePresence(r, rec)
	default:
		return Outcome{}
	}
}

func evaluatePresenceZone(r *PresenceZone, rec *types.Record) Outcome {
	refs := rec.FieldsByTag(r.Zone)
	if r.Present {
		return Outcome{Matched: len(refs) > 0, Candidates: newOccurrenceSet(refs)}
	}
	return Outcome{Matched: len(refs) == 0}
}

// evaluatePresenceSubZone: Present matches when some occurrence carries the
// code; absent matches when no occurrence does. Candidates are the
// occurrences individually satisfying the expectation.
func evaluatePresenceSubZone(r *PresenceSubZone, rec *types.Record) Outcome {
	candidates := make(OccurrenceSet)
	anyHas := false
	for _, ref := range rec.FieldsByTag(r.Zone) {
		has := rec.Field(ref).HasCode(r.SubZone)
		anyHas = anyHas || has
		if has == r.Present {
			candidates[ref.Occurrence] = struct{}{}
		}
	}
	if r.Present {
		return Outcome{Matched: anyHas, Candidates: candidates}
	}
	return Outcome{Matched: !anyHas, Candidates: candidates}
}

func evaluateCountZone(r *CountZone, rec *types.Record) Outcome {
	refs := rec.FieldsByTag(r.Zone)
	if !Compare(len(refs), r.Comparison, r.Count) {
		return Outcome{}
	}
	return Outcome{Matched: true, Candidates: newOccurrenceSet(refs)}
}

func evaluateCountSubZone(r *CountSubZone, rec *types.Record) Outcome {
	sources := make(OccurrenceSet)
	sourceCount := 0
	for _, ref := range rec.FieldsByTag(r.Zone) {
		n := len(rec.Field(ref).SubValuesByCode(r.SubZone))
		if n > 0 {
			sources[ref.Occurrence] = struct{}{}
		}
		sourceCount += n
	}
	targetCount := 0
	for _, ref := range rec.FieldsByTag(r.TargetZone) {
		targetCount += len(rec.Field(ref).SubValuesByCode(r.TargetSubZone))
	}
	if !Compare(sourceCount, r.Comparison, targetCount) {
		return Outcome{}
	}
	return Outcome{Matched: true, Candidates: sources}
}

func evaluatePositionSubZone(r *PositionSubZone, rec *types.Record) Outcome {
	return collectFields(rec, r.Zone, func(f types.Field) bool {
		i := r.Position - 1
		return i >= 0 && i < len(f.SubValues) && f.SubValues[i].Code == r.SubZone
	})
}

func evaluateIndicator(r *Indicator, rec *types.Record) Outcome {
	want := types.NormalizeIndicator(r.Value)
	return collectFields(rec, r.Zone, func(f types.Field) bool {
		return f.Indicator(r.Slot) == want
	})
}

func evaluateCountCharacters(r *CountCharacters, rec *types.Record) Outcome {
	return collectFields(rec, r.Zone, func(f types.Field) bool {
		for _, sv := range f.SubValuesByCode(r.SubZone) {
			if Compare(utf8.RuneCountInString(sv.Text), r.Comparison, r.Count) {
				return true
			}
		}
		return false
	})
}

// collectFields gathers occurrences of zone satisfying ok.
// Matched iff at least one occurrence does.
func collectFields(rec *types.Record, zone string, ok func(types.Field) bool) Outcome {
	candidates := make(OccurrenceSet)
	for _, ref := range rec.FieldsByTag(zone) {
		if ok(rec.Field(ref)) {
			candidates[ref.Occurrence] = struct{}{}
		}
	}
	return Outcome{Matched: len(candidates) > 0, Candidates: candidates}
}
