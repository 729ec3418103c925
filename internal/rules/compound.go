// internal/rules/compound.go
package rules

import "github.com/abes-esr/qualimarc/internal/types"

/*
 * Boolean chain composition.
 *
 * A CompoundRule combines a base SimpleRule with an ordered chain of
 * LinkedRules. Each link's result is folded into the accumulator with its
 * operator (Combine), in declaration order.
 *
 * Same-zone mode: the composer also folds each member's candidate set into a
 * saved set (ET intersects, OU unions) and a member's result becomes "saved
 * set non-empty". A later clause therefore only counts when it holds on an
 * occurrence already known to satisfy earlier ones. Final result:
 * acc AND (not SameZone OR saved non-empty).
 *
 * The saved set lives in chainState, a value local to one evaluation.
 * Compiled rules are never written during evaluation and may be shared by
 * concurrent evaluations of different records.
 */

// Priority mirrors the configuration enum for rule priority.
type Priority int

const (
	PriorityUnspecified Priority = iota
	PriorityP1
	PriorityP2
)

func (p Priority) String() string {
	switch p {
	case PriorityP1:
		return "P1"
	case PriorityP2:
		return "P2"
	default:
		return "UNSPECIFIED"
	}
}

// LinkedRule is one chained member of a compound rule.
type LinkedRule struct {
	Rule     SimpleRule
	Operator BoolOp // BoolAnd or BoolOr
	Position int    // declaration order, 0-based
}

// CompoundRule is fully validated and ready for evaluation.
type CompoundRule struct {
	ID       int
	Message  string
	Priority Priority
	Families map[string]struct{} // empty means every family
	Base     SimpleRule
	Chain    []LinkedRule
	SameZone bool
}

// AppliesTo reports whether the rule is scoped to the record's family.
func (c *CompoundRule) AppliesTo(rec *types.Record) bool {
	if len(c.Families) == 0 {
		return true
	}
	_, ok := c.Families[rec.Family]
	return ok
}

// chainState is the per-evaluation accumulator threaded through the chain.
type chainState struct {
	acc       bool
	saved     OccurrenceSet // same-zone candidates
	triggered OccurrenceSet // union of candidates of members that matched
}

// step folds one member outcome into the state.
func (s chainState) step(op BoolOp, out Outcome, sameZone bool) chainState {
	result := out.Matched
	if sameZone {
		s.saved = combineSets(op, s.saved, out.Candidates)
		result = s.saved.Len() > 0
	}
	if result {
		s.triggered = union(s.triggered, out.Candidates)
	}
	s.acc = Combine(op, s.acc, result)
	return s
}

// evaluateChain runs base and chain on rec.
// Returns the final boolean and the triggering occurrences.
func evaluateChain(c *CompoundRule, rec *types.Record) (bool, OccurrenceSet) {
	var state chainState
	state = state.step(BoolNone, evaluateSimple(c.Base, rec), c.SameZone)
	for _, link := range c.Chain {
		state = state.step(link.Operator, evaluateSimple(link.Rule, rec), c.SameZone)
	}

	if !c.SameZone {
		return state.acc, state.triggered
	}
	return state.acc && state.saved.Len() > 0, state.saved
}
