// internal/rules/compile.go
package rules

import (
	"fmt"

	"github.com/abes-esr/qualimarc/internal/types"
)

/*
 * Rule compilation and validation.
 *
 * Compiles types.CompoundDefinition to CompoundRule: maps enum ints to typed
 * enums, builds one SimpleRule variant per definition, and enforces every
 * construction-time check.
 *
 * Compilation workflow:
 *   1. Validate compound fields (message, priority, chain length)
 *   2. Validate operator linkage: first rule has none, later rules ET/OU
 *   3. Compile each simple definition to its variant with kind-specific checks
 *   4. Keep declaration order; positions are never reordered
 *
 * Errors wrap types.ErrXxx sentinels with the offending rule ID so callers can
 * use errors.Is and still point at the definition.
 */

// Kind mirrors the configuration enum for simple rule kinds.
type Kind int

const (
	KindUnspecified Kind = iota
	KindPresenceZone
	KindPresenceSubZone
	KindStringMatch
	KindCountZone
	KindCountSubZone
	KindPositionSubZone
	KindIndicator
	KindCountCharacters
	KindPresenceSubZonesSameZone
)

// Compile validates and builds a compound rule from its definition.
func Compile(def *types.CompoundDefinition) (*CompoundRule, error) {
	if def.Message == "" {
		return nil, fmt.Errorf("rule %d: %w", def.ID, types.ErrMissingMessage)
	}
	priority := Priority(def.Priority)
	if priority != PriorityP1 && priority != PriorityP2 {
		return nil, fmt.Errorf("rule %d: %w", def.ID, types.ErrInvalidPriority)
	}
	if len(def.Rules) == 0 {
		return nil, fmt.Errorf("rule %d: %w", def.ID, types.ErrEmptyRule)
	}
	if len(def.Rules) > types.MaxChainLength {
		return nil, fmt.Errorf("rule %d: %w", def.ID, types.ErrChainTooLong)
	}

	first := def.Rules[0]
	if BoolOp(first.Operator) != BoolNone {
		return nil, fmt.Errorf("rule %d: %w", def.ID, types.ErrOperatorOnFirst)
	}
	base, err := compileSimple(first)
	if err != nil {
		return nil, fmt.Errorf("rule %d: %w", def.ID, err)
	}

	compiled := &CompoundRule{
		ID:       def.ID,
		Message:  def.Message,
		Priority: priority,
		Families: make(map[string]struct{}, len(def.Families)),
		Base:     base,
		Chain:    make([]LinkedRule, 0, len(def.Rules)-1),
		SameZone: def.SameZone,
	}
	for _, family := range def.Families {
		compiled.Families[family] = struct{}{}
	}

	for i, sd := range def.Rules[1:] {
		op := BoolOp(sd.Operator)
		if op != BoolAnd && op != BoolOr {
			return nil, fmt.Errorf("rule %d: simple rule %d: %w", def.ID, sd.ID, types.ErrMissingOperator)
		}
		sr, err := compileSimple(sd)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", def.ID, err)
		}
		compiled.Chain = append(compiled.Chain, LinkedRule{Rule: sr, Operator: op, Position: i})
	}

	return compiled, nil
}

// CompileAll compiles a rule set, rejecting duplicate compound IDs.
// Order of the result matches defs.
func CompileAll(defs []types.CompoundDefinition) ([]*CompoundRule, error) {
	seen := make(map[int]struct{}, len(defs))
	compiled := make([]*CompoundRule, 0, len(defs))
	for i := range defs {
		if _, dup := seen[defs[i].ID]; dup {
			return nil, fmt.Errorf("rule %d: %w", defs[i].ID, types.ErrDuplicateRuleID)
		}
		seen[defs[i].ID] = struct{}{}

		rule, err := Compile(&defs[i])
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, rule)
	}
	return compiled, nil
}

// compileSimple builds the variant selected by def.Kind.
func compileSimple(def types.SimpleDefinition) (SimpleRule, error) {
	if def.Zone == "" {
		return nil, simpleErr(def, types.ErrMissingZone)
	}
	base := RuleBase{ID: def.ID, Zone: def.Zone}

	switch Kind(def.Kind) {
	case KindPresenceZone:
		return &PresenceZone{RuleBase: base, Present: def.Present}, nil

	case KindPresenceSubZone:
		if def.SubZone == "" {
			return nil, simpleErr(def, types.ErrMissingSubZone)
		}
		return &PresenceSubZone{RuleBase: base, SubZone: def.SubZone, Present: def.Present}, nil

	case KindStringMatch:
		return compileStringMatch(base, def)

	case KindCountZone:
		cmp := Comparison(def.Comparison)
		if !validComparison(cmp) {
			return nil, simpleErr(def, types.ErrUnsupportedComparison)
		}
		if def.Count < 0 {
			return nil, simpleErr(def, types.ErrNegativeCount)
		}
		return &CountZone{RuleBase: base, Comparison: cmp, Count: def.Count}, nil

	case KindCountSubZone:
		cmp := Comparison(def.Comparison)
		if !validComparison(cmp) {
			return nil, simpleErr(def, types.ErrUnsupportedComparison)
		}
		if def.SubZone == "" || def.TargetSubZone == "" {
			return nil, simpleErr(def, types.ErrMissingSubZone)
		}
		if def.TargetZone == "" {
			return nil, simpleErr(def, types.ErrMissingZone)
		}
		return &CountSubZone{
			RuleBase:      base,
			SubZone:       def.SubZone,
			Comparison:    cmp,
			TargetZone:    def.TargetZone,
			TargetSubZone: def.TargetSubZone,
		}, nil

	case KindPositionSubZone:
		if def.SubZone == "" {
			return nil, simpleErr(def, types.ErrMissingSubZone)
		}
		if def.Position < 1 {
			return nil, simpleErr(def, types.ErrInvalidPosition)
		}
		return &PositionSubZone{RuleBase: base, SubZone: def.SubZone, Position: def.Position}, nil

	case KindIndicator:
		if def.IndicatorSlot != 1 && def.IndicatorSlot != 2 {
			return nil, simpleErr(def, types.ErrInvalidIndicator)
		}
		return &Indicator{RuleBase: base, Slot: def.IndicatorSlot, Value: def.IndicatorValue}, nil

	case KindCountCharacters:
		cmp := Comparison(def.Comparison)
		if !validComparison(cmp) {
			return nil, simpleErr(def, types.ErrUnsupportedComparison)
		}
		if def.SubZone == "" {
			return nil, simpleErr(def, types.ErrMissingSubZone)
		}
		if def.Count < 0 {
			return nil, simpleErr(def, types.ErrNegativeCount)
		}
		return &CountCharacters{RuleBase: base, SubZone: def.SubZone, Comparison: cmp, Count: def.Count}, nil

	case KindPresenceSubZonesSameZone:
		return compileSameZonePresence(base, def)

	default:
		return nil, simpleErr(def, types.ErrUnknownKind)
	}
}

// compileStringMatch validates target linkage. An empty target list is
// accepted and evaluates to false.
func compileStringMatch(base RuleBase, def types.SimpleDefinition) (SimpleRule, error) {
	if def.SubZone == "" {
		return nil, simpleErr(def, types.ErrMissingSubZone)
	}
	mode := MatchMode(def.MatchMode)
	if predicateFor(mode) == nil {
		return nil, simpleErr(def, types.ErrInvalidMatchMode)
	}
	if len(def.Targets) > types.MaxTargets {
		return nil, simpleErr(def, types.ErrTooManyTargets)
	}

	targets := make([]Target, 0, len(def.Targets))
	for i, td := range def.Targets {
		op, err := linkOperator(i, td.Operator)
		if err != nil {
			return nil, fmt.Errorf("simple rule %d: target %d: %w", def.ID, i, err)
		}
		targets = append(targets, Target{Text: td.Text, Operator: op})
	}

	return &StringMatch{RuleBase: base, SubZone: def.SubZone, Mode: mode, Targets: targets}, nil
}

func compileSameZonePresence(base RuleBase, def types.SimpleDefinition) (SimpleRule, error) {
	if len(def.Clauses) < 2 {
		return nil, simpleErr(def, types.ErrTooFewClauses)
	}
	if len(def.Clauses) > types.MaxClauses {
		return nil, simpleErr(def, types.ErrTooManyClauses)
	}

	clauses := make([]SubZoneClause, 0, len(def.Clauses))
	for i, cd := range def.Clauses {
		if cd.SubZone == "" {
			return nil, fmt.Errorf("simple rule %d: clause %d: %w", def.ID, i, types.ErrMissingSubZone)
		}
		op, err := linkOperator(i, cd.Operator)
		if err != nil {
			return nil, fmt.Errorf("simple rule %d: clause %d: %w", def.ID, i, err)
		}
		clauses = append(clauses, SubZoneClause{SubZone: cd.SubZone, Present: cd.Present, Operator: op})
	}

	return &PresenceSubZonesSameZone{RuleBase: base, Clauses: clauses}, nil
}

// linkOperator enforces list linkage: index 0 has no operator, later
// elements are ET or OU.
func linkOperator(i int, raw int) (BoolOp, error) {
	op := BoolOp(raw)
	if i == 0 {
		if op != BoolNone {
			return BoolNone, types.ErrOperatorOnFirst
		}
		return BoolNone, nil
	}
	if op != BoolAnd && op != BoolOr {
		return BoolNone, types.ErrMissingOperator
	}
	return op, nil
}

func simpleErr(def types.SimpleDefinition, err error) error {
	return fmt.Errorf("simple rule %d: %w", def.ID, err)
}
