// internal/types/rules.go
package types

/*
 * Format-agnostic rule definitions.
 *
 * Provides CompoundDefinition, SimpleDefinition, TargetDefinition and
 * ClauseDefinition consumed by internal/rules for compilation. Enumerated
 * values are plain ints here; their meaning is owned by internal/rules
 * (Kind, BoolOp, Priority, MatchMode, Comparison). String-to-enum mapping
 * happens in internal/ruleset.
 *
 * Key types:
 *   - CompoundDefinition: message, priority, families and the ordered chain
 *   - SimpleDefinition: one atomic check; Kind selects which fields apply
 *   - TargetDefinition: one target string of a string-match check
 *   - ClauseDefinition: one sub-zone clause of a same-zone presence check
 *
 * Dependencies: none
 */

// TargetDefinition is one target string of a string-match rule.
type TargetDefinition struct {
	Text     string
	Operator int // bool operator enum value; zero for the first target
}

// ClauseDefinition is one sub-zone clause of a same-zone presence rule.
type ClauseDefinition struct {
	SubZone  string
	Present  bool
	Operator int // bool operator enum value; zero for the first clause
}

// SimpleDefinition describes one atomic rule. Fields not used by Kind are ignored.
type SimpleDefinition struct {
	ID       int
	Kind     int // rule kind enum value
	Zone     string
	SubZone  string
	Operator int // link operator; zero for the first rule of a chain

	Present        bool               // presence kinds
	MatchMode      int                // string match
	Targets        []TargetDefinition // string match
	Comparison     int                // count kinds
	Count          int                // count zone, count characters
	TargetZone     string             // count sub-zone
	TargetSubZone  string             // count sub-zone
	Position       int                // position sub-zone, 1-based
	IndicatorSlot  int                // indicator, 1 or 2
	IndicatorValue string             // indicator
	Clauses        []ClauseDefinition // same-zone presence
}

// CompoundDefinition is a complete rule definition for compilation.
// A single-check rule is a compound definition with one entry in Rules.
type CompoundDefinition struct {
	ID       int
	Message  string
	Priority int      // priority enum value
	Families []string // document family codes; empty means every family
	SameZone bool     // all clauses must hold on one field occurrence
	Rules    []SimpleDefinition
}
