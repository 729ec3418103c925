// internal/rules/operators.go
package rules

import (
	"strings"
)

/*
 * Verification predicates and boolean combinators.
 *
 * String predicates (equals, starts-with, ends-with, contains, not-contains)
 * and the three-way count comparison used by every rule variant. All pure,
 * no state.
 *
 * Operators:
 *   - MatchMode: STRICTEMENT, COMMENCE, TERMINE, CONTIENT, NECONTIENTPAS
 *   - Comparison: EGAL (a==b), SUPERIEUR (a>b), INFERIEUR (a<b)
 *   - BoolOp: ET / OU linkage between targets, clauses and chained rules
 *
 * Combine is the single ET/OU fold step. BoolNone overwrites the accumulator:
 * compilation guarantees it only appears on the first element of a list, so a
 * fold always starts from the first element's value.
 */

// BoolOp links an element to the accumulated result of the elements before it.
type BoolOp int

const (
	BoolNone BoolOp = iota // first element of a list
	BoolAnd                // ET
	BoolOr                 // OU
)

func (op BoolOp) String() string {
	switch op {
	case BoolAnd:
		return "ET"
	case BoolOr:
		return "OU"
	default:
		return ""
	}
}

// Comparison mirrors the configuration enum for count checks.
type Comparison int

const (
	CmpUnspecified Comparison = iota
	CmpEgal
	CmpSuperieur
	CmpInferieur
)

func (c Comparison) String() string {
	switch c {
	case CmpEgal:
		return "EGAL"
	case CmpSuperieur:
		return "SUPERIEUR"
	case CmpInferieur:
		return "INFERIEUR"
	default:
		return "UNSPECIFIED"
	}
}

// MatchMode selects the string predicate of a string-match rule.
type MatchMode int

const (
	MatchUnspecified MatchMode = iota
	MatchStrict                // STRICTEMENT
	MatchStartsWith            // COMMENCE
	MatchEndsWith              // TERMINE
	MatchContains              // CONTIENT
	MatchNotContains           // NECONTIENTPAS
)

func (m MatchMode) String() string {
	switch m {
	case MatchStrict:
		return "STRICTEMENT"
	case MatchStartsWith:
		return "COMMENCE"
	case MatchEndsWith:
		return "TERMINE"
	case MatchContains:
		return "CONTIENT"
	case MatchNotContains:
		return "NECONTIENTPAS"
	default:
		return "UNSPECIFIED"
	}
}

// Predicate tests a sub-value text against one target string.
type Predicate func(value, target string) bool

// Equals reports whether value is exactly target.
func Equals(value, target string) bool { return value == target }

// StartsWith reports whether value begins with target.
func StartsWith(value, target string) bool { return strings.HasPrefix(value, target) }

// EndsWith reports whether value ends with target.
func EndsWith(value, target string) bool { return strings.HasSuffix(value, target) }

// Contains reports whether target occurs in value.
func Contains(value, target string) bool { return strings.Contains(value, target) }

// NotContains reports whether target does not occur in value.
func NotContains(value, target string) bool { return !strings.Contains(value, target) }

// predicateFor returns the predicate selected by mode, or nil for an unknown mode.
func predicateFor(mode MatchMode) Predicate {
	switch mode {
	case MatchStrict:
		return Equals
	case MatchStartsWith:
		return StartsWith
	case MatchEndsWith:
		return EndsWith
	case MatchContains:
		return Contains
	case MatchNotContains:
		return NotContains
	default:
		return nil
	}
}

// Compare applies a count comparison. Unsupported comparisons return false;
// compilation rejects them before evaluation.
func Compare(a int, cmp Comparison, b int) bool {
	switch cmp {
	case CmpEgal:
		return a == b
	case CmpSuperieur:
		return a > b
	case CmpInferieur:
		return a < b
	default:
		return false
	}
}

// validComparison reports whether cmp is one of the three count comparisons.
func validComparison(cmp Comparison) bool {
	switch cmp {
	case CmpEgal, CmpSuperieur, CmpInferieur:
		return true
	default:
		return false
	}
}

// Combine folds one boolean into the accumulator.
// BoolNone overwrites, BoolAnd is logical AND, BoolOr is logical OR.
func Combine(op BoolOp, acc, value bool) bool {
	switch op {
	case BoolAnd:
		return acc && value
	case BoolOr:
		return acc || value
	default:
		return value
	}
}
