// internal/rules/evaluate.go
package rules

import "github.com/abes-esr/qualimarc/internal/types"

/*
 * Rule evaluation driver.
 *
 * Evaluates compiled CompoundRules against one record and produces a Verdict
 * per rule. Pure function of its inputs; no state retained across records.
 *
 * Evaluation flow:
 *   1. Document family filter: out-of-scope rule -> StatusNotApplicable
 *   2. Chain composition (compound.go)
 *   3. True chain -> StatusFailed with triggering field references,
 *      false chain -> StatusPassed
 *
 * Not applicable is distinct from passed so callers can count how many rules
 * actually ran against a record.
 */

// Status is the outcome of one compound rule on one record.
type Status int

const (
	StatusNotApplicable Status = iota
	StatusPassed
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	default:
		return "not_applicable"
	}
}

// Verdict is the result of one compound rule on one record.
type Verdict struct {
	RuleID   int
	Message  string
	Priority Priority
	Status   Status
	Fields   []types.FieldRef // triggering occurrences, record order; failed only
}

// Failed reports whether the rule raised its message.
func (v Verdict) Failed() bool { return v.Status == StatusFailed }

// Evaluate checks one compound rule against rec.
func Evaluate(rule *CompoundRule, rec *types.Record) Verdict {
	verdict := Verdict{
		RuleID:   rule.ID,
		Message:  rule.Message,
		Priority: rule.Priority,
	}

	if !rule.AppliesTo(rec) {
		verdict.Status = StatusNotApplicable
		return verdict
	}

	failed, triggered := evaluateChain(rule, rec)
	if !failed {
		verdict.Status = StatusPassed
		return verdict
	}

	verdict.Status = StatusFailed
	verdict.Fields = triggered.Refs(rec)
	return verdict
}

// EvaluateAll checks every rule against rec, in rule order.
func EvaluateAll(rec *types.Record, rules []*CompoundRule) []Verdict {
	verdicts := make([]Verdict, 0, len(rules))
	for _, rule := range rules {
		verdicts = append(verdicts, Evaluate(rule, rec))
	}
	return verdicts
}

// Failures keeps the failed verdicts, preserving order.
func Failures(verdicts []Verdict) []Verdict {
	var out []Verdict
	for _, v := range verdicts {
		if v.Failed() {
			out = append(out, v)
		}
	}
	return out
}
