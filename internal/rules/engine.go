package rules

import "github.com/abes-esr/qualimarc/internal/types"

// Engine holds a compiled rule set for the checker service.
// Rules are read-only after NewEngine; Check is safe for concurrent use.
type Engine struct {
	rules []*CompoundRule
}

// NewEngine creates an engine over compiled rules, kept in the given order.
func NewEngine(rules []*CompoundRule) *Engine {
	return &Engine{rules: append([]*CompoundRule(nil), rules...)}
}

// Rules returns the compiled rules in evaluation order.
func (e *Engine) Rules() []*CompoundRule {
	return e.rules
}

// Check evaluates every rule against rec.
func (e *Engine) Check(rec *types.Record) []Verdict {
	return EvaluateAll(rec, e.rules)
}
