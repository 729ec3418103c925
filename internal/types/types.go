// Package types provides domain models shared across qualimarc components.
//
// Zero-dependency design: record.go, rules.go and errors.go use only the
// standard library so the record model and rule definitions can be imported by
// any collaborator (loader, checker, CLI) without pulling in the engine. ID
// utilities in ids.go import uuid but are isolated.
//
// Separation from configuration formats: rule definitions here are
// format-agnostic. YAML-to-definition mapping happens in internal/ruleset.
package types

// Resource limits enforced at rule compilation to keep per-record evaluation
// bounded.
const (
	// MaxChainLength limits the number of simple rules combined in one
	// compound rule. Each link costs one pass over the targeted zone.
	MaxChainLength = 32

	// MaxTargets limits the target strings of one string-match rule.
	// Every target is evaluated against every matching sub-value.
	MaxTargets = 64

	// MaxClauses limits the sub-zone clauses of one same-zone presence rule.
	MaxClauses = 32
)
