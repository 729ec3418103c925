package types

import "errors"

// Sentinel errors for rule construction.
// Evaluation never fails; every error here surfaces at compile time.
var (
	// ErrDuplicateRuleID indicates two compound rules share an ID in one rule set.
	ErrDuplicateRuleID = errors.New("duplicate rule id")

	// ErrEmptyRule indicates a compound rule with no simple rule.
	ErrEmptyRule = errors.New("rule has no simple rule")

	// ErrChainTooLong indicates a compound rule exceeds MaxChainLength.
	ErrChainTooLong = errors.New("rule chain exceeds maximum length")

	// ErrMissingMessage indicates a rule without a user-facing message.
	ErrMissingMessage = errors.New("rule message is required")

	// ErrInvalidPriority indicates a priority outside P1/P2.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrOperatorOnFirst indicates the first rule, target or clause declares a boolean operator.
	ErrOperatorOnFirst = errors.New("first element must not declare a boolean operator")

	// ErrMissingOperator indicates a later rule, target or clause without ET/OU.
	ErrMissingOperator = errors.New("element after the first must declare ET or OU")

	// ErrUnknownKind indicates an unknown simple rule kind.
	ErrUnknownKind = errors.New("unknown rule kind")

	// ErrMissingZone indicates a simple rule without a target zone.
	ErrMissingZone = errors.New("zone is required")

	// ErrMissingSubZone indicates a sub-zone rule without a sub-zone code.
	ErrMissingSubZone = errors.New("sub-zone is required")

	// ErrInvalidMatchMode indicates an unknown string match mode.
	ErrInvalidMatchMode = errors.New("invalid match mode")

	// ErrTooManyTargets indicates a string match exceeds MaxTargets.
	ErrTooManyTargets = errors.New("string match has too many targets")

	// ErrUnsupportedComparison indicates a comparison outside EGAL/SUPERIEUR/INFERIEUR.
	ErrUnsupportedComparison = errors.New("only EGAL, SUPERIEUR or INFERIEUR are allowed")

	// ErrNegativeCount indicates a negative expected count.
	ErrNegativeCount = errors.New("expected count must not be negative")

	// ErrInvalidPosition indicates a sub-zone position below 1.
	ErrInvalidPosition = errors.New("position must be at least 1")

	// ErrInvalidIndicator indicates an indicator slot other than 1 or 2.
	ErrInvalidIndicator = errors.New("indicator must be 1 or 2")

	// ErrTooFewClauses indicates a same-zone presence rule with fewer than two sub-zones.
	ErrTooFewClauses = errors.New("at least two sub-zones are required")

	// ErrTooManyClauses indicates a same-zone presence rule exceeds MaxClauses.
	ErrTooManyClauses = errors.New("too many sub-zones")
)
