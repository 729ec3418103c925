// internal/rules/cost.go
package rules

/*
 * Cost model for rule evaluation.
 *
 * Estimates the per-record work of a compiled rule so rule sets can be
 * compared when they are validated. The estimate does not reorder anything:
 * chain order is semantic and evaluation always follows declaration order.
 *
 * Cost formula per simple rule: zone scan + variant cost * fanout, where
 * fanout is the number of targets or clauses the variant tests per
 * occurrence. Same-zone mode adds one set fold per chained member.
 */

const (
	// Zone scan: one pass over the record fields
	CostZoneScan = 16

	// Variant base costs
	CostPresence   = 1
	CostIndicator  = 1
	CostCount      = 2
	CostPosition   = 2
	CostCharacters = 6
	CostString     = 10

	// Same-zone candidate set fold
	CostSetFold = 4
)

// EstimateCost returns the estimated evaluation cost of a compound rule.
func EstimateCost(c *CompoundRule) int {
	cost := simpleCost(c.Base)
	for _, link := range c.Chain {
		cost += simpleCost(link.Rule)
		if c.SameZone {
			cost += CostSetFold
		}
	}
	return cost
}

func simpleCost(rule SimpleRule) int {
	switch r := rule.(type) {
	case *PresenceZone, *PresenceSubZone:
		return CostZoneScan + CostPresence
	case *Indicator:
		return CostZoneScan + CostIndicator
	case *CountZone:
		return CostZoneScan + CostCount
	case *CountSubZone:
		// Source and target zones are both scanned
		return 2*CostZoneScan + CostCount
	case *PositionSubZone:
		return CostZoneScan + CostPosition
	case *CountCharacters:
		return CostZoneScan + CostCharacters
	case *StringMatch:
		return CostZoneScan + CostString*max(len(r.Targets), 1)
	case *PresenceSubZonesSameZone:
		return CostZoneScan + (CostPresence+CostSetFold)*len(r.Clauses)
	default:
		return CostZoneScan
	}
}
