// Package ruleset loads rule sets from YAML files.
//
// The YAML document is the configuration-facing form of a rule set: kinds,
// operators, comparisons and priorities are strings. This package maps them
// to the integer enums carried by types.CompoundDefinition and hands the
// result to rules.CompileAll. Structural checks (operator linkage, counts,
// positions) stay in the compiler; the loader only rejects strings it cannot
// map.
//
// Mapping defaults follow the rule authoring service: an unknown priority
// string maps to P1 and an unknown boolean operator maps to ET. An empty
// priority is left unspecified so compilation reports it as missing.
package ruleset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abes-esr/qualimarc/internal/rules"
	"github.com/abes-esr/qualimarc/internal/types"
)

// ErrUnknownValue indicates a kind, match mode or comparison string with no mapping.
var ErrUnknownValue = errors.New("unknown value")

// File is the top-level YAML document.
type File struct {
	Rules []Rule `yaml:"rules"`
}

// Rule is one compound rule. A rule with a Type and no Checks is a single
// check rule: its own check fields form the base of the chain.
type Rule struct {
	ID       int      `yaml:"id"`
	Message  string   `yaml:"message"`
	Priority string   `yaml:"priority"`
	Families []string `yaml:"families"`
	SameZone bool     `yaml:"same_zone"`
	Checks   []Check  `yaml:"checks"`

	Check `yaml:",inline"`
}

// Check is one simple rule. Only the fields relevant to Type are read.
type Check struct {
	CheckID       int      `yaml:"check_id"`
	Type          string   `yaml:"type"`
	Operator      string   `yaml:"operator"`
	Zone          string   `yaml:"zone"`
	SubZone       string   `yaml:"subzone"`
	Present       *bool    `yaml:"present"`
	Match         string   `yaml:"match"`
	Targets       []Target `yaml:"targets"`
	Comparison    string   `yaml:"comparison"`
	Count         int      `yaml:"count"`
	TargetZone    string   `yaml:"target_zone"`
	TargetSubZone string   `yaml:"target_subzone"`
	Position      int      `yaml:"position"`
	Indicator     int      `yaml:"indicator"`
	Value         string   `yaml:"value"`
	SubZones      []Clause `yaml:"subzones"`
}

// Target is one target string of a string-match check.
type Target struct {
	Text     string `yaml:"text"`
	Operator string `yaml:"operator"`
}

// Clause is one sub-zone clause of a same-zone presence check.
type Clause struct {
	SubZone  string `yaml:"subzone"`
	Present  *bool  `yaml:"present"`
	Operator string `yaml:"operator"`
}

var kinds = map[string]rules.Kind{
	"presencezone":              rules.KindPresenceZone,
	"presencesouszone":          rules.KindPresenceSubZone,
	"presencechainecaracteres":  rules.KindStringMatch,
	"nombrezone":                rules.KindCountZone,
	"nombresouszone":            rules.KindCountSubZone,
	"positionsouszone":          rules.KindPositionSubZone,
	"indicateur":                rules.KindIndicator,
	"nombrecaracteres":          rules.KindCountCharacters,
	"presencesouszonesmemezone": rules.KindPresenceSubZonesSameZone,
}

var matchModes = map[string]rules.MatchMode{
	"STRICTEMENT":   rules.MatchStrict,
	"COMMENCE":      rules.MatchStartsWith,
	"TERMINE":       rules.MatchEndsWith,
	"CONTIENT":      rules.MatchContains,
	"NECONTIENTPAS": rules.MatchNotContains,
}

var comparisons = map[string]rules.Comparison{
	"EGAL":      rules.CmpEgal,
	"SUPERIEUR": rules.CmpSuperieur,
	"INFERIEUR": rules.CmpInferieur,
}

// Load reads, maps and compiles the rule set at path.
func Load(path string) ([]*rules.CompoundRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set: %w", err)
	}
	compiled, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return compiled, nil
}

// Parse maps and compiles a YAML rule set.
func Parse(data []byte) ([]*rules.CompoundRule, error) {
	defs, err := Definitions(data)
	if err != nil {
		return nil, err
	}
	return rules.CompileAll(defs)
}

// Definitions decodes a YAML rule set into compound definitions without
// compiling them. Unknown YAML keys are rejected.
func Definitions(data []byte) ([]types.CompoundDefinition, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode rule set: %w", err)
	}

	defs := make([]types.CompoundDefinition, 0, len(file.Rules))
	for _, r := range file.Rules {
		def, err := mapRule(r)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", r.ID, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func mapRule(r Rule) (types.CompoundDefinition, error) {
	def := types.CompoundDefinition{
		ID:       r.ID,
		Message:  r.Message,
		Priority: int(mapPriority(r.Priority)),
		Families: r.Families,
		SameZone: r.SameZone,
	}

	checks := r.Checks
	if len(checks) == 0 && r.Type != "" {
		single := r.Check
		if single.CheckID == 0 {
			single.CheckID = r.ID
		}
		checks = []Check{single}
	}

	for i, c := range checks {
		sd, err := mapCheck(c)
		if err != nil {
			return types.CompoundDefinition{}, fmt.Errorf("check %d: %w", i, err)
		}
		def.Rules = append(def.Rules, sd)
	}
	return def, nil
}

func mapCheck(c Check) (types.SimpleDefinition, error) {
	kind, ok := kinds[strings.ToLower(strings.TrimSpace(c.Type))]
	if !ok {
		return types.SimpleDefinition{}, fmt.Errorf("type %q: %w", c.Type, ErrUnknownValue)
	}

	sd := types.SimpleDefinition{
		ID:             c.CheckID,
		Kind:           int(kind),
		Zone:           c.Zone,
		SubZone:        c.SubZone,
		Operator:       int(mapOperator(c.Operator)),
		Present:        presence(c.Present),
		Count:          c.Count,
		TargetZone:     c.TargetZone,
		TargetSubZone:  c.TargetSubZone,
		Position:       c.Position,
		IndicatorSlot:  c.Indicator,
		IndicatorValue: c.Value,
	}

	switch kind {
	case rules.KindStringMatch:
		mode, ok := matchModes[strings.ToUpper(strings.TrimSpace(c.Match))]
		if !ok {
			return types.SimpleDefinition{}, fmt.Errorf("match %q: %w", c.Match, ErrUnknownValue)
		}
		sd.MatchMode = int(mode)
		for _, t := range c.Targets {
			sd.Targets = append(sd.Targets, types.TargetDefinition{Text: t.Text, Operator: int(mapOperator(t.Operator))})
		}

	case rules.KindCountZone, rules.KindCountSubZone, rules.KindCountCharacters:
		cmp, ok := comparisons[strings.ToUpper(strings.TrimSpace(c.Comparison))]
		if !ok {
			return types.SimpleDefinition{}, fmt.Errorf("comparison %q: %w", c.Comparison, ErrUnknownValue)
		}
		sd.Comparison = int(cmp)

	case rules.KindPresenceSubZonesSameZone:
		for _, cl := range c.SubZones {
			sd.Clauses = append(sd.Clauses, types.ClauseDefinition{
				SubZone:  cl.SubZone,
				Present:  presence(cl.Present),
				Operator: int(mapOperator(cl.Operator)),
			})
		}
	}

	return sd, nil
}

// mapPriority: empty stays unspecified, P2 maps to P2, anything else to P1.
func mapPriority(s string) rules.Priority {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return rules.PriorityUnspecified
	case "P2":
		return rules.PriorityP2
	default:
		return rules.PriorityP1
	}
}

// mapOperator: empty means no operator, OU maps to OU, anything else to ET.
func mapOperator(s string) rules.BoolOp {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return rules.BoolNone
	case "OU":
		return rules.BoolOr
	default:
		return rules.BoolAnd
	}
}

// presence defaults to true when the key is omitted.
func presence(p *bool) bool {
	if p == nil {
		return true
	}
	return *p
}
