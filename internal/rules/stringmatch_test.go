package rules

import (
	"strings"
	"testing"

	"github.com/abes-esr/qualimarc/internal/types"
	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func stringMatch(mode MatchMode, targets ...types.TargetDefinition) types.CompoundDefinition {
	return single(types.SimpleDefinition{
		ID: 1, Kind: int(KindStringMatch), Zone: "200", SubZone: "a",
		MatchMode: int(mode), Targets: targets,
	})
}

func TestStringMatch_Modes(t *testing.T) {
	rec := record("A", field("200", "a", "Le petit prince"))

	tests := []struct {
		mode   MatchMode
		target string
		want   bool
	}{
		{MatchStrict, "Le petit prince", true},
		{MatchStrict, "Le petit", false},
		{MatchStartsWith, "Le ", true},
		{MatchStartsWith, "petit", false},
		{MatchEndsWith, "prince", true},
		{MatchEndsWith, "Le", false},
		{MatchContains, "petit", true},
		{MatchContains, "grand", false},
		{MatchNotContains, "grand", true},
		{MatchNotContains, "petit", false},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String()+"/"+tt.target, func(t *testing.T) {
			rule := mustCompile(t, stringMatch(tt.mode, types.TargetDefinition{Text: tt.target}))
			if got := Evaluate(rule, rec).Failed(); got != tt.want {
				t.Errorf("Failed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStringMatch_ContainsSingleTarget(t *testing.T) {
	rule := mustCompile(t, stringMatch(MatchContains, types.TargetDefinition{Text: "x"}))

	rec := record("A", field("200", "a", "abc"), field("200", "a", "axb"))
	got := Evaluate(rule, rec)
	if !got.Failed() {
		t.Fatalf("Failed() = false, want true")
	}
	if diff := cmp.Diff([]types.FieldRef{{Tag: "200", Occurrence: 1}}, got.Fields); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}

	if Evaluate(rule, record("A", field("200", "a", "abc"))).Failed() {
		t.Errorf("no value contains x: Failed() = true, want false")
	}
}

func TestStringMatch_AndTargets(t *testing.T) {
	rule := mustCompile(t, stringMatch(MatchContains,
		types.TargetDefinition{Text: "Du"},
		types.TargetDefinition{Text: "pont", Operator: int(BoolAnd)},
	))

	if !Evaluate(rule, record("A", field("200", "a", "Dupont"))).Failed() {
		t.Errorf("Dupont: Failed() = false, want true")
	}
	if Evaluate(rule, record("A", field("200", "a", "Durand"))).Failed() {
		t.Errorf("Durand: Failed() = true, want false")
	}
	// Both targets on different sub-values of one field do not satisfy ET.
	if Evaluate(rule, record("A", field("200", "a", "Du", "a", "pont"))).Failed() {
		t.Errorf("split values: Failed() = true, want false")
	}
}

func TestStringMatch_StrictAndIsConjunction(t *testing.T) {
	rule := mustCompile(t, stringMatch(MatchStrict,
		types.TargetDefinition{Text: "a"},
		types.TargetDefinition{Text: "b", Operator: int(BoolAnd)},
	))

	rec := record("A", field("200", "a", "a"), field("200", "a", "b"))
	if Evaluate(rule, rec).Failed() {
		t.Errorf("Failed() = true, want false: no value equals both targets")
	}
}

func TestStringMatch_EmptyTargets(t *testing.T) {
	rule := mustCompile(t, stringMatch(MatchContains))
	if Evaluate(rule, record("A", field("200", "a", "anything"))).Failed() {
		t.Errorf("Failed() = true, want false for an empty target list")
	}
}

func TestStringMatch_NoSubValue(t *testing.T) {
	rule := mustCompile(t, stringMatch(MatchNotContains, types.TargetDefinition{Text: "x"}))
	if Evaluate(rule, record("A", field("200", "b", "abc"))).Failed() {
		t.Errorf("Failed() = true, want false when the sub-zone is missing")
	}
}

func TestMatchTargets_ShortCircuit(t *testing.T) {
	tests := []struct {
		name      string
		targets   []Target
		value     string
		want      bool
		wantCalls int
	}{
		{
			name:      "first target true before OU",
			targets:   []Target{{Text: "a"}, {Text: "b", Operator: BoolOr}, {Text: "c", Operator: BoolAnd}},
			value:     "a",
			want:      true,
			wantCalls: 1,
		},
		{
			name:      "OU target true skips the rest",
			targets:   []Target{{Text: "x"}, {Text: "a", Operator: BoolOr}, {Text: "c", Operator: BoolAnd}},
			value:     "a",
			want:      true,
			wantCalls: 2,
		},
		{
			name:      "first target true before ET keeps folding",
			targets:   []Target{{Text: "a"}, {Text: "b", Operator: BoolAnd}},
			value:     "a",
			want:      false,
			wantCalls: 2,
		},
		{
			name:      "left to right without precedence",
			targets:   []Target{{Text: "x"}, {Text: "y", Operator: BoolAnd}, {Text: "a", Operator: BoolOr}},
			value:     "a",
			want:      true,
			wantCalls: 3,
		},
		{
			name:      "all false",
			targets:   []Target{{Text: "x"}, {Text: "y", Operator: BoolOr}},
			value:     "a",
			want:      false,
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			pred := func(value, target string) bool {
				calls++
				return value == target
			}
			if got := matchTargets(tt.value, tt.targets, pred); got != tt.want {
				t.Errorf("matchTargets() = %v, want %v", got, tt.want)
			}
			if calls != tt.wantCalls {
				t.Errorf("predicate calls = %v, want %v", calls, tt.wantCalls)
			}
		})
	}
}

func TestMatchTargets_OrSkipsSecondTarget(t *testing.T) {
	pred := func(value, target string) bool {
		if target == "boom" {
			t.Fatalf("second target evaluated after the first matched")
		}
		return Contains(value, target)
	}
	targets := []Target{{Text: "pet"}, {Text: "boom", Operator: BoolOr}}
	if !matchTargets("Le petit prince", targets, pred) {
		t.Errorf("matchTargets() = false, want true")
	}
}

func TestStringMatch_CandidatesFollowTargetFold(t *testing.T) {
	rule := mustCompile(t, stringMatch(MatchStartsWith,
		types.TargetDefinition{Text: "A"},
		types.TargetDefinition{Text: "B", Operator: int(BoolOr)},
	))

	rec := record("A", field("200", "a", "Alpha"), field("200", "a", "Beta"), field("200", "a", "Gamma"))
	got := Evaluate(rule, rec)
	want := []types.FieldRef{{Tag: "200", Occurrence: 0}, {Tag: "200", Occurrence: 1}}
	if diff := cmp.Diff(want, got.Fields); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
}

// Property-based test: single-target CONTIENT matches iff some value contains the target
func TestStringMatch_PropertyContainsIff(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("single target contains is existential", prop.ForAll(
		func(values []string, target string) bool {
			f := types.Field{Tag: "200"}
			want := false
			for _, v := range values {
				f.SubValues = append(f.SubValues, types.SubValue{Code: "a", Text: v})
				want = want || strings.Contains(v, target)
			}
			rule := &StringMatch{
				RuleBase: RuleBase{ID: 1, Zone: "200"},
				SubZone:  "a",
				Mode:     MatchContains,
				Targets:  []Target{{Text: target}},
			}
			got := evaluateStringMatch(rule, &types.Record{Fields: []types.Field{f}})
			return got.Matched == want && (got.Candidates.Len() > 0) == want
		},
		gen.SliceOfN(4, gen.AlphaString()),
		gen.RegexMatch("[a-c]{1,2}"),
	))

	properties.TestingRun(t)
}

// Property-based test: NECONTIENTPAS is the complement of CONTIENT for one value
func TestStringMatch_PropertyNotContainsComplement(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("not contains negates contains", prop.ForAll(
		func(value, target string) bool {
			return NotContains(value, target) == !Contains(value, target)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
