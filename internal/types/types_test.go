package types

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRunID_RoundTrip(t *testing.T) {
	before := time.Now().Add(-time.Second)
	id := NewRunID()

	parsed, err := ParseRunID(string(id))
	if err != nil {
		t.Fatalf("ParseRunID() error = %v, want nil", err)
	}
	if parsed != id {
		t.Errorf("ParseRunID() = %v, want %v", parsed, id)
	}

	ts := RunIDTime(id)
	if ts.Before(before) || ts.After(time.Now().Add(time.Second)) {
		t.Errorf("RunIDTime() = %v, want close to now", ts)
	}
}

func TestRunID_Invalid(t *testing.T) {
	if _, err := ParseRunID("not-a-uuid"); err == nil {
		t.Errorf("ParseRunID() error = nil, want error")
	}
	if ts := RunIDTime("not-a-uuid"); !ts.IsZero() {
		t.Errorf("RunIDTime() = %v, want zero time", ts)
	}
}

func TestRecord_Lookups(t *testing.T) {
	rec := &Record{Fields: []Field{
		{Tag: "200", Ind1: "1", SubValues: []SubValue{{Code: "a", Text: "Titre"}, {Code: "e", Text: "Sous-titre"}, {Code: "a", Text: "Autre"}}},
		{Tag: "700", SubValues: []SubValue{{Code: "a", Text: "Auteur"}}},
		{Tag: "200"},
	}}

	refs := rec.FieldsByTag("200")
	want := []FieldRef{{Tag: "200", Occurrence: 0}, {Tag: "200", Occurrence: 2}}
	if diff := cmp.Diff(want, refs); diff != "" {
		t.Errorf("FieldsByTag() mismatch (-want +got):\n%s", diff)
	}
	if got := rec.FieldsByTag("999"); len(got) != 0 {
		t.Errorf("FieldsByTag(missing) = %v, want empty", got)
	}

	first := rec.Field(refs[0])
	if got := first.SubValuesByCode("a"); len(got) != 2 || got[1].Text != "Autre" {
		t.Errorf("SubValuesByCode(a) = %v, want two values in field order", got)
	}
	if !first.HasCode("e") || first.HasCode("z") {
		t.Errorf("HasCode() mismatch for field %v", first)
	}
	if got := rec.Field(FieldRef{Occurrence: 10}); got.Tag != "" {
		t.Errorf("Field(out of range) = %v, want empty field", got)
	}
	if got := refs[1].String(); got != "200#2" {
		t.Errorf("FieldRef.String() = %q, want %q", got, "200#2")
	}
}

func TestField_Indicator(t *testing.T) {
	f := Field{Ind1: "1", Ind2: " "}

	tests := []struct {
		slot int
		want string
	}{
		{1, "1"},
		{2, "#"},
		{3, ""},
	}
	for _, tt := range tests {
		if got := f.Indicator(tt.slot); got != tt.want {
			t.Errorf("Indicator(%d) = %q, want %q", tt.slot, got, tt.want)
		}
	}

	if got := NormalizeIndicator(""); got != "#" {
		t.Errorf("NormalizeIndicator(\"\") = %q, want #", got)
	}
}

func TestRecord_NilSafe(t *testing.T) {
	var rec *Record
	if got := rec.FieldsByTag("200"); got != nil {
		t.Errorf("FieldsByTag() on nil record = %v, want nil", got)
	}
}
