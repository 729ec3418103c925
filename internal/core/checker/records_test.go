package checker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abes-esr/qualimarc/internal/types"
)

func TestReadRecords(t *testing.T) {
	want := []types.Record{
		{PPN: "111", Family: "A", Fields: []types.Field{
			{Tag: "200", Ind1: "1", SubValues: []types.SubValue{{Code: "a", Text: "Titre"}}},
		}},
		{PPN: "222", Fields: []types.Field{{Tag: "010"}}},
	}

	tests := []struct {
		name  string
		input string
	}{
		{
			name: "array",
			input: ` [
				{"ppn": "111", "family": "A", "fields": [{"tag": "200", "ind1": "1", "subfields": [{"code": "a", "value": "Titre"}]}]},
				{"ppn": "222", "fields": [{"tag": "010"}]}
			]`,
		},
		{
			name: "json lines",
			input: `{"ppn": "111", "family": "A", "fields": [{"tag": "200", "ind1": "1", "subfields": [{"code": "a", "value": "Titre"}]}]}

{"ppn": "222", "fields": [{"tag": "010"}]}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadRecords(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadRecords() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ReadRecords() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadRecords_Empty(t *testing.T) {
	got, err := ReadRecords(strings.NewReader("  \n"))
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadRecords() = %v, want empty", got)
	}
}

func TestReadRecords_Malformed(t *testing.T) {
	for _, input := range []string{`[{"ppn": 1}]`, `{"ppn": "1"} {"ppn":`} {
		if _, err := ReadRecords(strings.NewReader(input)); err == nil {
			t.Errorf("ReadRecords(%q) error = nil, want error", input)
		}
	}
}

func TestReadRecordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	if err := os.WriteFile(path, []byte(`{"ppn": "1"}`+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := ReadRecordsFile(path)
	if err != nil {
		t.Fatalf("ReadRecordsFile() error = %v", err)
	}
	if len(got) != 1 || got[0].PPN != "1" {
		t.Errorf("ReadRecordsFile() = %v, want one record", got)
	}

	if _, err := ReadRecordsFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("ReadRecordsFile(missing) error = nil, want error")
	}
}
