package checker

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/abes-esr/qualimarc/internal/rules"
	"github.com/abes-esr/qualimarc/internal/types"
)

// Report is the outcome of one batch check.
type Report struct {
	RunID     types.RunID    `json:"run_id"`
	StartedAt time.Time      `json:"started_at"`
	Analysed  int            `json:"analysed"`
	Failing   int            `json:"failing"`
	OK        int            `json:"ok"`
	Results   []RecordResult `json:"results"`
}

// RecordResult lists the failed rules of one record.
// Descriptive fields are copied from the record as-is.
type RecordResult struct {
	PPN      string    `json:"ppn"`
	Family   string    `json:"family,omitempty"`
	Title    string    `json:"title,omitempty"`
	Author   string    `json:"author,omitempty"`
	ISBN     string    `json:"isbn,omitempty"`
	Failures []Failure `json:"failures,omitempty"`
}

// Failed reports whether at least one rule failed on the record.
func (r RecordResult) Failed() bool { return len(r.Failures) > 0 }

// Failure is one failed rule.
type Failure struct {
	RuleID   int      `json:"rule_id"`
	Message  string   `json:"message"`
	Priority string   `json:"priority"`
	Zones    []string `json:"zones,omitempty"` // triggering occurrences, tag#index
}

func newFailure(v rules.Verdict) Failure {
	f := Failure{RuleID: v.RuleID, Message: v.Message, Priority: v.Priority.String()}
	for _, ref := range v.Fields {
		f.Zones = append(f.Zones, ref.String())
	}
	return f
}

func newReport(runID types.RunID, results []RecordResult) *Report {
	report := &Report{
		RunID:     runID,
		StartedAt: types.RunIDTime(runID).UTC(),
		Analysed:  len(results),
		Results:   results,
	}
	for _, r := range results {
		if r.Failed() {
			report.Failing++
		}
	}
	report.OK = report.Analysed - report.Failing
	return report
}

// WriteJSON writes the report as one indented JSON document.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteJSONL writes one line per record result, failing records only when
// failedOnly is set.
func (r *Report) WriteJSONL(w io.Writer, failedOnly bool) error {
	enc := json.NewEncoder(w)
	for _, res := range r.Results {
		if failedOnly && !res.Failed() {
			continue
		}
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to write result %s: %w", res.PPN, err)
		}
	}
	return nil
}
