// internal/types/record.go
package types

import (
	"fmt"
	"strings"
)

/*
 * Read-only record model.
 *
 * A Record is an ordered sequence of Field occurrences. Tags repeat across
 * occurrences and sub-value codes repeat inside a field, so every lookup is
 * order-preserving and returns a slice. Absence is an empty slice, never an
 * error.
 *
 * Occurrence identity: a FieldRef names one occurrence by tag and its index
 * in Record.Fields. The index is stable for the lifetime of the record and is
 * what the engine reports as a triggering location.
 */

// SubValue is one coded value inside a field (a MARC subfield).
type SubValue struct {
	Code string `json:"code"`
	Text string `json:"value"`
}

// Field is one occurrence of a tagged zone.
type Field struct {
	Tag       string     `json:"tag"`
	Ind1      string     `json:"ind1,omitempty"`
	Ind2      string     `json:"ind2,omitempty"`
	SubValues []SubValue `json:"subfields,omitempty"`
}

// Record is a bibliographic record as seen by the engine.
type Record struct {
	PPN    string  `json:"ppn"`
	Family string  `json:"family,omitempty"` // document family code
	Title  string  `json:"title,omitempty"`
	Author string  `json:"author,omitempty"`
	ISBN   string  `json:"isbn,omitempty"`
	Fields []Field `json:"fields"`
}

// FieldRef identifies one field occurrence inside a record.
type FieldRef struct {
	Tag        string `json:"tag"`
	Occurrence int    `json:"occurrence"` // index in Record.Fields
}

// String renders the reference as tag#index.
func (f FieldRef) String() string {
	return fmt.Sprintf("%s#%d", f.Tag, f.Occurrence)
}

// FieldsByTag returns references to every occurrence of tag, in record order.
func (r *Record) FieldsByTag(tag string) []FieldRef {
	if r == nil {
		return nil
	}
	var refs []FieldRef
	for i, f := range r.Fields {
		if f.Tag == tag {
			refs = append(refs, FieldRef{Tag: tag, Occurrence: i})
		}
	}
	return refs
}

// Field returns the occurrence named by ref.
// Out-of-range references yield an empty field.
func (r *Record) Field(ref FieldRef) Field {
	if r == nil || ref.Occurrence < 0 || ref.Occurrence >= len(r.Fields) {
		return Field{}
	}
	return r.Fields[ref.Occurrence]
}

// SubValuesByCode returns the sub-values carrying code, in field order.
func (f Field) SubValuesByCode(code string) []SubValue {
	var out []SubValue
	for _, sv := range f.SubValues {
		if sv.Code == code {
			out = append(out, sv)
		}
	}
	return out
}

// HasCode reports whether at least one sub-value carries code.
func (f Field) HasCode(code string) bool {
	for _, sv := range f.SubValues {
		if sv.Code == code {
			return true
		}
	}
	return false
}

// Indicator returns indicator slot 1 or 2 normalized: blank and "#" both
// read as "#". Any other slot returns "".
func (f Field) Indicator(slot int) string {
	switch slot {
	case 1:
		return NormalizeIndicator(f.Ind1)
	case 2:
		return NormalizeIndicator(f.Ind2)
	default:
		return ""
	}
}

// NormalizeIndicator maps the blank indicator spellings to "#".
func NormalizeIndicator(v string) string {
	if strings.TrimSpace(v) == "" {
		return "#"
	}
	return v
}
