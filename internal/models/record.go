// Package models defines the record and report types shared across the
// quality pipeline and the aggregate calculators.
package models

import "time"

// Well-known field names on a raw complaint row. The fetch layer performs
// column-name mapping before rows reach the pipeline, so these names are
// stable here even when the source spreadsheet headers are not.
const (
	FieldPropertyAddress = "propertyAddress"
	FieldCounty          = "county"
	FieldLender          = "lender"
	FieldPlaintiff       = "plaintiff"
	FieldUPB             = "upb"
	FieldComplaintDate   = "complaintDate"
	FieldMeetsCriteria   = "meetsCriteria"
)

// RawRecord is one row as received from the fetch layer: field name to
// loosely-typed value (string, float64, time.Time, or nested structure).
// Extra fields are allowed and preserved. A RawRecord is never mutated
// once produced; it is the source of truth for audit and duplicate-origin
// tracking.
type RawRecord map[string]any

// Lender returns the lender value, falling back to plaintiff, along with
// whether either field was present.
func (r RawRecord) Lender() (any, bool) {
	if v, ok := r[FieldLender]; ok && v != nil {
		if s, isStr := v.(string); !isStr || s != "" {
			return v, true
		}
	}

	if v, ok := r[FieldPlaintiff]; ok && v != nil {
		if s, isStr := v.(string); !isStr || s != "" {
			return v, true
		}
	}

	return nil, false
}

// ProcessedRecord is a validated row. It is created once per raw row by the
// field validator, assigned normalized names in a later pass, flagged by the
// duplicate detector, and read-only afterwards.
type ProcessedRecord struct {
	Raw   RawRecord `json:"raw"`
	Index int       `json:"index"`

	// UPB is the coerced unpaid principal balance, nil when uncoercible.
	UPB *float64 `json:"upb,omitempty"`
	// ComplaintDate is the coerced filing date, nil when invalid.
	ComplaintDate *time.Time `json:"complaintDate,omitempty"`

	NormalizedCounty string `json:"normalizedCounty"`
	NormalizedLender string `json:"normalizedLender"`

	// IsValid is true iff no error-class issues were found. Warnings alone
	// do not invalidate a record.
	IsValid bool `json:"isValid"`
	// IsDuplicate is true iff an earlier-indexed record matched under any
	// duplicate-key strategy.
	IsDuplicate bool `json:"isDuplicate"`

	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`

	// DuplicateNote is the human-readable duplicate marker, prepended to
	// DisplayIssues when set.
	DuplicateNote string `json:"duplicateNote,omitempty"`
}

// UPBOrZero returns the coerced UPB, or 0 when absent, so sums never see
// an uncoercible balance.
func (r *ProcessedRecord) UPBOrZero() float64 {
	if r.UPB == nil {
		return 0
	}

	return *r.UPB
}

// DisplayIssues returns the visible issue list for the record: the errors
// when any exist, otherwise the warnings. The duplicate marker, when
// present, is prepended in either case.
func (r *ProcessedRecord) DisplayIssues() []string {
	base := r.Errors
	if len(base) == 0 {
		base = r.Warnings
	}

	if r.DuplicateNote == "" {
		return base
	}

	issues := make([]string, 0, len(base)+1)
	issues = append(issues, r.DuplicateNote)
	issues = append(issues, base...)

	return issues
}

// DataQualityIssue is one reportable finding: a row with any error or
// warning, or a row flagged as a duplicate.
type DataQualityIssue struct {
	RowIndex    int       `json:"rowIndex"`
	Row         RawRecord `json:"row"`
	Errors      []string  `json:"errors"`
	IsDuplicate bool      `json:"isDuplicate"`
	DuplicateOf *int      `json:"duplicateOf,omitempty"`
}

// QualitySummary holds aggregate counts over one pipeline run.
// ValidRows + InvalidRows always equals TotalRows, and a row counted in
// RowsWithJSONErrors is never also counted in RowsWithOtherErrors.
type QualitySummary struct {
	TotalRows           int `json:"totalRows"`
	ValidRows           int `json:"validRows"`
	InvalidRows         int `json:"invalidRows"`
	DuplicateRows       int `json:"duplicateRows"`
	RowsWithJSONErrors  int `json:"rowsWithJsonErrors"`
	RowsWithOtherErrors int `json:"rowsWithOtherErrors"`
}

// PipelineResult is the full output of one quality-pipeline run.
type PipelineResult struct {
	Processed []*ProcessedRecord `json:"processed"`
	Issues    []DataQualityIssue `json:"issues"`
	Summary   QualitySummary     `json:"summary"`
}
