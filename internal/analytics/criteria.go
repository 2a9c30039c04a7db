// Package analytics computes the view-ready roll-ups over the quality
// pipeline's output: four-week county and weekly breakdowns, YTD and
// monthly stats, lender and region summaries, and the recent-activity
// lists. Every calculator is a pure reduction with no side effects and no
// dependency on call order; each takes a single "now" snapshot per call so
// its date windows are deterministic within a batch.
package analytics

import (
	"strings"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
)

// criteriaPhrase is the qualification marker checked as a
// case-insensitive substring of the criteria-status field.
const criteriaPhrase = "meets criteria"

// MeetsCriteria reports whether the record's criteria-status field
// contains "meets criteria", case-insensitively. "MEETS CRITERIA" passes.
// "Does not meet criteria" does not: the wording "not meet criteria" never
// contains the exact phrase.
func MeetsCriteria(record *models.ProcessedRecord) bool {
	status, ok := record.Raw[models.FieldMeetsCriteria].(string)
	if !ok {
		return false
	}

	return strings.Contains(strings.ToLower(status), criteriaPhrase)
}

// usable reports whether a record participates in standard aggregates:
// valid and not a duplicate.
func usable(record *models.ProcessedRecord) bool {
	return record.IsValid && !record.IsDuplicate
}

// qualifying reports whether a record participates in criteria-based
// aggregates: usable and criteria-meeting.
func qualifying(record *models.ProcessedRecord) bool {
	return usable(record) && MeetsCriteria(record)
}
