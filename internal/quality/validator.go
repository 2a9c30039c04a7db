// Package quality implements the data-quality pipeline: per-row field
// validation, tolerant JSON-field checking, duplicate detection, and the
// orchestrator that ties them together into a cleaned record set plus an
// issue report.
package quality

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
)

const (
	// defaultUPBWarnCeiling flags balances above one billion dollars as
	// suspicious but plausible.
	defaultUPBWarnCeiling = 1_000_000_000
	// defaultStaleYears flags complaint dates older than a decade.
	defaultStaleYears = 10
	// minAddressLength below which an address draws a warning.
	minAddressLength = 5
)

// upbJunk matches everything stripped from a string UPB before parsing:
// currency symbols, commas, whitespace, and any other non-numeric noise.
var upbJunk = regexp.MustCompile(`[^0-9.\-]`)

// complaintDateLayouts are tried in order when coercing a string date.
var complaintDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ValidatorOptions tune the suspicious-value thresholds. Zero values fall
// back to the defaults.
type ValidatorOptions struct {
	UPBWarnCeiling float64
	StaleYears     int
	// Now supplies the clock for date-sanity warnings; defaults to time.Now.
	Now func() time.Time
}

// Validator validates one raw row at a time into a ProcessedRecord.
type Validator struct {
	opts ValidatorOptions
}

// NewValidator creates a validator with default thresholds.
func NewValidator() *Validator {
	return NewValidatorWithOptions(ValidatorOptions{})
}

// NewValidatorWithOptions creates a validator with explicit thresholds.
func NewValidatorWithOptions(opts ValidatorOptions) *Validator {
	if opts.UPBWarnCeiling <= 0 {
		opts.UPBWarnCeiling = defaultUPBWarnCeiling
	}

	if opts.StaleYears <= 0 {
		opts.StaleYears = defaultStaleYears
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Validator{opts: opts}
}

// ValidateRow validates a single raw row. The returned record carries the
// coerced UPB and complaint date, the error and warning lists, and the
// validity flag. Normalized county and lender names are left empty here —
// normalization runs in a later full pass so duplicate detection always
// sees canonical keys.
func (v *Validator) ValidateRow(raw models.RawRecord, index int) *models.ProcessedRecord {
	record := &models.ProcessedRecord{
		Raw:   raw,
		Index: index,
	}

	v.checkAddress(record)
	v.checkCounty(record)
	v.checkLender(record)
	v.checkUPB(record)
	v.checkComplaintDate(record)
	v.checkJSONFields(record)

	record.IsValid = len(record.Errors) == 0

	return record
}

func (v *Validator) checkAddress(record *models.ProcessedRecord) {
	address := strings.TrimSpace(fieldString(record.Raw, models.FieldPropertyAddress))
	if address == "" {
		record.Errors = append(record.Errors, "Missing or empty property address")

		return
	}

	if len(address) < minAddressLength {
		record.Warnings = append(record.Warnings,
			fmt.Sprintf("Property address %q is unusually short", address))
	}
}

func (v *Validator) checkCounty(record *models.ProcessedRecord) {
	county := strings.TrimSpace(fieldString(record.Raw, models.FieldCounty))
	if county == "" {
		record.Errors = append(record.Errors, "Missing or empty county")
	}
}

func (v *Validator) checkLender(record *models.ProcessedRecord) {
	value, present := record.Raw.Lender()
	if !present {
		record.Errors = append(record.Errors, "Missing or empty lender/plaintiff")

		return
	}

	if _, isDate := value.(time.Time); isDate {
		record.Errors = append(record.Errors, "Invalid lender/plaintiff value: date")

		return
	}

	name, isString := value.(string)
	if !isString {
		record.Errors = append(record.Errors,
			fmt.Sprintf("Invalid lender/plaintiff value: unexpected type %T", value))

		return
	}

	if strings.TrimSpace(name) == "" {
		record.Errors = append(record.Errors, "Missing or empty lender/plaintiff")
	}
}

func (v *Validator) checkUPB(record *models.ProcessedRecord) {
	value, ok := record.Raw[models.FieldUPB]
	if !ok || value == nil {
		record.Warnings = append(record.Warnings, "UPB is missing")

		return
	}

	switch upb := value.(type) {
	case string:
		v.coerceUPBString(record, upb)
	case float64:
		v.acceptUPB(record, upb)
	case int:
		v.acceptUPB(record, float64(upb))
	case int64:
		v.acceptUPB(record, float64(upb))
	default:
		record.Errors = append(record.Errors,
			fmt.Sprintf("Invalid UPB value: unexpected type %T", value))
	}
}

// coerceUPBString strips non-numeric noise and parses what remains.
func (v *Validator) coerceUPBString(record *models.ProcessedRecord, raw string) {
	cleaned := upbJunk.ReplaceAllString(raw, "")
	if cleaned == "" {
		record.Errors = append(record.Errors,
			fmt.Sprintf("UPB %q contains no numeric characters", raw))

		return
	}

	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(parsed) {
		record.Errors = append(record.Errors,
			fmt.Sprintf("UPB %q could not be parsed as a number", raw))

		return
	}

	v.acceptUPB(record, parsed)
}

// acceptUPB records the coerced balance along with any sanity warnings.
// Suspicious values are kept: a negative or huge balance is still a
// balance, and dropping it would understate the roll-ups.
func (v *Validator) acceptUPB(record *models.ProcessedRecord, upb float64) {
	if math.IsNaN(upb) {
		record.Errors = append(record.Errors, "UPB is not a number")

		return
	}

	switch {
	case upb < 0:
		record.Warnings = append(record.Warnings, "UPB is negative")
	case upb == 0:
		record.Warnings = append(record.Warnings, "UPB is zero")
	case upb > v.opts.UPBWarnCeiling:
		record.Warnings = append(record.Warnings, "UPB is unusually high")
	}

	record.UPB = &upb
}

func (v *Validator) checkComplaintDate(record *models.ProcessedRecord) {
	value, ok := record.Raw[models.FieldComplaintDate]
	if !ok || value == nil {
		record.Warnings = append(record.Warnings, "Complaint date is missing")

		return
	}

	switch date := value.(type) {
	case time.Time:
		if date.IsZero() {
			record.Errors = append(record.Errors, "Complaint date is invalid")

			return
		}

		v.acceptComplaintDate(record, date)
	case string:
		v.coerceDateString(record, date)
	default:
		record.Errors = append(record.Errors,
			fmt.Sprintf("Invalid complaint date value: unexpected type %T", value))
	}
}

func (v *Validator) coerceDateString(record *models.ProcessedRecord, raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		record.Errors = append(record.Errors, "Complaint date is empty string")

		return
	}

	for _, layout := range complaintDateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			v.acceptComplaintDate(record, parsed)

			return
		}
	}

	record.Errors = append(record.Errors,
		fmt.Sprintf("Complaint date %q could not be parsed", raw))
}

func (v *Validator) acceptComplaintDate(record *models.ProcessedRecord, date time.Time) {
	now := v.opts.Now()

	if date.After(now) {
		record.Warnings = append(record.Warnings, "Complaint date is in the future")
	} else if date.Before(now.AddDate(-v.opts.StaleYears, 0, 0)) {
		record.Warnings = append(record.Warnings,
			fmt.Sprintf("Complaint date is more than %d years old", v.opts.StaleYears))
	}

	record.ComplaintDate = &date
}

// fieldString returns the field coerced to a string for presence checks.
// Non-string scalars stringify; absent values and nils come back empty.
func fieldString(raw models.RawRecord, field string) string {
	value, ok := raw[field]
	if !ok || value == nil {
		return ""
	}

	switch s := value.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return fmt.Sprintf("%v", value)
	}
}
