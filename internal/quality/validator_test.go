package quality

import (
	"strings"
	"testing"
	"time"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
)

// fixedNow keeps the date-sanity warnings deterministic.
var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return NewValidatorWithOptions(ValidatorOptions{
		Now: func() time.Time { return fixedNow },
	})
}

func hasIssue(issues []string, substr string) bool {
	for _, issue := range issues {
		if strings.Contains(issue, substr) {
			return true
		}
	}

	return false
}

func TestValidateRow_ValidRow(t *testing.T) {
	v := newTestValidator()

	record := v.ValidateRow(models.RawRecord{
		"propertyAddress": "123 Main St",
		"county":          "Miami-Dade",
		"lender":          "Wells Fargo Bank",
		"upb":             "250000.00",
		"complaintDate":   "2024-06-01",
	}, 0)

	if !record.IsValid {
		t.Fatalf("expected valid record, got errors: %v", record.Errors)
	}
	if len(record.Errors) != 0 {
		t.Errorf("unexpected errors: %v", record.Errors)
	}
	if len(record.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", record.Warnings)
	}
	if record.UPB == nil || *record.UPB != 250000 {
		t.Errorf("UPB = %v, want 250000", record.UPB)
	}
	if record.ComplaintDate == nil || !record.ComplaintDate.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ComplaintDate = %v, want 2024-06-01", record.ComplaintDate)
	}
}

func TestValidateRow_AddressChecks(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		address   any
		wantError string
		wantWarn  string
	}{
		{
			name:      "Missing address",
			address:   nil,
			wantError: "Missing or empty property address",
		},
		{
			name:      "Empty address",
			address:   "   ",
			wantError: "Missing or empty property address",
		},
		{
			name:     "Short address",
			address:  "12 A",
			wantWarn: "unusually short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := models.RawRecord{
				"county":        "Broward",
				"lender":        "Test Bank",
				"upb":           "100000",
				"complaintDate": "2024-06-01",
			}
			if tt.address != nil {
				raw["propertyAddress"] = tt.address
			}

			record := v.ValidateRow(raw, 0)

			if tt.wantError != "" && !hasIssue(record.Errors, tt.wantError) {
				t.Errorf("errors = %v, want one containing %q", record.Errors, tt.wantError)
			}
			if tt.wantWarn != "" {
				if !hasIssue(record.Warnings, tt.wantWarn) {
					t.Errorf("warnings = %v, want one containing %q", record.Warnings, tt.wantWarn)
				}
				if !record.IsValid {
					t.Error("warnings alone should not invalidate the record")
				}
			}
		})
	}
}

func TestValidateRow_LenderChecks(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		raw       models.RawRecord
		wantError string
		wantValid bool
	}{
		{
			name: "Plaintiff fallback",
			raw: models.RawRecord{
				"propertyAddress": "123 Main St",
				"county":          "Broward",
				"plaintiff":       "US Bank Trust",
				"upb":             "100000",
				"complaintDate":   "2024-06-01",
			},
			wantValid: true,
		},
		{
			name: "Both missing",
			raw: models.RawRecord{
				"propertyAddress": "123 Main St",
				"county":          "Broward",
				"upb":             "100000",
				"complaintDate":   "2024-06-01",
			},
			wantError: "Missing or empty lender/plaintiff",
		},
		{
			name: "Empty lender falls through to plaintiff",
			raw: models.RawRecord{
				"propertyAddress": "123 Main St",
				"county":          "Broward",
				"lender":          "",
				"plaintiff":       "Fallback Bank",
				"upb":             "100000",
				"complaintDate":   "2024-06-01",
			},
			wantValid: true,
		},
		{
			name: "Date-typed lender",
			raw: models.RawRecord{
				"propertyAddress": "123 Main St",
				"county":          "Broward",
				"lender":          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				"upb":             "100000",
				"complaintDate":   "2024-06-01",
			},
			wantError: "Invalid lender/plaintiff value: date",
		},
		{
			name: "Numeric lender",
			raw: models.RawRecord{
				"propertyAddress": "123 Main St",
				"county":          "Broward",
				"lender":          42.0,
				"upb":             "100000",
				"complaintDate":   "2024-06-01",
			},
			wantError: "unexpected type float64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := v.ValidateRow(tt.raw, 0)

			if tt.wantError != "" && !hasIssue(record.Errors, tt.wantError) {
				t.Errorf("errors = %v, want one containing %q", record.Errors, tt.wantError)
			}
			if tt.wantValid && !record.IsValid {
				t.Errorf("expected valid record, got errors: %v", record.Errors)
			}
		})
	}
}

func TestValidateRow_UPBChecks(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		upb       any
		wantUPB   *float64
		wantError string
		wantWarn  string
	}{
		{
			name:    "Currency formatting stripped",
			upb:     "$1,125,000.50",
			wantUPB: ptr(1125000.50),
		},
		{
			name:    "Numeric value",
			upb:     350000.0,
			wantUPB: ptr(350000.0),
		},
		{
			name:     "Missing UPB",
			upb:      nil,
			wantWarn: "UPB is missing",
		},
		{
			name:      "No numeric characters",
			upb:       "abc",
			wantError: "contains no numeric characters",
		},
		{
			name:      "Unparseable remainder",
			upb:       "1.2.3",
			wantError: "could not be parsed as a number",
		},
		{
			name:     "Negative kept with warning",
			upb:      "-5000",
			wantUPB:  ptr(-5000.0),
			wantWarn: "UPB is negative",
		},
		{
			name:     "Zero kept with warning",
			upb:      "0",
			wantUPB:  ptr(0.0),
			wantWarn: "UPB is zero",
		},
		{
			name:     "Unusually high kept with warning",
			upb:      "2000000000",
			wantUPB:  ptr(2000000000.0),
			wantWarn: "UPB is unusually high",
		},
		{
			name:      "Unexpected type",
			upb:       true,
			wantError: "unexpected type bool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := models.RawRecord{
				"propertyAddress": "123 Main St",
				"county":          "Broward",
				"lender":          "Test Bank",
				"complaintDate":   "2024-06-01",
			}
			if tt.upb != nil {
				raw["upb"] = tt.upb
			}

			record := v.ValidateRow(raw, 0)

			if tt.wantError != "" && !hasIssue(record.Errors, tt.wantError) {
				t.Errorf("errors = %v, want one containing %q", record.Errors, tt.wantError)
			}
			if tt.wantWarn != "" && !hasIssue(record.Warnings, tt.wantWarn) {
				t.Errorf("warnings = %v, want one containing %q", record.Warnings, tt.wantWarn)
			}
			if tt.wantUPB != nil {
				if record.UPB == nil {
					t.Fatalf("UPB = nil, want %v", *tt.wantUPB)
				}
				if *record.UPB != *tt.wantUPB {
					t.Errorf("UPB = %v, want %v", *record.UPB, *tt.wantUPB)
				}
			}
			if tt.wantError != "" && record.UPB != nil {
				t.Errorf("uncoercible UPB should stay nil, got %v", *record.UPB)
			}
		})
	}
}

func TestValidateRow_ComplaintDateChecks(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		date      any
		wantError string
		wantWarn  string
		wantDate  bool
	}{
		{
			name:     "ISO date",
			date:     "2024-03-10",
			wantDate: true,
		},
		{
			name:     "US slash date",
			date:     "03/10/2024",
			wantDate: true,
		},
		{
			name:     "Long form date",
			date:     "March 10, 2024",
			wantDate: true,
		},
		{
			name:     "Native time value",
			date:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			wantDate: true,
		},
		{
			name:     "Missing date",
			date:     nil,
			wantWarn: "Complaint date is missing",
		},
		{
			name:      "Zero time value",
			date:      time.Time{},
			wantError: "Complaint date is invalid",
		},
		{
			name:      "Empty string",
			date:      "  ",
			wantError: "Complaint date is empty string",
		},
		{
			name:      "Unparseable string",
			date:      "02/30/2024",
			wantError: "could not be parsed",
		},
		{
			name:     "Future date warns",
			date:     "2025-01-01",
			wantWarn: "Complaint date is in the future",
			wantDate: true,
		},
		{
			name:     "Stale date warns",
			date:     "2010-01-01",
			wantWarn: "more than 10 years old",
			wantDate: true,
		},
		{
			name:      "Unexpected type",
			date:      12345,
			wantError: "unexpected type int",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := models.RawRecord{
				"propertyAddress": "123 Main St",
				"county":          "Broward",
				"lender":          "Test Bank",
				"upb":             "100000",
			}
			if tt.date != nil {
				raw["complaintDate"] = tt.date
			}

			record := v.ValidateRow(raw, 0)

			if tt.wantError != "" && !hasIssue(record.Errors, tt.wantError) {
				t.Errorf("errors = %v, want one containing %q", record.Errors, tt.wantError)
			}
			if tt.wantWarn != "" && !hasIssue(record.Warnings, tt.wantWarn) {
				t.Errorf("warnings = %v, want one containing %q", record.Warnings, tt.wantWarn)
			}
			if tt.wantDate && record.ComplaintDate == nil {
				t.Error("expected coerced complaint date, got nil")
			}
			if !tt.wantDate && record.ComplaintDate != nil {
				t.Errorf("expected nil complaint date, got %v", record.ComplaintDate)
			}
		})
	}
}

func TestValidateRow_MissingCounty(t *testing.T) {
	v := newTestValidator()

	record := v.ValidateRow(models.RawRecord{
		"propertyAddress": "123 Main St",
		"lender":          "Test Bank",
		"upb":             "100000",
		"complaintDate":   "2024-06-01",
	}, 0)

	if record.IsValid {
		t.Error("record with missing county should be invalid")
	}
	if !hasIssue(record.Errors, "Missing or empty county") {
		t.Errorf("errors = %v, want missing county", record.Errors)
	}
}

func ptr(f float64) *float64 {
	return &f
}
