package quality

import (
	"testing"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
)

func baseRow() models.RawRecord {
	return models.RawRecord{
		"propertyAddress": "123 Main St",
		"county":          "Broward",
		"lender":          "Test Bank",
		"upb":             "100000",
		"complaintDate":   "2024-06-01",
	}
}

func TestCheckJSONFields(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		field     string
		value     any
		wantError string
		wantWarn  string
	}{
		{
			name:  "Valid JSON object",
			field: "metadata",
			value: `{"caseNumber": "2024-CA-001", "division": "11"}`,
		},
		{
			name:     "Missing closing brace auto-fixed",
			field:    "metadata",
			value:    `{"caseNumber": "2024-CA-002"`,
			wantWarn: "was malformed but auto-fixed",
		},
		{
			name:      "Unterminated string stays an error",
			field:     "metadata",
			value:     `{"incomplete": "json`,
			wantError: `Invalid JSON in "metadata"`,
		},
		{
			name:     "Bare key-value gains wrapping braces",
			field:    "extra",
			value:    `"note": "call back"`,
			wantWarn: "was malformed but auto-fixed",
		},
		{
			name:  "JSON-shaped value without name hint",
			field: "comment",
			value: `[1, 2, 3]`,
		},
		{
			name:      "Broken JSON-shaped value without name hint",
			field:     "comment",
			value:     `["unclosed"`,
			wantWarn:  "was malformed but auto-fixed",
			wantError: "",
		},
		{
			name:  "Plain text without name hint ignored",
			field: "comment",
			value: "call the clerk {urgent",
		},
		{
			name:  "Already-decoded structure ignored",
			field: "metadata",
			value: map[string]any{"caseNumber": "2024-CA-003"},
		},
		{
			name:  "Empty string ignored",
			field: "metadata",
			value: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := baseRow()
			raw[tt.field] = tt.value

			record := v.ValidateRow(raw, 0)

			if tt.wantError == "" && len(record.Errors) != 0 {
				t.Errorf("unexpected errors: %v", record.Errors)
			}
			if tt.wantError != "" && !hasIssue(record.Errors, tt.wantError) {
				t.Errorf("errors = %v, want one containing %q", record.Errors, tt.wantError)
			}
			if tt.wantWarn != "" && !hasIssue(record.Warnings, tt.wantWarn) {
				t.Errorf("warnings = %v, want one containing %q", record.Warnings, tt.wantWarn)
			}
			if tt.wantWarn == "" && len(record.Warnings) != 0 {
				t.Errorf("unexpected warnings: %v", record.Warnings)
			}
		})
	}
}

func TestCheckJSONFields_ErrorIncludesContext(t *testing.T) {
	v := newTestValidator()

	raw := baseRow()
	raw["metadata"] = `{"a": 1, "b": }`

	record := v.ValidateRow(raw, 0)

	if len(record.Errors) != 1 {
		t.Fatalf("expected one error, got %v", record.Errors)
	}
	if !hasIssue(record.Errors, "near") {
		t.Errorf("error should quote surrounding text: %v", record.Errors[0])
	}
}

func TestRepairJSONText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		repaired bool
	}{
		{
			name:     "Missing object closer",
			input:    `{"a": 1`,
			want:     `{"a": 1}`,
			repaired: true,
		},
		{
			name:     "Nested closers in order",
			input:    `{"a": [1, 2`,
			want:     `{"a": [1, 2]}`,
			repaired: true,
		},
		{
			name:     "Bare content wrapped",
			input:    `"a": 1`,
			want:     `{"a": 1}`,
			repaired: true,
		},
		{
			name:     "Balanced input untouched",
			input:    `{"a": 1}`,
			repaired: false,
		},
		{
			name:     "No candidate repair",
			input:    `[1, 2, 3]`,
			repaired: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := repairJSONText(tt.input)
			if ok != tt.repaired {
				t.Fatalf("repairJSONText(%q) ok = %v, want %v", tt.input, ok, tt.repaired)
			}
			if tt.repaired && got != tt.want {
				t.Errorf("repairJSONText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
