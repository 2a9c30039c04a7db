package metadata

import (
	"errors"
	"strings"
	"testing"
)

const reportBody = "# Data Quality Report\n\nNo data-quality issues found."

func TestSignAndVerify(t *testing.T) {
	signed := Sign(reportBody, true, "run-123")

	if !strings.Contains(signed, TagStart) || !strings.Contains(signed, TagEnd) {
		t.Fatalf("signed content missing metadata block:\n%s", signed)
	}
	if !strings.HasPrefix(signed, reportBody) {
		t.Error("signing should preserve the report body")
	}

	valid, err := Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned unexpected error: %v", err)
	}
	if !valid {
		t.Error("freshly signed content should verify")
	}
}

func TestSign_ReplacesExistingBlock(t *testing.T) {
	once := Sign(reportBody, true, "run-1")
	twice := Sign(once, false, "run-2")

	if strings.Count(twice, TagStart) != 1 {
		t.Errorf("re-signing should replace the block, found %d blocks", strings.Count(twice, TagStart))
	}

	meta, _ := Extract(twice)
	if meta.RunID != "run-2" {
		t.Errorf("RunID = %q, want run-2", meta.RunID)
	}
	if meta.Clean {
		t.Error("Clean should be false after re-signing")
	}
}

func TestSign_GeneratesRunID(t *testing.T) {
	signed := Sign(reportBody, true, "")

	meta, _ := Extract(signed)
	if meta == nil || meta.RunID == "" {
		t.Fatal("empty runID should be replaced with a generated one")
	}
}

func TestExtract(t *testing.T) {
	signed := Sign(reportBody, true, "run-123")

	meta, clean := Extract(signed)
	if meta == nil {
		t.Fatal("Extract returned nil metadata for signed content")
	}
	if meta.RunID != "run-123" {
		t.Errorf("RunID = %q, want run-123", meta.RunID)
	}
	if !meta.Clean {
		t.Error("Clean should be true")
	}
	if meta.GeneratedAt.IsZero() {
		t.Error("GeneratedAt should be parsed")
	}
	if meta.Hash == "" {
		t.Error("Hash should be present")
	}
	if clean != reportBody {
		t.Errorf("clean body = %q, want original body", clean)
	}
}

func TestExtract_NoBlock(t *testing.T) {
	meta, clean := Extract(reportBody)

	if meta != nil {
		t.Errorf("expected nil metadata, got %+v", meta)
	}
	if clean != reportBody {
		t.Errorf("clean body = %q, want unchanged content", clean)
	}
}

func TestVerify_Errors(t *testing.T) {
	t.Run("No block", func(t *testing.T) {
		_, err := Verify(reportBody)
		if !errors.Is(err, ErrNoMetadataBlock) {
			t.Errorf("expected ErrNoMetadataBlock, got %v", err)
		}
	})

	t.Run("Tampered content", func(t *testing.T) {
		signed := Sign(reportBody, true, "run-123")
		tampered := strings.Replace(signed, "Report", "Altered", 1)

		valid, err := Verify(tampered)
		if valid {
			t.Error("tampered content should not verify")
		}
		if !errors.Is(err, ErrHashMismatch) {
			t.Errorf("expected ErrHashMismatch, got %v", err)
		}
	})
}

func TestCalculateHash_IgnoresBlock(t *testing.T) {
	if CalculateHash(reportBody) != CalculateHash(Sign(reportBody, true, "run-123")) {
		t.Error("hash must cover only the body, not the metadata block")
	}
}
