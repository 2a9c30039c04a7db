// Package metadata signs generated report files with a verifiable
// metadata block: a run ID, generation timestamp, and a SHA-256 hash of
// the report body.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// TagStart opens the metadata block.
	TagStart = "<!-- REPORT_METADATA_START"
	// TagEnd closes the metadata block.
	TagEnd = "REPORT_METADATA_END -->"
)

// Verification errors.
var (
	ErrNoMetadataBlock = errors.New("no metadata block found")
	ErrNoHashFound     = errors.New("no hash found in metadata")
	ErrHashMismatch    = errors.New("hash mismatch")
)

// Metadata describes one generated report.
type Metadata struct {
	RunID       string
	GeneratedAt time.Time
	Hash        string
	// Clean is true when the run produced no data-quality issues.
	Clean bool
}

var blockRegex = regexp.MustCompile(`(?s)<!--\s*REPORT_METADATA_START\s*\n(.*?)\n\s*REPORT_METADATA_END\s*-->`)

// Extract removes the metadata block from content, returning the parsed
// block (nil when absent) and the clean body that hashing runs over.
func Extract(content string) (*Metadata, string) {
	match := blockRegex.FindStringSubmatch(content)
	clean := strings.TrimRight(blockRegex.ReplaceAllString(content, ""), "\n")

	if len(match) < 2 {
		return nil, clean
	}

	meta := &Metadata{}

	for _, line := range strings.Split(match[1], "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		switch key {
		case "RUN_ID":
			meta.RunID = val
		case "GENERATED_AT":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.GeneratedAt = t
			}
		case "HASH":
			meta.Hash = val
		case "CLEAN":
			meta.Clean = strings.EqualFold(val, "TRUE")
		}
	}

	return meta, clean
}

// CalculateHash computes the SHA-256 hash of the report body, metadata
// block excluded.
func CalculateHash(content string) string {
	_, clean := Extract(content)
	hash := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(hash[:])
}

// Sign appends or replaces the metadata block with a fresh hash and
// timestamp. An empty runID gets a new UUID.
func Sign(content string, clean bool, runID string) string {
	_, body := Extract(content)

	if runID == "" {
		runID = uuid.NewString()
	}

	cleanStr := "FALSE"
	if clean {
		cleanStr = "TRUE"
	}

	block := fmt.Sprintf("\n\n%s\nRUN_ID: %s\nGENERATED_AT: %s\nHASH: %s\nCLEAN: %s\n%s",
		TagStart,
		runID,
		time.Now().UTC().Format(time.RFC3339),
		CalculateHash(body),
		cleanStr,
		TagEnd)

	return body + block
}

// Verify checks that the content matches the hash recorded in its
// metadata block.
func Verify(content string) (bool, error) {
	meta, clean := Extract(content)
	if meta == nil {
		return false, ErrNoMetadataBlock
	}

	if meta.Hash == "" {
		return false, ErrNoHashFound
	}

	calculated := CalculateHash(clean)
	if calculated != meta.Hash {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return true, nil
}
