package quality

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
)

// jsonNameHints mark a field as JSON-shaped by name alone, matched
// case-insensitively as substrings.
var jsonNameHints = []string{
	"json", "metadata", "data", "details", "info", "extra", "additional",
}

// jsonShapedValue matches string values that look like serialized JSON.
var jsonShapedValue = regexp.MustCompile(`^\s*[\[{"]`)

// errorContextRadius is half the window of original text quoted alongside a
// parser error that reports a character position.
const errorContextRadius = 20

// checkJSONFields scans every field of the row for JSON candidates and
// validates each one, attempting a single repair pass before reporting an
// error. Fields are visited in sorted name order so repeated runs produce
// identical issue lists.
func (v *Validator) checkJSONFields(record *models.ProcessedRecord) {
	names := make([]string, 0, len(record.Raw))
	for name := range record.Raw {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		value := record.Raw[name]
		if !isJSONCandidate(name, value) {
			continue
		}

		v.checkJSONField(record, name, value)
	}
}

// isJSONCandidate reports whether the field should be treated as embedded
// JSON: either its name hints at structured content, or its string value
// starts like a JSON document.
func isJSONCandidate(name string, value any) bool {
	lower := strings.ToLower(name)
	for _, hint := range jsonNameHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}

	if s, ok := value.(string); ok {
		return jsonShapedValue.MatchString(s)
	}

	return false
}

func (v *Validator) checkJSONField(record *models.ProcessedRecord, name string, value any) {
	if value == nil {
		return
	}

	text, isString := value.(string)
	if !isString {
		// Already-decoded objects and arrays are valid as-is.
		return
	}

	if text == "" {
		return
	}

	originalErr := json.Unmarshal([]byte(text), new(any))
	if originalErr == nil {
		return
	}

	if repaired, ok := repairJSONText(text); ok {
		if json.Unmarshal([]byte(repaired), new(any)) == nil {
			record.Warnings = append(record.Warnings,
				fmt.Sprintf("JSON in %q was malformed but auto-fixed", name))

			return
		}
	}

	message := fmt.Sprintf("Invalid JSON in %q: %v", name, originalErr)
	if context := syntaxErrorContext(originalErr, text); context != "" {
		message += fmt.Sprintf(" (near %q)", context)
	}

	record.Errors = append(record.Errors, message)
}

// repairJSONText makes one deliberately narrow repair attempt: unmatched
// braces and brackets are balanced with trailing closers, and bare
// "key: value" content gains wrapping braces. Unterminated strings are not
// fixed; those stay errors.
func repairJSONText(text string) (string, bool) {
	repaired := balanceBrackets(text)

	trimmed := strings.TrimSpace(repaired)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") &&
		strings.Contains(trimmed, ":") {
		repaired = "{" + repaired + "}"
	}

	if repaired == text {
		return "", false
	}

	return repaired, true
}

// balanceBrackets appends the closers for any unmatched { or [ in opening
// order, newest first.
func balanceBrackets(text string) string {
	var open []rune

	for _, r := range text {
		switch r {
		case '{', '[':
			open = append(open, r)
		case '}':
			if len(open) > 0 && open[len(open)-1] == '{' {
				open = open[:len(open)-1]
			}
		case ']':
			if len(open) > 0 && open[len(open)-1] == '[' {
				open = open[:len(open)-1]
			}
		}
	}

	var closers strings.Builder

	for i := len(open) - 1; i >= 0; i-- {
		if open[i] == '{' {
			closers.WriteRune('}')
		} else {
			closers.WriteRune(']')
		}
	}

	return text + closers.String()
}

// syntaxErrorContext extracts a window of the original text centered on the
// byte offset reported by the JSON parser, when one is available.
func syntaxErrorContext(err error, text string) string {
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return ""
	}

	offset := int(syntaxErr.Offset)

	start := offset - errorContextRadius
	if start < 0 {
		start = 0
	}

	end := offset + errorContextRadius
	if end > len(text) {
		end = len(text)
	}

	return text[start:end]
}
