// Package utils provides small string helpers shared across the pipeline.
package utils

import "strings"

// CollapseWhitespace replaces runs of whitespace with a single space and
// trims the ends.
func CollapseWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// Prefix returns the first n runes of str, or str itself when shorter.
// Unlike Truncate it adds no ellipsis, so the result is safe to use as a
// comparison-key component.
func Prefix(str string, n int) string {
	runes := []rune(str)
	if len(runes) <= n {
		return str
	}

	return string(runes[:n])
}

// Truncate shortens str to maxLength runes for display, appending an
// ellipsis when anything was cut.
func Truncate(str string, maxLength int) string {
	runes := []rune(str)
	if len(runes) <= maxLength {
		return str
	}

	return string(runes[:maxLength]) + "..."
}
