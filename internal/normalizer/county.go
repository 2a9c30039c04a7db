// Package normalizer canonicalizes free-text county and lender names so
// that textual variants of the same entity group together, and maps
// normalized counties onto the fixed region set.
package normalizer

import (
	"regexp"
	"strings"

	"github.com/EnriqueColon/Collector-dashboard/pkg/utils"
)

// UnknownName is the canonical value for a missing or unusable name.
const UnknownName = "Unknown"

// Trailing state qualifiers stripped from county names, e.g. "Kings, NY"
// or "Broward, Florida". The list covers the states the complaint feed
// actually produces.
var countyStateSuffix = regexp.MustCompile(
	`,\s*(florida|fl|new york|ny|new jersey|nj|connecticut|ct|pennsylvania|pa|georgia|ga)$`)

var (
	countySuffix = regexp.MustCompile(`\s+county$`)
	bareDade     = regexp.MustCompile(`^dade$`)
	miamiDade    = regexp.MustCompile(`^miami[\s-]?dade(\s+county)?$`)
	// Space-separated Miami Dade survives hyphen-aware title casing when the
	// input never contained a hyphen; force the canonical spelling last.
	miamiDadeFixup = regexp.MustCompile(`(?i)\bmiami dade\b`)
)

// Whole-word abbreviation fixes applied to county names, in order. Phrases
// run before single tokens so "new york city" never half-matches.
var countyAbbreviations = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`\bnew york city\b`), "new york"},
	{regexp.MustCompile(`\bnyc\b`), "new york"},
	{regexp.MustCompile(`\bny\b`), "new york"},
	{regexp.MustCompile(`\bst\b\.?`), "saint"},
	{regexp.MustCompile(`\bft\b\.?`), "fort"},
}

// County maps a free-text county value to its canonical display form.
// Missing, empty, or non-string input normalizes to "Unknown".
func County(input any) string {
	raw, ok := stringInput(input)
	if !ok {
		return UnknownName
	}

	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return UnknownName
	}

	name = countyStateSuffix.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	name = countySuffix.ReplaceAllString(name, "")

	name = bareDade.ReplaceAllString(name, "miami-dade")
	name = miamiDade.ReplaceAllString(name, "miami-dade")

	for _, abbr := range countyAbbreviations {
		name = abbr.pattern.ReplaceAllString(name, abbr.repl)
	}

	name = utils.CollapseWhitespace(name)
	if name == "" {
		return UnknownName
	}

	name = titleCaseCounty(name)

	return miamiDadeFixup.ReplaceAllString(name, "Miami-Dade")
}

// titleCaseCounty capitalizes every word. Words split on spaces and
// hyphens, but the join separator follows the input: hyphenated names stay
// hyphenated ("Miami-Dade"), spaced names stay spaced ("New York").
func titleCaseCounty(name string) string {
	separator := " "
	if strings.Contains(name, "-") {
		separator = "-"
	}

	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '-'
	})

	for i, word := range words {
		words[i] = capitalize(word)
	}

	return strings.Join(words, separator)
}

// capitalize upper-cases the first rune of a word.
func capitalize(word string) string {
	if word == "" {
		return word
	}

	runes := []rune(word)

	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

// stringInput accepts only genuine string values. Dates, numbers, and nils
// coming out of the loosely-typed feed never normalize into a name.
func stringInput(input any) (string, bool) {
	s, ok := input.(string)

	return s, ok
}
