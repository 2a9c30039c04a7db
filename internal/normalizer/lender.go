package normalizer

import (
	"regexp"
	"strings"
	"time"

	"github.com/EnriqueColon/Collector-dashboard/pkg/utils"
)

// lenderPunct matches the punctuation stripped from lender names before
// any other processing. Hyphens are retained.
var lenderPunct = regexp.MustCompile(`[.,;:!?'"()]`)

// usVariant collapses the spellings of the United States once punctuation
// has been removed ("u.s." arrives here as "us").
var usVariant = regexp.MustCompile(`\bus\b|\bunited states\b`)

// lenderAbbreviations expands whole-word corporate, financial, and generic
// abbreviations. Applied in order.
var lenderAbbreviations = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	// Corporate suffixes.
	{regexp.MustCompile(`\binc\b`), "incorporated"},
	{regexp.MustCompile(`\bllc\b`), "limited liability company"},
	{regexp.MustCompile(`\bllp\b`), "limited liability partnership"},
	{regexp.MustCompile(`\blp\b`), "limited partnership"},
	{regexp.MustCompile(`\bltd\b`), "limited"},
	{regexp.MustCompile(`\bcorp\b`), "corporation"},
	{regexp.MustCompile(`\bco\b`), "company"},
	// Financial institutions.
	{regexp.MustCompile(`\bna\b`), "national association"},
	{regexp.MustCompile(`\bfsa\b`), "federal savings association"},
	{regexp.MustCompile(`\bfcu\b`), "federal credit union"},
	{regexp.MustCompile(`\bcu\b`), "credit union"},
	{regexp.MustCompile(`\bfcb\b`), "federal credit bank"},
	// Generic business terms.
	{regexp.MustCompile(`&`), " and "},
	{regexp.MustCompile(`\bamp\b`), "and"},
	{regexp.MustCompile(`\bmtg\b`), "mortgage"},
	{regexp.MustCompile(`\bsvcs\b`), "services"},
	{regexp.MustCompile(`\bsvc\b`), "service"},
	{regexp.MustCompile(`\bmgmt\b`), "management"},
	{regexp.MustCompile(`\bfin\b`), "financial"},
	{regexp.MustCompile(`\bfnd\b`), "fund"},
	{regexp.MustCompile(`\bgrp\b`), "group"},
}

// lenderSingulars maps known plural forms back to the singular so "Banks"
// and "Bank" group together.
var lenderSingulars = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`\bbanks\b`), "bank"},
	{regexp.MustCompile(`\bmortgages\b`), "mortgage"},
	{regexp.MustCompile(`\bservices\b`), "service"},
	{regexp.MustCompile(`\bgroups\b`), "group"},
	{regexp.MustCompile(`\bcompanies\b`), "company"},
	{regexp.MustCompile(`\bcorporations\b`), "corporation"},
	{regexp.MustCompile(`\bassociations\b`), "association"},
	{regexp.MustCompile(`\bunions\b`), "union"},
	{regexp.MustCompile(`\bfunds\b`), "fund"},
	{regexp.MustCompile(`\btrusts\b`), "trust"},
}

var financeVariant = regexp.MustCompile(`\bfinance\b`)

// corporateDesignators are the expanded company-type suffixes stripped from
// the end of a name once abbreviations have been applied, longest first.
// "Abc Mortgage Company Incorporated" and "Abc Mortgage Company" must land
// on the same key. The bare word "company" is never stripped.
var corporateDesignators = []string{
	"limited liability partnership",
	"limited liability company",
	"limited partnership",
	"incorporated",
	"corporation",
	"limited",
}

// lenderOverride is one hardcoded consolidation rule: when the matcher hits
// the pre-title-case name, the literal canonical name is returned
// immediately, bypassing title casing. The list is ordered; first match
// wins. Generic rules under- or over-merge these specific institutions, so
// the table is maintained by hand as entities show up in the feed.
type lenderOverride struct {
	name      string
	matcher   *regexp.Regexp
	canonical string
}

var lenderOverrides = []lenderOverride{
	{"wilmington", regexp.MustCompile(`^wilmington`), "Wilmington Savings Fund Society"},
	{"jpmorgan", regexp.MustCompile(`^j\s?p\s?morgan`), "JPMorgan Chase Bank"},
	{"wells-fargo", regexp.MustCompile(`^wells\s*fargo`), "Wells Fargo Bank"},
	{"computershare", regexp.MustCompile(`^computershare trust company national`), "Computer Trust Company"},
	{"lincoln-street", regexp.MustCompile(`^lincoln street`), "Lincoln Street"},
	{"american-general", regexp.MustCompile(`^american general life insurance`), "American General Life"},
	{"ef-mortgage", regexp.MustCompile(`\bef mortgage\b`), "EF Mortgage"},
	{"tryon-street", regexp.MustCompile(`^t(?:ry|yr)on street`), "Tryon Street"},
	{"sig-rcrs", regexp.MustCompile(`\bsig rcrs\b`), "SIG RCRS"},
	{"sig-cre", regexp.MustCompile(`\bsig cre\b`), "Sig Cre"},
}

// lenderStopwords stay lowercase during title casing unless they lead the
// name.
var lenderStopwords = map[string]bool{
	"the": true, "of": true, "and": true, "a": true, "an": true,
	"in": true, "on": true, "at": true, "to": true, "for": true,
}

// Lender maps a free-text lender or plaintiff name to its canonical
// display form. Missing, empty, date-typed, or otherwise non-string input
// normalizes to "Unknown".
func Lender(input any) string {
	if _, isDate := input.(time.Time); isDate {
		return UnknownName
	}

	raw, ok := stringInput(input)
	if !ok {
		return UnknownName
	}

	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return UnknownName
	}

	name = lenderPunct.ReplaceAllString(name, "")
	name = usVariant.ReplaceAllString(name, "united states")

	for _, abbr := range lenderAbbreviations {
		name = abbr.pattern.ReplaceAllString(name, abbr.repl)
	}

	for _, sing := range lenderSingulars {
		name = sing.pattern.ReplaceAllString(name, sing.repl)
	}

	name = financeVariant.ReplaceAllString(name, "financial")
	name = strings.TrimPrefix(name, "the ")
	name = stripTrailingDesignator(name)
	name = utils.CollapseWhitespace(name)

	if name == "" {
		return UnknownName
	}

	for _, override := range lenderOverrides {
		if override.matcher.MatchString(name) {
			return override.canonical
		}
	}

	return titleCaseLender(name)
}

// stripTrailingDesignator removes one trailing corporate designator when a
// non-empty name remains, so suffix-only spelling differences collapse.
func stripTrailingDesignator(name string) string {
	name = utils.CollapseWhitespace(name)

	for _, designator := range corporateDesignators {
		if !strings.HasSuffix(name, " "+designator) {
			continue
		}

		stripped := strings.TrimSpace(strings.TrimSuffix(name, designator))
		if stripped != "" {
			return stripped
		}
	}

	return name
}

// titleCaseLender capitalizes each word, leaving function words lowercase
// except in the leading position.
func titleCaseLender(name string) string {
	words := strings.Fields(name)

	for i, word := range words {
		if i > 0 && lenderStopwords[word] {
			continue
		}

		words[i] = capitalize(word)
	}

	return strings.Join(words, " ")
}
