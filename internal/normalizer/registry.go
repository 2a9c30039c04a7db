package normalizer

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrEmptyCanonical is returned when a rule would rewrite a name to nothing.
var ErrEmptyCanonical = errors.New("rule canonical name must not be empty")

// Rule is one post-processing consolidation rule: when the pattern matches
// the normalized name (case-insensitively), the literal canonical name is
// substituted. Rules let deployments fold configuration-specific entity
// variants together without forking the base normalizer.
type Rule struct {
	Name      string
	Pattern   *regexp.Regexp
	Canonical string
}

// NewRule compiles a case-insensitive rule from a pattern string.
func NewRule(name, pattern, canonical string) (Rule, error) {
	if canonical == "" {
		return Rule{}, fmt.Errorf("%w: rule %q", ErrEmptyCanonical, name)
	}

	re, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q has invalid pattern: %w", name, err)
	}

	return Rule{Name: name, Pattern: re, Canonical: canonical}, nil
}

// Registry holds ordered post-processing rules for county and lender
// normalization. The zero value is unusable; construct with NewRegistry.
type Registry struct {
	countyRules []Rule
	lenderRules []Rule
}

// NewRegistry creates a registry with no extra rules. County and Lender
// then behave exactly like the package-level functions.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddCountyRule appends a county post-processing rule.
func (g *Registry) AddCountyRule(rule Rule) {
	g.countyRules = append(g.countyRules, rule)
}

// AddLenderRule appends a lender post-processing rule.
func (g *Registry) AddLenderRule(rule Rule) {
	g.lenderRules = append(g.lenderRules, rule)
}

// County runs the base county normalization, then each registered rule in
// registration order.
func (g *Registry) County(input any) string {
	return applyRules(County(input), g.countyRules)
}

// Lender runs the base lender normalization, then each registered rule in
// registration order.
func (g *Registry) Lender(input any) string {
	return applyRules(Lender(input), g.lenderRules)
}

func applyRules(name string, rules []Rule) string {
	for _, rule := range rules {
		if rule.Pattern.MatchString(name) {
			name = rule.Canonical
		}
	}

	return name
}
