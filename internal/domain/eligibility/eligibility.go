// Package eligibility decides whether a catalog item satisfies a user's
// dietary and allergen constraints. It is pure rule evaluation: no
// retrieval, no persistence, no side effects. Price and calories are
// never considered here.
package eligibility

import (
	"strings"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// Filter evaluates items against diet denylists and allergen tokens under
// one MatchPolicy. The zero value is not usable; construct with New.
type Filter struct {
	policy MatchPolicy
}

// New creates a filter with the given match policy.
func New(policy MatchPolicy) *Filter {
	return &Filter{policy: policy}
}

// NewDefault creates a filter with the substring policy.
func NewDefault() *Filter {
	return New(MatchSubstring)
}

// Admissible reports whether the item passes both the dietary denylist and
// the allergen check. Deterministic for a given (item, constraints) pair.
func (f *Filter) Admissible(item domain.CatalogItem, diet domain.Diet, allergens []string) bool {
	ingredients := NormalizeTokens(item.Ingredients)

	for _, needle := range Denylist(diet) {
		for _, ing := range ingredients {
			if f.policy(ing, needle) {
				return false
			}
		}
	}

	for _, allergen := range allergens {
		needle := strings.ToLower(strings.TrimSpace(allergen))
		if needle == "" {
			continue
		}
		for _, ing := range ingredients {
			if f.policy(ing, needle) {
				return false
			}
		}
	}

	return true
}

// NormalizeTokens trims surrounding whitespace and lower-cases each
// ingredient token.
func NormalizeTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = strings.ToLower(strings.TrimSpace(t))
	}
	return out
}
