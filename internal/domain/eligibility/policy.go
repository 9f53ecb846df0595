package eligibility

import "strings"

// MatchPolicy decides whether a denylist or allergen needle hits an
// ingredient token. Both arguments arrive normalized (trimmed,
// lower-cased).
type MatchPolicy func(ingredient, needle string) bool

// MatchSubstring is the default policy: the needle hits when it occurs
// anywhere inside the ingredient token. This deliberately admits false
// positives ("wheat" hits "buckwheat pancakes"); swapping it out changes
// observable selection behavior, so it stays the default.
func MatchSubstring(ingredient, needle string) bool {
	return strings.Contains(ingredient, needle)
}

// MatchExactToken hits only when the needle equals one of the
// whitespace-separated words of the ingredient token, or the whole token.
func MatchExactToken(ingredient, needle string) bool {
	if ingredient == needle {
		return true
	}
	for _, word := range strings.Fields(ingredient) {
		if word == needle {
			return true
		}
	}
	return false
}
