package inventory

import "strings"

const (
	ExactScore    = 1.0
	ContainsScore = 0.8
	NoMatchScore  = 0.0

	DefaultAcceptanceThreshold = 0.6
)

// Normalize case-folds s, trims it and collapses inner whitespace runs.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Score rates how well a and b name the same thing.
// Exact matches always outrank containment, which outranks everything else.
func Score(a, b string) float64 {
	a, b = Normalize(a), Normalize(b)
	if a == "" || b == "" {
		return NoMatchScore
	}
	if a == b {
		return ExactScore
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return ContainsScore
	}
	return NoMatchScore
}

// itemScore is the best score of query against the item's name and aliases.
func itemScore(it Item, query string) float64 {
	best := Score(it.Name, query)
	for _, alias := range it.Aliases {
		if s := Score(alias, query); s > best {
			best = s
		}
	}
	return best
}
