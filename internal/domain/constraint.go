package domain

import "strings"

// Diet is a recognized dietary preference tag.
type Diet string

// Recognized dietary preferences. Anything else behaves like DietNone.
const (
	DietVegan       Diet = "vegan"
	DietVegetarian  Diet = "vegetarian"
	DietGlutenFree  Diet = "gluten-free"
	DietLactoseFree Diet = "lactose-free"
	DietPescetarian Diet = "pescetarian"
	DietNone        Diet = "none"
)

// ParseDiet normalizes a free-form preference string to a Diet tag.
// Unrecognized input maps to DietNone (no dietary restriction).
func ParseDiet(s string) Diet {
	switch Diet(strings.ToLower(strings.TrimSpace(s))) {
	case DietVegan:
		return DietVegan
	case DietVegetarian:
		return DietVegetarian
	case DietGlutenFree:
		return DietGlutenFree
	case DietLactoseFree:
		return DietLactoseFree
	case DietPescetarian:
		return DietPescetarian
	default:
		return DietNone
	}
}

// Constraints is the per-request value object carrying the budget ceiling,
// at most one dietary preference, and free-text allergen tokens. Supplied
// per selection run, never persisted by the core.
type Constraints struct {
	Budget    float64
	Diet      Diet
	Allergens []string
}
