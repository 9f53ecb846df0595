package domain

import "time"

// Recipe is a saved recipe with a normalized ingredient list. Ingredients
// are the short food tokens the recipe workflow matches against the catalog
// (for example "almond milk"), not the full measured instruction lines.
type Recipe struct {
	ID             string
	UserID         string
	Name           string
	Ingredients    []string
	Instructions   []string
	CookingTimeMin int
	Servings       int
	Diets          []string
	Allergies      []string
	CreatedAt      time.Time
}

// User is a registered account.
type User struct {
	ID           string
	FirstName    string
	Email        string
	PasswordHash string
	Allergies    []string
	CreatedAt    time.Time
}
