package domain

import "time"

// ListEntry is one accepted item in a per-store grocery list.
type ListEntry struct {
	Name  string  `json:"item_name"`
	Price float64 `json:"price"`
}

// StoreResult is the per-store outcome of a multi-item selection run.
// Message is set instead of Items when the requested store produced no
// data, so an unknown store preference is an explanatory result rather
// than an error.
type StoreResult struct {
	Items     []ListEntry `json:"items,omitempty"`
	TotalCost float64     `json:"total_cost"`
	Message   string      `json:"message,omitempty"`
}

// RecipePick is one resolved ingredient in a recipe-driven grocery list.
type RecipePick struct {
	Ingredient string  `json:"ingredient"`
	ItemName   string  `json:"item_name"`
	Price      float64 `json:"price"`
	Store      string  `json:"store"`
}

// RecipeList is the flat result of the recipe workflow: one pick per
// resolved ingredient, a global total, and the over-budget amount (zero
// when the final total is within the ceiling).
type RecipeList struct {
	Picks      []RecipePick `json:"grocery_list"`
	TotalCost  float64      `json:"total_cost"`
	OverBudget float64      `json:"over_budget"`
}

// ListPayload is the persisted body of a saved grocery list. Multi-item
// runs fill Stores; recipe runs fill the recipe fields. Exactly one shape
// is present per saved list.
type ListPayload struct {
	Stores map[string]StoreResult `json:"stores,omitempty"`

	RecipeID   string       `json:"recipe_id,omitempty"`
	RecipeName string       `json:"recipe_name,omitempty"`
	Picks      []RecipePick `json:"grocery_list,omitempty"`
	TotalCost  float64      `json:"total_cost,omitempty"`
	OverBudget float64      `json:"over_budget,omitempty"`
}

// SavedList is a durably stored grocery list owned by a user.
type SavedList struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
	Payload   ListPayload
}
