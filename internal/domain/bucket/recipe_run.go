package bucket

import "github.com/chop-n-shop/pantry/internal/domain"

// RecipeRun accumulates the recipe workflow's flat pick list across all
// stores with a single global running total. It also records the
// transient over-budget amount: when an otherwise-eligible candidate
// would exceed the ceiling, the overshoot is noted and that ingredient's
// search stops, but the run keeps going for later ingredients.
type RecipeRun struct {
	picks     []domain.RecipePick
	total     float64
	overshoot float64
	overshot  bool
}

// NewRecipeRun creates an empty recipe accumulation.
func NewRecipeRun() *RecipeRun {
	return &RecipeRun{}
}

// Fits reports whether an item at the given price keeps the global total
// at or under the ceiling.
func (r *RecipeRun) Fits(price, ceiling float64) bool {
	return r.total+price <= ceiling
}

// Add accepts an item for an ingredient. Callers check Fits first.
func (r *RecipeRun) Add(ingredient string, item domain.CatalogItem) {
	r.picks = append(r.picks, domain.RecipePick{
		Ingredient: ingredient,
		ItemName:   item.Name,
		Price:      domain.Round2(item.Price),
		Store:      item.Store,
	})
	r.total = domain.Round2(r.total + item.Price)
}

// NoteOvershoot records the transient over-budget amount for a candidate
// that was eligible but unaffordable. The first such candidate terminates
// the search for its ingredient.
func (r *RecipeRun) NoteOvershoot(price, ceiling float64) {
	r.overshoot = domain.Round2(r.total + price - ceiling)
	r.overshot = true
}

// Total returns the global running total.
func (r *RecipeRun) Total() float64 { return r.total }

// Overshoot returns the last transient over-budget amount recorded during
// the search, zero if every considered candidate fit.
func (r *RecipeRun) Overshoot() float64 { return r.overshoot }

// Result reports the final list. The reported over-budget is recomputed
// from the final total: `total − ceiling` when positive, else zero. The
// transient overshoot only marks that a recompute is due; it is never
// reported directly.
func (r *RecipeRun) Result(ceiling float64) domain.RecipeList {
	over := 0.0
	if r.overshot {
		if v := domain.Round2(r.total - ceiling); v > 0 {
			over = v
		}
	}
	return domain.RecipeList{
		Picks:      r.picks,
		TotalCost:  domain.Round2(r.total),
		OverBudget: over,
	}
}
