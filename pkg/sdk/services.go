package pantry

import (
	"context"
	"time"

	"github.com/chop-n-shop/pantry/internal/domain"
	groclistuc "github.com/chop-n-shop/pantry/internal/usecase/groclist"
	recipeuc "github.com/chop-n-shop/pantry/internal/usecase/recipe"
)

// RecipeService manages one owner's recipes.
type RecipeService struct {
	owner string
	svc   *recipeuc.Service
	obs   *observer
}

// Save stores a recipe. A duplicate name for the same owner surfaces as
// ErrAlreadyExists.
func (s *RecipeService) Save(ctx context.Context, rec Recipe) (out Recipe, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recipe_save", start, err) }()

	saved, err := s.svc.Save(ctx, domain.Recipe{
		UserID:         s.owner,
		Name:           rec.Name,
		Ingredients:    rec.Ingredients,
		Instructions:   rec.Instructions,
		CookingTimeMin: rec.CookingTime,
		Servings:       rec.Servings,
		Diets:          rec.Diets,
		Allergies:      rec.Allergies,
	})
	if err != nil {
		return Recipe{}, err
	}
	return recipeFromDomain(saved), nil
}

// Saved lists the owner's recipes.
func (s *RecipeService) Saved(ctx context.Context) (out []Recipe, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recipe_saved", start, err) }()

	recipes, err := s.svc.Saved(ctx, s.owner)
	if err != nil {
		return nil, err
	}
	out = make([]Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = recipeFromDomain(r)
	}
	return out, nil
}

// Get resolves a recipe by name, case-insensitive partial match, first
// hit wins. Unknown names surface as ErrRecipeNotFound.
func (s *RecipeService) Get(ctx context.Context, name string) (out Recipe, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recipe_get", start, err) }()

	rec, err := s.svc.FindByName(ctx, name)
	if err != nil {
		return Recipe{}, err
	}
	return recipeFromDomain(rec), nil
}

// GroceryList resolves a recipe by name, runs the recipe selection
// workflow under the given constraints, and persists the result.
func (s *RecipeService) GroceryList(
	ctx context.Context, recipeName, listName string, budget float64, diet string, allergens []string,
) (out RecipeList, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recipe_list", start, err) }()

	saved, err := s.svc.GenerateGroceryList(ctx, s.owner, recipeName, listName, domain.Constraints{
		Budget:    budget,
		Diet:      domain.ParseDiet(diet),
		Allergens: allergens,
	})
	if err != nil {
		return RecipeList{}, err
	}
	return recipeListFromDomain(saved), nil
}

// ListService manages one owner's saved grocery lists.
type ListService struct {
	owner string
	svc   *groclistuc.Service
	obs   *observer
}

// List returns the owner's saved lists, newest first, optionally
// filtered by exact list name.
func (s *ListService) List(ctx context.Context, nameFilter string) (out []ListSummary, err error) {
	start := time.Now()
	defer func() { s.obs.observe("list_list", start, err) }()

	lists, err := s.svc.List(ctx, s.owner, nameFilter)
	if err != nil {
		return nil, err
	}
	out = make([]ListSummary, len(lists))
	for i, l := range lists {
		out[i] = ListSummary{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt}
	}
	return out, nil
}

// Delete removes a saved list. Absent or foreign lists surface as
// ErrListNotFound.
func (s *ListService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("list_delete", start, err) }()
	return s.svc.Delete(ctx, id, s.owner)
}

// RemoveItem removes one item from a saved list and recomputes the
// affected totals. An absent item surfaces as ErrItemNotInList.
func (s *ListService) RemoveItem(ctx context.Context, id, itemName string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("list_remove_item", start, err) }()

	_, err = s.svc.RemoveItem(ctx, id, s.owner, itemName)
	return err
}
