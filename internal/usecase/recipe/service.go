// Package recipe manages saved recipes and the recipe-to-grocery-list
// workflow.
package recipe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// Service handles recipe persistence and list generation.
type Service struct {
	repo      Repository
	generator ListGenerator
	lists     ListWriter
}

// New creates a recipe service.
func New(repo Repository, generator ListGenerator, lists ListWriter) *Service {
	return &Service{repo: repo, generator: generator, lists: lists}
}

// Save stores a recipe for a user. One name per user: a duplicate
// surfaces as domain.ErrAlreadyExists.
func (s *Service) Save(ctx context.Context, rec domain.Recipe) (domain.Recipe, error) {
	rec.Name = strings.TrimSpace(rec.Name)

	exists, err := s.repo.ExistsForUser(ctx, rec.UserID, rec.Name)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("check recipe: %w", err)
	}
	if exists {
		return domain.Recipe{}, fmt.Errorf("recipe %q: %w", rec.Name, domain.ErrAlreadyExists)
	}

	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()
	if err := s.repo.Create(ctx, rec); err != nil {
		return domain.Recipe{}, fmt.Errorf("create recipe: %w", err)
	}
	return rec, nil
}

// Saved returns all recipes stored by a user.
func (s *Service) Saved(ctx context.Context, userID string) ([]domain.Recipe, error) {
	recipes, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// FindByName returns the first recipe matching the name,
// case-insensitive partial match. Missing maps to
// domain.ErrRecipeNotFound.
func (s *Service) FindByName(ctx context.Context, name string) (domain.Recipe, error) {
	rec, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("find recipe: %w", err)
	}
	return rec, nil
}

// GenerateGroceryList resolves a recipe by name, runs the recipe
// selection workflow under the user's constraints, and persists the
// resulting list. An unknown recipe surfaces as domain.ErrRecipeNotFound.
func (s *Service) GenerateGroceryList(
	ctx context.Context, userID, recipeName, listName string, c domain.Constraints,
) (domain.SavedList, error) {
	rec, err := s.repo.FindByName(ctx, recipeName)
	if err != nil {
		return domain.SavedList{}, fmt.Errorf("find recipe: %w", err)
	}

	rec, list, err := s.generator.GenerateFromRecipe(ctx, rec.ID, c)
	if err != nil {
		return domain.SavedList{}, fmt.Errorf("generate list: %w", err)
	}

	if listName == "" {
		listName = fmt.Sprintf("Recipe List for %s", rec.Name)
	}

	saved := domain.SavedList{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      listName,
		CreatedAt: time.Now().UTC(),
		Payload: domain.ListPayload{
			RecipeID:   rec.ID,
			RecipeName: rec.Name,
			Picks:      list.Picks,
			TotalCost:  list.TotalCost,
			OverBudget: list.OverBudget,
		},
	}
	if err := s.lists.Insert(ctx, saved); err != nil {
		return domain.SavedList{}, fmt.Errorf("save grocery list: %w", err)
	}
	return saved, nil
}
