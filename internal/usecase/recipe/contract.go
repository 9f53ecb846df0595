package recipe

import (
	"context"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// Repository defines the storage contract for recipes.
type Repository interface {
	Create(ctx context.Context, rec domain.Recipe) error
	FindByName(ctx context.Context, name string) (domain.Recipe, error)
	ExistsForUser(ctx context.Context, userID, name string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Recipe, error)
}

// ListGenerator runs the recipe selection workflow.
type ListGenerator interface {
	GenerateFromRecipe(ctx context.Context, recipeID string, c domain.Constraints) (domain.Recipe, domain.RecipeList, error)
}

// ListWriter persists a generated recipe grocery list.
type ListWriter interface {
	Insert(ctx context.Context, list domain.SavedList) error
}
