package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// Repo is the recipe repository.
type Repo struct {
	db *sql.DB
}

// New creates a recipe repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create stores a recipe.
func (r *Repo) Create(ctx context.Context, rec domain.Recipe) error {
	ingredients, err := json.Marshal(rec.Ingredients)
	if err != nil {
		return fmt.Errorf("marshal ingredients: %w", err)
	}
	instructions, err := json.Marshal(rec.Instructions)
	if err != nil {
		return fmt.Errorf("marshal instructions: %w", err)
	}
	diets, err := json.Marshal(rec.Diets)
	if err != nil {
		return fmt.Errorf("marshal diets: %w", err)
	}
	allergies, err := json.Marshal(rec.Allergies)
	if err != nil {
		return fmt.Errorf("marshal allergies: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO recipes (id, user_id, name, ingredients, instructions,
			cooking_time_min, servings, diets, allergies, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Name, string(ingredients), string(instructions),
		rec.CookingTimeMin, rec.Servings, string(diets), string(allergies), rec.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

// GetByID fetches a recipe. Missing maps to domain.ErrRecipeNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.Recipe, error) {
	row := r.db.QueryRowContext(ctx, selectRecipe+` WHERE id = ?`, id)
	return scanRecipe(row)
}

// FindByName returns the first recipe whose name contains the given text,
// case-insensitively. Missing maps to domain.ErrRecipeNotFound.
func (r *Repo) FindByName(ctx context.Context, name string) (domain.Recipe, error) {
	row := r.db.QueryRowContext(ctx,
		selectRecipe+` WHERE name LIKE '%' || ? || '%' COLLATE NOCASE ORDER BY created_at LIMIT 1`, name)
	return scanRecipe(row)
}

// ExistsForUser reports whether the user already saved a recipe with this
// exact name.
func (r *Repo) ExistsForUser(ctx context.Context, userID, name string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recipes WHERE user_id = ? AND name = ?`, userID, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count recipes: %w", err)
	}
	return count > 0, nil
}

// ListByUser returns the user's saved recipes, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Recipe, error) {
	rows, err := r.db.QueryContext(ctx,
		selectRecipe+` WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []domain.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

const selectRecipe = `
	SELECT id, user_id, name, ingredients, instructions,
		cooking_time_min, servings, diets, allergies, created_at
	FROM recipes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (domain.Recipe, error) {
	var rec domain.Recipe
	var ingredients, instructions, diets, allergies string
	var createdAt time.Time
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Name, &ingredients, &instructions,
		&rec.CookingTimeMin, &rec.Servings, &diets, &allergies, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Recipe{}, domain.ErrRecipeNotFound
	}
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("scan recipe: %w", err)
	}

	for _, pair := range []struct {
		raw  string
		dest *[]string
	}{
		{ingredients, &rec.Ingredients},
		{instructions, &rec.Instructions},
		{diets, &rec.Diets},
		{allergies, &rec.Allergies},
	} {
		if err := json.Unmarshal([]byte(pair.raw), pair.dest); err != nil {
			return domain.Recipe{}, fmt.Errorf("unmarshal recipe field: %w", err)
		}
	}
	rec.CreatedAt = createdAt
	return rec, nil
}
