package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chop-n-shop/pantry/internal/domain"
)

type saveRecipeRequest struct {
	RecipeName         string   `json:"recipe_name"`
	Ingredients        []string `json:"ingredients"`
	Instructions       []string `json:"instructions"`
	CookingTime        int      `json:"cooking_time"`
	Servings           int      `json:"servings"`
	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
}

type recipeResponse struct {
	RecipeID           string    `json:"recipe_id"`
	Name               string    `json:"name"`
	Ingredients        []string  `json:"ingredients"`
	Instructions       []string  `json:"instructions"`
	CookingTime        int       `json:"cooking_time"`
	Servings           int       `json:"servings"`
	DietaryPreferences []string  `json:"dietary_preferences"`
	Allergies          []string  `json:"allergies"`
	CreatedAt          time.Time `json:"created_at"`
}

func recipeToResponse(rec domain.Recipe) recipeResponse {
	return recipeResponse{
		RecipeID:           rec.ID,
		Name:               rec.Name,
		Ingredients:        rec.Ingredients,
		Instructions:       rec.Instructions,
		CookingTime:        rec.CookingTimeMin,
		Servings:           rec.Servings,
		DietaryPreferences: rec.Diets,
		Allergies:          rec.Allergies,
		CreatedAt:          rec.CreatedAt,
	}
}

// handleSaveRecipe handles POST /recipes.
func (s *Server) handleSaveRecipe(w http.ResponseWriter, r *http.Request) {
	var req saveRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.RecipeName) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "recipe name is required")
		return
	}

	rec, err := s.recipes.Save(r.Context(), domain.Recipe{
		UserID:         UserIDFromContext(r.Context()),
		Name:           req.RecipeName,
		Ingredients:    req.Ingredients,
		Instructions:   req.Instructions,
		CookingTimeMin: req.CookingTime,
		Servings:       req.Servings,
		Diets:          req.DietaryPreferences,
		Allergies:      req.Allergies,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":   "Recipe saved successfully",
		"recipe_id": rec.ID,
	})
}

// handleSavedRecipes handles GET /recipes/saved.
func (s *Server) handleSavedRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.recipes.Saved(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out := make([]recipeResponse, len(recipes))
	for i, rec := range recipes {
		out[i] = recipeToResponse(rec)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"recipes":     out,
		"total_count": len(out),
	})
}

// handleGetRecipeByName handles GET /recipes/{name}. Matching is
// case-insensitive and partial; the first hit wins.
func (s *Server) handleGetRecipeByName(w http.ResponseWriter, r *http.Request) {
	rec, err := s.recipes.FindByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipeToResponse(rec))
}

type recipeListRequest struct {
	RecipeName      string `json:"recipe_name"`
	ListName        string `json:"list_name"`
	UserPreferences struct {
		Budget             float64  `json:"Budget"`
		DietaryPreferences string   `json:"Dietary_preferences"`
		Allergies          []string `json:"Allergies"`
	} `json:"user_preferences"`
}

type recipeListResponse struct {
	ListID      string              `json:"list_id"`
	RecipeID    string              `json:"recipe_id"`
	RecipeName  string              `json:"recipe_name"`
	GroceryList []domain.RecipePick `json:"grocery_list"`
	TotalCost   float64             `json:"total_cost"`
	OverBudget  float64             `json:"over_budget"`
}

// handleRecipeGroceryList handles POST /recipes/grocery-list.
func (s *Server) handleRecipeGroceryList(w http.ResponseWriter, r *http.Request) {
	var req recipeListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.RecipeName) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "recipe name is required")
		return
	}

	saved, err := s.recipes.GenerateGroceryList(
		r.Context(),
		UserIDFromContext(r.Context()),
		req.RecipeName,
		req.ListName,
		domain.Constraints{
			Budget:    req.UserPreferences.Budget,
			Diet:      domain.ParseDiet(req.UserPreferences.DietaryPreferences),
			Allergens: req.UserPreferences.Allergies,
		},
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	picks := saved.Payload.Picks
	if picks == nil {
		picks = []domain.RecipePick{}
	}
	writeJSON(w, http.StatusOK, recipeListResponse{
		ListID:      saved.ID,
		RecipeID:    saved.Payload.RecipeID,
		RecipeName:  saved.Payload.RecipeName,
		GroceryList: picks,
		TotalCost:   saved.Payload.TotalCost,
		OverBudget:  saved.Payload.OverBudget,
	})
}
