package httpapi

import (
	"net/http"
	"testing"

	"github.com/chop-n-shop/pantry/internal/domain"
)

func TestSaveRecipe(t *testing.T) {
	env := newTestEnv()
	h := env.router("u1")

	rr := postJSON(t, h, "/recipes",
		`{"recipe_name":"Banana Smoothie","ingredients":["bananas","milk"],"instructions":["blend"],"cooking_time":5,"servings":2}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var resp map[string]string
	decodeBody(t, rr, &resp)
	if resp["message"] != "Recipe saved successfully" {
		t.Errorf("message: got %q", resp["message"])
	}
	if resp["recipe_id"] == "" {
		t.Error("expected a generated recipe ID")
	}

	if len(env.recipes.recipes) != 1 {
		t.Fatalf("persisted recipes: got %d, want 1", len(env.recipes.recipes))
	}
	if got := env.recipes.recipes[0].UserID; got != "u1" {
		t.Errorf("owner: got %q, want %q", got, "u1")
	}
}

func TestSaveRecipe_Duplicate(t *testing.T) {
	env := newTestEnv()
	h := env.router("u1")

	body := `{"recipe_name":"Banana Smoothie","ingredients":["bananas"]}`
	if rr := postJSON(t, h, "/recipes", body); rr.Code != http.StatusCreated {
		t.Fatalf("first save: got %d", rr.Code)
	}

	rr := postJSON(t, h, "/recipes", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("duplicate save: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	var errResp errorResponse
	decodeBody(t, rr, &errResp)
	if errResp.Code != codeAlreadyExists {
		t.Errorf("error code: got %q, want %q", errResp.Code, codeAlreadyExists)
	}
}

func TestSaveRecipe_MissingName(t *testing.T) {
	env := newTestEnv()
	h := env.router("u1")

	rr := postJSON(t, h, "/recipes", `{"ingredients":["bananas"]}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSavedRecipes(t *testing.T) {
	env := newTestEnv()
	h := env.router("u1")

	postJSON(t, h, "/recipes", `{"recipe_name":"Banana Smoothie","ingredients":["bananas"]}`)
	postJSON(t, h, "/recipes", `{"recipe_name":"Oatmeal","ingredients":["milk"]}`)
	env.recipes.recipes = append(env.recipes.recipes, domain.Recipe{
		ID: "r-foreign", UserID: "u2", Name: "Someone Else's Pie",
	})

	rr := getJSON(t, h, "/recipes/saved")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}

	var resp struct {
		Recipes    []recipeResponse `json:"recipes"`
		TotalCount int              `json:"total_count"`
	}
	decodeBody(t, rr, &resp)
	if resp.TotalCount != 2 {
		t.Errorf("total_count: got %d, want 2 owned recipes", resp.TotalCount)
	}
	for _, rec := range resp.Recipes {
		if rec.Name == "Someone Else's Pie" {
			t.Error("foreign recipe leaked into saved list")
		}
	}
}

func TestGetRecipeByName(t *testing.T) {
	env := newTestEnv()
	h := env.router("u1")

	postJSON(t, h, "/recipes",
		`{"recipe_name":"Banana Smoothie","ingredients":["bananas","milk"],"cooking_time":5,"servings":2}`)

	rr := getJSON(t, h, "/recipes/banana")
	if rr.Code != http.StatusOK {
		t.Fatalf("partial match: got %d (%s)", rr.Code, rr.Body.String())
	}

	var resp recipeResponse
	decodeBody(t, rr, &resp)
	if resp.Name != "Banana Smoothie" {
		t.Errorf("name: got %q", resp.Name)
	}
	if resp.CookingTime != 5 || resp.Servings != 2 {
		t.Errorf("details: got %+v", resp)
	}
}

func TestGetRecipeByName_Unknown(t *testing.T) {
	env := newTestEnv()
	h := env.router("u1")

	rr := getJSON(t, h, "/recipes/lasagna")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}

	var errResp errorResponse
	decodeBody(t, rr, &errResp)
	if errResp.Code != codeRecipeNotFound {
		t.Errorf("error code: got %q, want %q", errResp.Code, codeRecipeNotFound)
	}
}

func TestRecipeGroceryList(t *testing.T) {
	env := newTestEnv()
	h := env.router("u1")

	postJSON(t, h, "/recipes", `{"recipe_name":"Banana Smoothie","ingredients":["bananas","milk"]}`)

	rr := postJSON(t, h, "/recipes/grocery-list",
		`{"recipe_name":"Banana Smoothie","user_preferences":{"Budget":20}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}

	var resp recipeListResponse
	decodeBody(t, rr, &resp)
	if resp.ListID == "" {
		t.Error("expected a persisted list ID")
	}
	if resp.RecipeName != "Banana Smoothie" {
		t.Errorf("recipe name: got %q", resp.RecipeName)
	}
	if len(resp.GroceryList) != 2 {
		t.Fatalf("picks: got %+v, want one per ingredient", resp.GroceryList)
	}
	if resp.OverBudget != 0 {
		t.Errorf("over_budget: got %v, want 0", resp.OverBudget)
	}

	if len(env.lists.lists) != 1 {
		t.Fatalf("persisted lists: got %d, want 1", len(env.lists.lists))
	}
	for _, l := range env.lists.lists {
		if l.Name != "Recipe List for Banana Smoothie" {
			t.Errorf("default list name: got %q", l.Name)
		}
	}
}

func TestRecipeGroceryList_UnknownRecipe(t *testing.T) {
	env := newTestEnv()
	h := env.router("u1")

	rr := postJSON(t, h, "/recipes/grocery-list",
		`{"recipe_name":"Lasagna","user_preferences":{"Budget":20}}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d (%s)", rr.Code, http.StatusNotFound, rr.Body.String())
	}

	var errResp errorResponse
	decodeBody(t, rr, &errResp)
	if errResp.Code != codeRecipeNotFound {
		t.Errorf("error code: got %q, want %q", errResp.Code, codeRecipeNotFound)
	}
}
