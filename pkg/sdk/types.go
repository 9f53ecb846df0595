package pantry

import (
	"time"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// Item is a purchasable catalog product.
type Item struct {
	ID          string
	Name        string
	Store       string
	Price       float64
	Ingredients []string
	Calories    int
	Category    string
}

// ListRequest describes one multi-item grocery-list generation run.
// Store, when set, restricts the run to that store and skips persistence.
type ListRequest struct {
	Owner     string
	Name      string
	Items     []string
	Budget    float64
	Diet      string
	Allergens []string
	Store     string
}

// StoreItem is one accepted item in a per-store grocery list.
type StoreItem struct {
	Name  string
	Price float64
}

// StoreList is the per-store outcome of a generation run. Message is set
// instead of Items when the requested store produced no data.
type StoreList struct {
	Items     []StoreItem
	TotalCost float64
	Message   string
}

// GroceryList is a generated multi-item list. ID and CreatedAt are zero
// when the run was not persisted (store-restricted runs).
type GroceryList struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Stores    map[string]StoreList
}

// Recipe is a saved recipe.
type Recipe struct {
	ID           string
	Name         string
	Ingredients  []string
	Instructions []string
	CookingTime  int
	Servings     int
	Diets        []string
	Allergies    []string
	CreatedAt    time.Time
}

// RecipePick is one resolved ingredient in a recipe-driven list.
type RecipePick struct {
	Ingredient string
	ItemName   string
	Store      string
	Price      float64
}

// RecipeList is the persisted outcome of a recipe-driven generation run.
type RecipeList struct {
	ListID     string
	RecipeID   string
	RecipeName string
	Picks      []RecipePick
	TotalCost  float64
	OverBudget float64
}

// ListSummary identifies one saved grocery list.
type ListSummary struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func itemFromDomain(it domain.CatalogItem) Item {
	return Item{
		ID:          it.ID,
		Name:        it.Name,
		Store:       it.Store,
		Price:       it.Price,
		Ingredients: it.Ingredients,
		Calories:    it.Calories,
		Category:    it.Category,
	}
}

func itemToDomain(it Item) domain.CatalogItem {
	return domain.CatalogItem{
		ID:          it.ID,
		Name:        it.Name,
		Store:       it.Store,
		Price:       it.Price,
		Ingredients: it.Ingredients,
		Calories:    it.Calories,
		Category:    it.Category,
	}
}

func groceryListFromDomain(l domain.SavedList) GroceryList {
	stores := make(map[string]StoreList, len(l.Payload.Stores))
	for name, res := range l.Payload.Stores {
		items := make([]StoreItem, len(res.Items))
		for i, e := range res.Items {
			items[i] = StoreItem{Name: e.Name, Price: e.Price}
		}
		stores[name] = StoreList{Items: items, TotalCost: res.TotalCost, Message: res.Message}
	}
	return GroceryList{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt, Stores: stores}
}

func recipeFromDomain(r domain.Recipe) Recipe {
	return Recipe{
		ID:           r.ID,
		Name:         r.Name,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		CookingTime:  r.CookingTimeMin,
		Servings:     r.Servings,
		Diets:        r.Diets,
		Allergies:    r.Allergies,
		CreatedAt:    r.CreatedAt,
	}
}

func recipeListFromDomain(l domain.SavedList) RecipeList {
	picks := make([]RecipePick, len(l.Payload.Picks))
	for i, p := range l.Payload.Picks {
		picks[i] = RecipePick{Ingredient: p.Ingredient, ItemName: p.ItemName, Store: p.Store, Price: p.Price}
	}
	return RecipeList{
		ListID:     l.ID,
		RecipeID:   l.Payload.RecipeID,
		RecipeName: l.Payload.RecipeName,
		Picks:      picks,
		TotalCost:  l.Payload.TotalCost,
		OverBudget: l.Payload.OverBudget,
	}
}
