package httpapi

import "github.com/go-chi/chi/v5"

// Routes registers all API endpoints on the given router. Authentication
// is applied by middleware installed by the caller; /register, /login,
// /health and /metrics are exempt there.
func (s *Server) Routes(r chi.Router) {
	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)

	r.Post("/grocery-lists", s.handleGenerateGroceryList)
	r.Get("/grocery-lists", s.handleListGroceryLists)
	r.Delete("/grocery-lists/{id}", s.handleDeleteGroceryList)
	r.Delete("/grocery-lists/{id}/items/{name}", s.handleRemoveListItem)

	r.Post("/recipes", s.handleSaveRecipe)
	r.Get("/recipes/saved", s.handleSavedRecipes)
	r.Get("/recipes/{name}", s.handleGetRecipeByName)
	r.Post("/recipes/grocery-list", s.handleRecipeGroceryList)

	r.Get("/items", s.handleItems)
	r.Get("/stores", s.handleStores)

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}
