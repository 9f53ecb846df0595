package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chop-n-shop/pantry/internal/domain"
	selectionuc "github.com/chop-n-shop/pantry/internal/usecase/selection"
)

// generateListRequest mirrors the client's preference document. Field
// casing follows the public API contract.
type generateListRequest struct {
	Budget             float64  `json:"Budget"`
	GroceryItems       []string `json:"Grocery_items"`
	DietaryPreferences string   `json:"Dietary_preferences"`
	Allergies          []string `json:"Allergies"`
	StorePreference    string   `json:"Store_preference"`
	ListName           string   `json:"list_name"`
}

type savedListResponse struct {
	ID        string                        `json:"id,omitempty"`
	ListName  string                        `json:"list_name,omitempty"`
	CreatedAt *time.Time                    `json:"created_at,omitempty"`
	Stores    map[string]domain.StoreResult `json:"stores"`
}

// handleGenerateGroceryList handles POST /grocery-lists.
func (s *Server) handleGenerateGroceryList(w http.ResponseWriter, r *http.Request) {
	var req generateListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	saved, err := s.selection.GenerateGroceryList(r.Context(), selectionRequest(req, UserIDFromContext(r.Context())))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := savedListResponse{
		ID:       saved.ID,
		ListName: saved.Name,
		Stores:   saved.Payload.Stores,
	}
	if !saved.CreatedAt.IsZero() {
		t := saved.CreatedAt
		resp.CreatedAt = &t
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleListGroceryLists handles GET /grocery-lists.
func (s *Server) handleListGroceryLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.lists.List(r.Context(), UserIDFromContext(r.Context()), r.URL.Query().Get("list_name"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	type listSummary struct {
		ID        string             `json:"id"`
		ListName  string             `json:"list_name"`
		CreatedAt time.Time          `json:"created_at"`
		Payload   domain.ListPayload `json:"payload"`
	}
	out := make([]listSummary, len(lists))
	for i, l := range lists {
		out[i] = listSummary{
			ID:        l.ID,
			ListName:  l.Name,
			CreatedAt: l.CreatedAt,
			Payload:   l.Payload,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"grocery_lists": out,
		"total_count":   len(out),
	})
}

// handleDeleteGroceryList handles DELETE /grocery-lists/{id}.
func (s *Server) handleDeleteGroceryList(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.lists.Delete(r.Context(), id, UserIDFromContext(r.Context())); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Grocery list deleted successfully",
	})
}

// handleRemoveListItem handles DELETE /grocery-lists/{id}/items/{name}.
func (s *Server) handleRemoveListItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name := chi.URLParam(r, "name")

	if _, err := s.lists.RemoveItem(r.Context(), id, UserIDFromContext(r.Context()), name); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Item %q removed from the grocery list successfully", name),
	})
}

func selectionRequest(req generateListRequest, userID string) selectionuc.ItemsRequest {
	return selectionuc.ItemsRequest{
		UserID:          userID,
		ListName:        req.ListName,
		Terms:           req.GroceryItems,
		StorePreference: req.StorePreference,
		Constraints: domain.Constraints{
			Budget:    req.Budget,
			Diet:      domain.ParseDiet(req.DietaryPreferences),
			Allergens: req.Allergies,
		},
	}
}
