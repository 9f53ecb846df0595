// Package groclist manages saved grocery lists: retrieval, deletion, and
// item removal with total recomputation. All operations are owner-scoped;
// a foreign list behaves exactly like a missing one.
package groclist

import (
	"context"
	"fmt"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// Service manages a user's saved grocery lists.
type Service struct {
	repo Repository
}

// New creates a grocery-list service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the user's saved lists, optionally filtered by name.
func (s *Service) List(ctx context.Context, userID, nameFilter string) ([]domain.SavedList, error) {
	lists, err := s.repo.ListByUser(ctx, userID, nameFilter)
	if err != nil {
		return nil, fmt.Errorf("list grocery lists: %w", err)
	}
	return lists, nil
}

// Delete removes a saved list. Missing or foreign lists surface as
// domain.ErrListNotFound.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete grocery list: %w", err)
	}
	return nil
}

// RemoveItem deletes one named item from a saved list and recomputes the
// affected total. For a per-store list the first store carrying the item
// loses it and that store's total is re-summed; a recipe list drops the
// matching pick and re-sums the global total. An absent item surfaces as
// domain.ErrItemNotInList.
func (s *Service) RemoveItem(ctx context.Context, id, userID, itemName string) (domain.SavedList, error) {
	list, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return domain.SavedList{}, fmt.Errorf("get grocery list: %w", err)
	}

	removed := false
	if len(list.Payload.Stores) > 0 {
		removed = removeStoreItem(&list.Payload, itemName)
	} else {
		removed = removePick(&list.Payload, itemName)
	}
	if !removed {
		return domain.SavedList{}, fmt.Errorf("item %q: %w", itemName, domain.ErrItemNotInList)
	}

	if err := s.repo.UpdatePayload(ctx, id, userID, list.Payload); err != nil {
		return domain.SavedList{}, fmt.Errorf("update grocery list: %w", err)
	}
	return list, nil
}

func removeStoreItem(payload *domain.ListPayload, itemName string) bool {
	for store, result := range payload.Stores {
		for i, entry := range result.Items {
			if entry.Name != itemName {
				continue
			}
			result.Items = append(result.Items[:i], result.Items[i+1:]...)

			var total float64
			for _, e := range result.Items {
				total += e.Price
			}
			result.TotalCost = domain.Round2(total)

			payload.Stores[store] = result
			return true
		}
	}
	return false
}

func removePick(payload *domain.ListPayload, itemName string) bool {
	for i, pick := range payload.Picks {
		if pick.ItemName != itemName {
			continue
		}
		payload.Picks = append(payload.Picks[:i], payload.Picks[i+1:]...)

		var total float64
		for _, p := range payload.Picks {
			total += p.Price
		}
		payload.TotalCost = domain.Round2(total)
		return true
	}
	return false
}
