package groclist

import (
	"context"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// Repository defines the storage contract for saved grocery lists.
type Repository interface {
	Get(ctx context.Context, id, userID string) (domain.SavedList, error)
	ListByUser(ctx context.Context, userID, nameFilter string) ([]domain.SavedList, error)
	UpdatePayload(ctx context.Context, id, userID string, payload domain.ListPayload) error
	Delete(ctx context.Context, id, userID string) error
}
