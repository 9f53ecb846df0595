package user

import (
	"context"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// Repository defines the storage contract for user accounts.
type Repository interface {
	Create(ctx context.Context, u domain.User) error
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}
