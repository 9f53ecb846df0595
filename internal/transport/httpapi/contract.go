package httpapi

import (
	"context"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// CatalogReader serves the read-only catalog endpoints.
type CatalogReader interface {
	List(ctx context.Context) ([]domain.CatalogItem, error)
	Stores(ctx context.Context) ([]string, error)
}

// TokenVerifier validates a session token and returns the user ID it was
// issued for.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}
