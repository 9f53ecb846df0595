package selection

import (
	"context"

	"github.com/chop-n-shop/pantry/internal/domain"
	"github.com/chop-n-shop/pantry/internal/index"
)

// Searcher retrieves nearest catalog candidates for a query term.
type Searcher interface {
	Query(ctx context.Context, text string, topK int) []index.Candidate
}

// Catalog resolves candidate identifiers to catalog rows and enumerates
// the known stores.
type Catalog interface {
	Get(ctx context.Context, id string) (domain.ItemLookup, error)
	Stores(ctx context.Context) ([]string, error)
}

// RecipeReader loads a recipe for the recipe-driven workflow.
type RecipeReader interface {
	GetByID(ctx context.Context, id string) (domain.Recipe, error)
}

// ListWriter persists a completed grocery-list run.
type ListWriter interface {
	Insert(ctx context.Context, list domain.SavedList) error
}

// Reranker reorders ranked candidates with an external scorer. Optional:
// without one the index's distance order stands.
type Reranker interface {
	Rerank(ctx context.Context, query string, candidates []index.Candidate) ([]index.Candidate, error)
}
