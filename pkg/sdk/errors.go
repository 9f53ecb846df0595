package pantry

import "github.com/chop-n-shop/pantry/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound               = domain.ErrNotFound
	ErrAlreadyExists          = domain.ErrAlreadyExists
	ErrRecipeNotFound         = domain.ErrRecipeNotFound
	ErrListNotFound           = domain.ErrListNotFound
	ErrItemNotInList          = domain.ErrItemNotInList
	ErrNoRequestTerms         = domain.ErrNoRequestTerms
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
)
