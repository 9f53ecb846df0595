package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrRecipeNotFound signals a missing recipe.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrListNotFound signals a missing grocery list.
	ErrListNotFound = errors.New("grocery list not found")
	// ErrItemNotInList signals an item absent from a saved grocery list.
	ErrItemNotInList = errors.New("item not in grocery list")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCredentials signals a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoRequestTerms signals an empty grocery item list.
	ErrNoRequestTerms = errors.New("grocery item list is empty")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrIndexArtifactIncomplete signals that only one of the two index
	// artifacts (vectors, identifier list) was readable.
	ErrIndexArtifactIncomplete = errors.New("index artifact incomplete")
)
