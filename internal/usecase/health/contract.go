package health

import "context"

// StorePinger checks catalog store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks embedding-cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
