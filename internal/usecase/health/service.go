// Package health aggregates component availability checks for the
// health endpoint.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results. IndexSize reports how many
// catalog items the selection index can currently reach.
type Report struct {
	Status    Status
	Checks    map[string]CheckResult
	IndexSize int
}

// IndexSizer reports the catalog index size.
type IndexSizer interface {
	Len() int
}

// Service coordinates health checks.
type Service struct {
	store     StorePinger
	cache     CachePinger
	embedding EmbeddingChecker
	index     IndexSizer
}

// New creates a Service. cache and embedding can be nil when the
// deployment runs without them.
func New(store StorePinger, cache CachePinger, embedding EmbeddingChecker, index IndexSizer) *Service {
	return &Service{store: store, cache: cache, embedding: embedding, index: index}
}

// Check runs health checks against all configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.store.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	report := Report{Status: status, Checks: checks}
	if s.index != nil {
		report.IndexSize = s.index.Len()
	}
	return report
}
