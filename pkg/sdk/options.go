package pantry

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/chop-n-shop/pantry/internal/domain/eligibility"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	dbPath string

	embedder Embedder

	policy eligibility.MatchPolicy
	topK   int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithDatabase sets the sqlite database path. Defaults to "pantry.db".
func WithDatabase(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dbPath = path
	})
}

// WithEmbedder sets the text embedding provider. Required.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithExactMatching switches the eligibility filter from substring to
// exact-token ingredient matching.
func WithExactMatching() Option {
	return optionFunc(func(c *clientConfig) {
		c.policy = eligibility.MatchExactToken
	})
}

// WithTopK sets how many index candidates each selection query
// considers. Default: 100.
func WithTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topK = k
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
