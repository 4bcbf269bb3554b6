package checkpoint

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option is used to override defaults when creating a new Generator
type Option func(*Generator)

// WithShardsFinder overrides the default topology finder
func WithShardsFinder(finder ShardsFinder) Option {
	return func(g *Generator) {
		g.finder = finder
	}
}

// WithStore overrides the default (discarding) snapshot store
func WithStore(store Store) Option {
	return func(g *Generator) {
		g.store = store
	}
}

// WithLogger overrides the default (discarding) logger
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithMetricRegistry registers the generator metrics with the given registry
func WithMetricRegistry(registry prometheus.Registerer) Option {
	return func(g *Generator) {
		registerCollectors(registry)
	}
}
