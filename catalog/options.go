package catalog

import (
	"github.com/AntonStoeckl/library-lending-go/fine"
)

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithFinePolicy sets the policy used by ListBooks to refresh the stored fines.
// Without this option fine.DefaultPolicy() is used.
func WithFinePolicy(policy fine.Policy) Option {
	return func(s *Store) error {
		s.finePolicy = policy
		return nil
	}
}

// WithLogger sets the logger for the Store.
//
// Debug level: completed queries and appends with timing
// Info level: concurrency conflicts
// Error level: refused mutations.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// It receives the same lines as the Logger, with the context for trace correlation.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives query/append durations, concurrency conflicts, refused mutations, and the catalog size.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store, which opens spans for Query and Append.
func WithTracing(collector TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}
