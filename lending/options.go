package lending

import (
	"errors"

	"github.com/AntonStoeckl/library-lending-go/journal"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
)

var (
	// ErrNilStore is returned when NewEngine gets no store.
	ErrNilStore = errors.New("store must not be nil")

	// ErrNilJournal is returned when a nil journal is provided to WithJournal.
	ErrNilJournal = errors.New("journal must not be nil")

	// ErrNilIDGenerator is returned when a nil id generator is provided to WithIDGenerator.
	ErrNilIDGenerator = errors.New("id generator must not be nil")
)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine) error

// WithLogger sets the logger for all handlers.
func WithLogger(logger shell.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithContextualLogger sets the context-aware logger for all handlers.
// It takes precedence over the logger set with WithLogger.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(e *Engine) error {
		e.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the handlers and their retries.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(e *Engine) error {
		e.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for all handlers.
func WithTracing(collector shell.TracingCollector) Option {
	return func(e *Engine) error {
		e.tracingCollector = collector
		return nil
	}
}

// WithJournal mirrors every committed transaction into j.
func WithJournal(j journal.Journal) Option {
	return func(e *Engine) error {
		if j == nil {
			return ErrNilJournal
		}

		e.journal = j

		return nil
	}
}

// WithRetryOptions configures the retries on concurrency conflicts for all command handlers.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(e *Engine) error {
		e.retryOptions = opts
		return nil
	}
}

// WithIDGenerator replaces the random UUID generator for new books and members.
func WithIDGenerator(generate func() string) Option {
	return func(e *Engine) error {
		if generate == nil {
			return ErrNilIDGenerator
		}

		e.generateID = generate

		return nil
	}
}
