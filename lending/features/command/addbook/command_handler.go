package addbook

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
)

// Store defines the interface needed by the CommandHandler for catalog operations.
type Store interface {
	Query(ctx context.Context, filter catalog.Filter) (catalog.View, catalog.SequenceNumber, error)
	Append(
		ctx context.Context,
		filter catalog.Filter,
		expectedMaxSequenceNumber catalog.SequenceNumber,
		mutation catalog.Mutation,
		additionalMutations ...catalog.Mutation,
	) (catalog.SequenceNumber, error)
}

// Result is the outcome of a handled Command.
type Result struct {
	shell.HandlerResult

	// Book is the added book, zero value if rejected.
	Book catalog.Book
}

// CommandHandler orchestrates the command processing workflow: Query -> Decide -> Append, with retry.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the workflow and retries it with exponential backoff on concurrency conflicts.
// A rejection is reported in the Result, the error is reserved for infrastructure failures.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var decision core.DecisionResult[catalog.Book]
	var committed catalog.SequenceNumber

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		decision, committed, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	if decision.IsRejected() {
		return Result{HandlerResult: shell.NewRejectedResult(retryMetrics, decision.Reason)}, nil
	}

	return Result{
		HandlerResult: shell.NewAcceptedResult(retryMetrics, committed),
		Book:          decision.Payload,
	}, nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(
	ctx context.Context,
	command Command,
) (core.DecisionResult[catalog.Book], catalog.SequenceNumber, error) {

	filter := BuildFilter(command.BookID)

	view, maxSequenceNumber, err := h.store.Query(ctx, filter)
	if err != nil {
		return core.DecisionResult[catalog.Book]{}, 0, err
	}

	decision := Decide(view, command)
	if decision.IsRejected() {
		return decision, 0, nil
	}

	committed, err := h.store.Append(ctx, filter, maxSequenceNumber, decision.Mutations[0], decision.Mutations[1:]...)
	if err != nil {
		return core.DecisionResult[catalog.Book]{}, 0, err
	}

	return decision, committed, nil
}
