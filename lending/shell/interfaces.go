package shell

import (
	"context"
)

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CommandResult represents the contract for all command result types.
// Every result carries the HandlerResult with the business outcome and the retry metadata.
type CommandResult interface {
	Outcome() HandlerResult
}

// CommandHandler defines the contract for components that process commands.
// Handlers orchestrate the complete workflow: Query -> Decide -> Append.
// The generic parameters C and R ensure type safety between commands and their results.
// Implementations focus on the workflow, observability is added by wrapping them.
type CommandHandler[C Command, R CommandResult] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// QueryResult represents the contract for all query result types.
type QueryResult interface {
	ItemCount() int
}

// QueryHandler defines the contract for components that process queries.
type QueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
