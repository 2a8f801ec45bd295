package shell

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/catalog"
)

// HandlerResult represents the outcome of a command handler execution.
// It captures both the business outcome (rejection) and execution metadata (retry information)
// without coupling the handler to specific observability implementations.
type HandlerResult struct {
	// Rejected indicates the lending rules refused the command. It is a business outcome, not an error.
	Rejected bool

	// Reason explains a rejection, empty otherwise.
	Reason string

	// CommittedSequence is the catalog sequence number of the accepted change, zero otherwise.
	CommittedSequence catalog.SequenceNumber

	// RetryAttempts is the total number of attempts made (1 for no retries, 2+ for retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in retry backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType describes the type of the final error encountered during retries.
	// Values: "none" (success), "concurrency_conflict", "context_canceled", "context_deadline_exceeded", "other"
	LastErrorType string

	// RetriesExhausted indicates whether max retry attempts were reached with a retryable error.
	RetriesExhausted bool
}

// NewAcceptedResult creates a HandlerResult for a committed change.
func NewAcceptedResult(retryMetrics RetryMetrics, committedSequence catalog.SequenceNumber) HandlerResult {
	result := fromRetryMetrics(retryMetrics)
	result.CommittedSequence = committedSequence

	return result
}

// NewRejectedResult creates a HandlerResult for a command the lending rules refused.
func NewRejectedResult(retryMetrics RetryMetrics, reason string) HandlerResult {
	result := fromRetryMetrics(retryMetrics)
	result.Rejected = true
	result.Reason = reason

	return result
}

// NewErrorResult creates a HandlerResult for failed operations.
// It is used when the handler returns an error but still wants to report retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return fromRetryMetrics(retryMetrics)
}

// Outcome implements CommandResult, so HandlerResult can be embedded into the feature results.
func (r HandlerResult) Outcome() HandlerResult {
	return r
}

func fromRetryMetrics(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
