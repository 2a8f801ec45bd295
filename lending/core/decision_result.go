package core

import (
	"github.com/AntonStoeckl/library-lending-go/catalog"
)

// DecisionResult represents the outcome of a business decision in a Decide function.
// P is the entity the decision produced, e.g. the book as it will look after the change.
//
// IMPORTANT: DecisionResult should only be constructed using the factory functions
// AcceptedDecision(payload, mutation, ...) or RejectedDecision(reason).
type DecisionResult[P any] struct {
	Outcome   string
	Payload   P                  // zero value for rejected decisions
	Mutations []catalog.Mutation // nil for rejected decisions
	Reason    string             // empty for accepted decisions
}

const (
	acceptedOutcome = "accepted"
	rejectedOutcome = "rejected"
)

// AcceptedDecision creates a DecisionResult with the mutations to append to the catalog.
func AcceptedDecision[P any](payload P, mutation catalog.Mutation, mutations ...catalog.Mutation) DecisionResult[P] {
	return DecisionResult[P]{
		Outcome:   acceptedOutcome,
		Payload:   payload,
		Mutations: append([]catalog.Mutation{mutation}, mutations...),
	}
}

// RejectedDecision creates a DecisionResult for a request the lending rules refuse.
func RejectedDecision[P any](reason string) DecisionResult[P] {
	return DecisionResult[P]{
		Outcome: rejectedOutcome,
		Reason:  reason,
	}
}

// IsAccepted returns true if there are mutations to append to the catalog.
func (r DecisionResult[P]) IsAccepted() bool {
	return r.Outcome == acceptedOutcome
}

// IsRejected returns true if the lending rules refused the request.
func (r DecisionResult[P]) IsRejected() bool {
	return r.Outcome == rejectedOutcome
}
