package core

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/fine"
)

const (
	// LoanPeriodDays is the number of calendar days a book may be kept.
	LoanPeriodDays = 15

	// SystemMemberName is the member name recorded for catalog removals.
	SystemMemberName = "System"

	// UnknownMemberName is recorded on return when the borrower can't be resolved anymore.
	UnknownMemberName = "Unknown"
)

// Rejection reasons. They are part of the results, never of errors.
const (
	ReasonBookNotFound      = "book not found"
	ReasonMemberNotFound    = "member not found"
	ReasonBookAlreadyIssued = "book is already issued"
	ReasonBookNotIssued     = "book is not issued"
	ReasonBookIsIssued      = "book is currently issued"
	ReasonMemberHasLoans    = "member has books issued"
	ReasonDuplicateID       = "id is already taken"
)

// ToIssueDate normalizes a point in time to the calendar date a loan starts on.
func ToIssueDate(now time.Time) time.Time {
	return fine.ToDate(now)
}

// DueDateFor returns the date a loan starting on issueDate is due.
func DueDateFor(issueDate time.Time) time.Time {
	return fine.AddDays(fine.ToDate(issueDate), LoanPeriodDays)
}
