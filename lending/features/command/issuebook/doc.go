// Package issuebook implements the Issue Book use case.
//
// A book that is not issued is lent to an existing member for the loan period of 15 calendar days,
// starting on the date the command occurred at. The loan is recorded as an Issued transaction.
package issuebook
