package returnbook

import (
	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// Decide implements the business logic to determine whether a book can be returned.
//
// Business Rules:
//
//	GIVEN: A book with BookID that is issued
//	WHEN: ReturnBook command is received
//	THEN: All loan fields and the fine are cleared, and a Returned transaction is recorded
//	REJECTED: "book not found" if the book does not exist
//	REJECTED: "book is not issued" if the book is not issued
//
// The member name falls back to "Unknown" when the borrower is not in the catalog anymore.
// The deletion guard for members makes that unreachable, it is kept for catalogs filled by other means.
func Decide(view catalog.View, command Command) core.DecisionResult[core.BookChange] {
	book, found := view.Book(command.BookID)
	if !found {
		return core.RejectedDecision[core.BookChange](core.ReasonBookNotFound)
	}

	if !book.Issued {
		return core.RejectedDecision[core.BookChange](core.ReasonBookNotIssued)
	}

	memberName := core.UnknownMemberName
	if member, found := view.Member(book.IssuedToMemberID); found {
		memberName = member.Name
	}

	returned := book.WithoutLoan()
	transaction := catalog.BuildTransaction(book.Title, memberName, catalog.ActionReturned, command.OccurredAt)

	return core.AcceptedDecision(
		core.BookChange{Book: returned, Transaction: transaction},
		catalog.ReplaceBook(returned),
		catalog.RecordTransaction(transaction),
	)
}

// BuildFilter creates the filter for the book and the member it is currently issued to.
func BuildFilter(bookID catalog.BookID) catalog.Filter {
	return catalog.BuildFilter().Books(bookID).IncludingBorrowers().Finalize()
}
