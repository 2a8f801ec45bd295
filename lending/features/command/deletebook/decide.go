package deletebook

import (
	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// Decide implements the business logic to determine whether a book can be removed.
//
// Business Rules:
//
//	GIVEN: A book with BookID
//	WHEN: DeleteBook command is received
//	THEN: The book is removed and a Deleted transaction is recorded for member "System"
//	REJECTED: "book not found" if the book does not exist
//	REJECTED: "book is currently issued" if the book is issued to a member
func Decide(view catalog.View, command Command) core.DecisionResult[core.BookChange] {
	book, found := view.Book(command.BookID)
	if !found {
		return core.RejectedDecision[core.BookChange](core.ReasonBookNotFound)
	}

	if book.Issued {
		return core.RejectedDecision[core.BookChange](core.ReasonBookIsIssued)
	}

	transaction := catalog.BuildTransaction(book.Title, core.SystemMemberName, catalog.ActionDeleted, command.OccurredAt)

	return core.AcceptedDecision(
		core.BookChange{Book: book, Transaction: transaction},
		catalog.DeleteBook(book.ID),
		catalog.RecordTransaction(transaction),
	)
}

// BuildFilter creates the filter for the book to delete.
func BuildFilter(bookID catalog.BookID) catalog.Filter {
	return catalog.BuildFilter().Books(bookID).Finalize()
}
