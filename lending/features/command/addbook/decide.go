package addbook

import (
	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// Decide implements the business logic to determine whether a book can be added.
//
// Business Rules:
//
//	GIVEN: A book id that is not taken
//	WHEN: AddBook command is received
//	THEN: The book is put into the catalog, not issued
//	REJECTED: "id is already taken" if a book with this id exists
//
// Empty title, author, or genre are accepted.
func Decide(view catalog.View, command Command) core.DecisionResult[catalog.Book] {
	if _, found := view.Book(command.BookID); found {
		return core.RejectedDecision[catalog.Book](core.ReasonDuplicateID)
	}

	book := catalog.BuildBook(command.BookID, command.Title, command.Author, command.Genre)

	return core.AcceptedDecision(book, catalog.PutNewBook(book))
}

// BuildFilter creates the filter for the only entity this feature depends on, the new book itself.
func BuildFilter(bookID catalog.BookID) catalog.Filter {
	return catalog.BuildFilter().Books(bookID).Finalize()
}
