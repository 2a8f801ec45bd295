package issuebook

import (
	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// Decide implements the business logic to determine whether a book can be issued to a member.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a member with MemberID
//	WHEN: IssueBook command is received
//	THEN: The book is issued to the member, due 15 days after the issue date,
//	      and an Issued transaction is recorded
//	REJECTED: "book not found" if the book does not exist
//	REJECTED: "member not found" if the member does not exist
//	REJECTED: "book is already issued" if the book is issued, also to the same member
func Decide(view catalog.View, command Command) core.DecisionResult[core.BookChange] {
	book, found := view.Book(command.BookID)
	if !found {
		return core.RejectedDecision[core.BookChange](core.ReasonBookNotFound)
	}

	member, found := view.Member(command.MemberID)
	if !found {
		return core.RejectedDecision[core.BookChange](core.ReasonMemberNotFound)
	}

	if book.Issued {
		return core.RejectedDecision[core.BookChange](core.ReasonBookAlreadyIssued)
	}

	issueDate := core.ToIssueDate(command.OccurredAt)
	issued := book.WithLoan(member.ID, issueDate, core.DueDateFor(issueDate))
	transaction := catalog.BuildTransaction(book.Title, member.Name, catalog.ActionIssued, command.OccurredAt)

	return core.AcceptedDecision(
		core.BookChange{Book: issued, Transaction: transaction},
		catalog.ReplaceBook(issued),
		catalog.RecordTransaction(transaction),
	)
}

// BuildFilter creates the filter for the book and the member.
func BuildFilter(bookID catalog.BookID, memberID catalog.MemberID) catalog.Filter {
	return catalog.BuildFilter().Books(bookID).Members(memberID).Finalize()
}
