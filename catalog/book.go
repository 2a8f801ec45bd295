package catalog

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/fine"
)

// Book is a copy of a catalog entry.
//
// Loan fields are either all set (Issued is true) or all unset:
//   - IssuedToMemberID is empty when not issued
//   - IssueDate and DueDate are zero when not issued
//
// Fine is derived. The Store refreshes it on every ListBooks call.
type Book struct {
	ID               BookID
	Title            string
	Author           string
	Genre            string
	Issued           bool
	IssuedToMemberID MemberID
	IssueDate        time.Time
	DueDate          time.Time
	Fine             fine.Amount
}

// BuildBook creates a Book which is not issued.
func BuildBook(id BookID, title string, author string, genre string) Book {
	return Book{
		ID:     id,
		Title:  title,
		Author: author,
		Genre:  genre,
	}
}

// WithLoan returns a copy of the book, issued to memberID on issueDate and due on dueDate.
// The fine of a fresh loan is zero.
func (b Book) WithLoan(memberID MemberID, issueDate time.Time, dueDate time.Time) Book {
	b.Issued = true
	b.IssuedToMemberID = memberID
	b.IssueDate = fine.ToDate(issueDate)
	b.DueDate = fine.ToDate(dueDate)
	b.Fine = 0

	return b
}

// WithoutLoan returns a copy of the book with all loan fields and the fine cleared.
func (b Book) WithoutLoan() Book {
	b.Issued = false
	b.IssuedToMemberID = ""
	b.IssueDate = time.Time{}
	b.DueDate = time.Time{}
	b.Fine = 0

	return b
}

// IsIssuedTo reports whether the book is currently lent to memberID.
func (b Book) IsIssuedTo(memberID MemberID) bool {
	return b.Issued && b.IssuedToMemberID == memberID
}

// CheckLoanInvariant returns ErrLoanInvariantViolated if Issued disagrees with the loan fields.
func (b Book) CheckLoanInvariant() error {
	loanFieldsSet := b.IssuedToMemberID != "" && !b.IssueDate.IsZero() && !b.DueDate.IsZero()
	loanFieldsUnset := b.IssuedToMemberID == "" && b.IssueDate.IsZero() && b.DueDate.IsZero()

	if b.Issued && !loanFieldsSet {
		return ErrLoanInvariantViolated
	}

	if !b.Issued && !loanFieldsUnset {
		return ErrLoanInvariantViolated
	}

	if b.Fine < 0 {
		return ErrLoanInvariantViolated
	}

	return nil
}
