package httpapi

import (
	"time"

	"github.com/samber/lo"

	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/fine"
)

// BookDTO is the JSON shape of a book.
type BookDTO struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Author           string      `json:"author"`
	Genre            string      `json:"genre"`
	Issued           bool        `json:"issued"`
	IssuedToMemberID *string     `json:"issuedToMemberId"`
	IssueDate        *string     `json:"issueDate"`
	DueDate          *string     `json:"dueDate"`
	Fine             fine.Amount `json:"fine"`
}

// MemberDTO is the JSON shape of a member.
type MemberDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransactionDTO is the JSON shape of a transaction log entry.
type TransactionDTO struct {
	BookTitle  string    `json:"bookTitle"`
	MemberName string    `json:"memberName"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}

type addBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

type addMemberRequest struct {
	Name string `json:"name"`
}

type issueBookRequest struct {
	BookID   string `json:"bookId"`
	MemberID string `json:"memberId"`
}

type returnBookRequest struct {
	BookID string `json:"bookId"`
}

func toBookDTO(book catalog.Book) BookDTO {
	return BookDTO{
		ID:               book.ID,
		Title:            book.Title,
		Author:           book.Author,
		Genre:            book.Genre,
		Issued:           book.Issued,
		IssuedToMemberID: lo.EmptyableToPtr(book.IssuedToMemberID),
		IssueDate:        formatDate(book.IssueDate),
		DueDate:          formatDate(book.DueDate),
		Fine:             book.Fine,
	}
}

func toBookDTOs(books []catalog.Book) []BookDTO {
	return lo.Map(books, func(book catalog.Book, _ int) BookDTO {
		return toBookDTO(book)
	})
}

func toMemberDTO(member catalog.Member) MemberDTO {
	return MemberDTO{ID: member.ID, Name: member.Name}
}

func toMemberDTOs(members []catalog.Member) []MemberDTO {
	return lo.Map(members, func(member catalog.Member, _ int) MemberDTO {
		return toMemberDTO(member)
	})
}

func toTransactionDTOs(transactions []catalog.Transaction) []TransactionDTO {
	return lo.Map(transactions, func(transaction catalog.Transaction, _ int) TransactionDTO {
		return TransactionDTO{
			BookTitle:  transaction.BookTitle,
			MemberName: transaction.MemberName,
			Action:     transaction.Action.String(),
			Timestamp:  transaction.Timestamp,
		}
	})
}

// formatDate renders a calendar date, nil for the zero time.
func formatDate(date time.Time) *string {
	if date.IsZero() {
		return nil
	}

	return lo.ToPtr(date.Format(time.DateOnly))
}
