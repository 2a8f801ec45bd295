package catalog

import (
	"time"
)

// Action is the kind of lending-relevant fact recorded in the transaction log.
type Action string

const (
	// ActionIssued is recorded when a book is lent to a member.
	ActionIssued Action = "Issued"

	// ActionReturned is recorded when a book comes back from a member.
	ActionReturned Action = "Returned"

	// ActionDeleted is recorded when a book is removed from the catalog.
	ActionDeleted Action = "Deleted"
)

// String implements fmt.Stringer.
func (a Action) String() string {
	return string(a)
}

// Transaction is an immutable entry of the transaction log.
//
// SequenceNumber is zero until the Store appends the entry, then it holds the sequence number
// of the commit which recorded it.
type Transaction struct {
	BookTitle      string
	MemberName     string
	Action         Action
	Timestamp      time.Time
	SequenceNumber SequenceNumber
}

// BuildTransaction creates a Transaction with its timestamp fixed at construction.
func BuildTransaction(bookTitle string, memberName string, action Action, occurredAt time.Time) Transaction {
	return Transaction{
		BookTitle:  bookTitle,
		MemberName: memberName,
		Action:     action,
		Timestamp:  occurredAt.UTC().Truncate(time.Microsecond),
	}
}
