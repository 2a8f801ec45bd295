package issuebook

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/catalog"
)

const (
	commandType = "IssueBook"
)

// Command represents the intent to lend a book to a member.
type Command struct {
	BookID     catalog.BookID
	MemberID   catalog.MemberID
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID catalog.BookID, memberID catalog.MemberID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		MemberID:   memberID,
		OccurredAt: occurredAt,
	}
}
