package returnbook

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/catalog"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent to take back an issued book.
type Command struct {
	BookID     catalog.BookID
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID catalog.BookID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		OccurredAt: occurredAt,
	}
}
