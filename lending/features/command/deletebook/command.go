package deletebook

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/catalog"
)

const (
	commandType = "DeleteBook"
)

// Command represents the intent to remove a book from the catalog.
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
