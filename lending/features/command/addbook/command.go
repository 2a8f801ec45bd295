package addbook

import (
	"github.com/AntonStoeckl/library-lending-go/catalog"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a book to the catalog.
type Command struct {
	BookID catalog.BookID
	Title  string
	Author string
	Genre  string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID catalog.BookID, title string, author string, genre string) Command {
	return Command{
		BookID: bookID,
		Title:  title,
		Author: author,
		Genre:  genre,
	}
}
