package listbooks

import (
	"github.com/AntonStoeckl/library-lending-go/catalog"
)

// Books is the query result, most recently added book first.
type Books struct {
	Books []catalog.Book
}

// ItemCount implements shell.QueryResult.
func (r Books) ItemCount() int {
	return len(r.Books)
}
