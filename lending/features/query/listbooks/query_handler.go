package listbooks

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-lending-go/catalog"
)

// Store defines the interface needed by the QueryHandler.
type Store interface {
	ListBooks(ctx context.Context, today time.Time) []catalog.Book
}

// QueryHandler lists the books.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns a snapshot of all books with refreshed fines.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Books, error) {
	if err := ctx.Err(); err != nil {
		return Books{}, err
	}

	return Books{Books: h.store.ListBooks(ctx, query.Today)}, nil
}
