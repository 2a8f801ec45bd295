package listmembers

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/catalog"
)

// Store defines the interface needed by the QueryHandler.
type Store interface {
	ListMembers(ctx context.Context) []catalog.Member
}

// QueryHandler lists the members.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns a snapshot of all members.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (Members, error) {
	if err := ctx.Err(); err != nil {
		return Members{}, err
	}

	return Members{Members: h.store.ListMembers(ctx)}, nil
}
