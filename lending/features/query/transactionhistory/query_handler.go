package transactionhistory

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/catalog"
)

// Store defines the interface needed by the QueryHandler.
type Store interface {
	ListTransactions(ctx context.Context) []catalog.Transaction
}

// QueryHandler reads the transaction log.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns a snapshot of the transaction log.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (History, error) {
	if err := ctx.Err(); err != nil {
		return History{}, err
	}

	return History{Transactions: h.store.ListTransactions(ctx)}, nil
}
