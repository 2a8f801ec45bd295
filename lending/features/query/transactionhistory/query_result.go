package transactionhistory

import (
	"github.com/AntonStoeckl/library-lending-go/catalog"
)

// History is the query result, most recent transaction first.
type History struct {
	Transactions []catalog.Transaction
}

// ItemCount implements shell.QueryResult.
func (r History) ItemCount() int {
	return len(r.Transactions)
}
