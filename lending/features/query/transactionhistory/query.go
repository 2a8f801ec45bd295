package transactionhistory

const (
	queryType = "TransactionHistory"
)

// Query represents the intent to read the transaction log.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
