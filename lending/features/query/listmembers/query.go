package listmembers

const (
	queryType = "ListMembers"
)

// Query represents the intent to list all members.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
