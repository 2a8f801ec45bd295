package listbooks

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/fine"
)

const (
	queryType = "ListBooks"
)

// Query represents the intent to list all books with fines as of Today.
type Query struct {
	Today time.Time
}

// BuildQuery creates a new Query for the calendar date of today.
func BuildQuery(today time.Time) Query {
	return Query{Today: fine.ToDate(today)}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
