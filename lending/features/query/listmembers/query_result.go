package listmembers

import (
	"github.com/AntonStoeckl/library-lending-go/catalog"
)

// Members is the query result.
type Members struct {
	Members []catalog.Member
}

// ItemCount implements shell.QueryResult.
func (r Members) ItemCount() int {
	return len(r.Members)
}
