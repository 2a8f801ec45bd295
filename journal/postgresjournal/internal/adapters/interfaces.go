package adapters

import (
	"context"
	"database/sql"
)

// DBAdapter defines the database operations the journal needs.
type DBAdapter interface {
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}

// stdResult wraps sql.Result, it serves the sql.DB and the sqlx.DB adapter.
type stdResult struct {
	result sql.Result
}

// RowsAffected returns the number of rows affected by the command.
func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}
