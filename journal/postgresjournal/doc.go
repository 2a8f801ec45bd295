// Package postgresjournal writes the transaction journal to a PostgreSQL table.
//
// It works with pgx.Pool, sql.DB (lib/pq), or sqlx.DB. Statements are built with goqu.
//
// Table layout (see EnsureTable):
//
//	sequence_number BIGINT PRIMARY KEY
//	book_title      TEXT
//	member_name     TEXT
//	action          TEXT
//	occurred_at     TIMESTAMP WITH TIME ZONE
//	payload         JSONB
package postgresjournal
