// Package journal defines the optional transaction journal: a write-only mirror of the transaction log.
//
// After a change was committed to the catalog, the lending engine hands every recorded transaction
// to the configured Journal. A failing journal is logged and otherwise ignored, it never changes the
// outcome of an operation and is never read back by the engine. The catalog stays in memory only.
//
// Implementations:
//   - postgresjournal: PostgreSQL via pgx.Pool, sql.DB, or sqlx.DB
//   - sqlitejournal: SQLite via database/sql
package journal
