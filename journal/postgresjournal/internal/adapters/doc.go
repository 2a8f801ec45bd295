// Package adapters lets the PostgreSQL journal run on pgx.Pool, sql.DB, or sqlx.DB
// through one DBAdapter interface.
package adapters
