// Package sqlitejournal writes the transaction journal to a SQLite database.
//
// Statements are built with squirrel and run through database/sql with the go-sqlite3 driver.
// The in-memory DSN "file::memory:" is handy for tests and demos.
package sqlitejournal
