package sqlitejournal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3" // driver registration

	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/journal"
)

const (
	driverName = "sqlite3"

	colSequenceNumber = "sequence_number"
	colBookTitle      = "book_title"
	colMemberName     = "member_name"
	colAction         = "action"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"

	createTableStatement = `CREATE TABLE IF NOT EXISTS %q (
	sequence_number INTEGER PRIMARY KEY,
	book_title TEXT NOT NULL,
	member_name TEXT NOT NULL,
	action TEXT NOT NULL,
	occurred_at TEXT NOT NULL,
	payload TEXT NOT NULL
)`

	timestampLayout = "2006-01-02T15:04:05.999999Z07:00"
)

// Journal writes journal entries to SQLite.
type Journal struct {
	db        *sql.DB
	sq        squirrel.StatementBuilderType
	tableName string
}

// Option defines a functional option for configuring Journal.
type Option func(*Journal) error

// WithTableName sets the table name.
func WithTableName(tableName string) Option {
	return func(j *Journal) error {
		if err := journal.ValidateTableName(tableName); err != nil {
			return err
		}

		j.tableName = tableName

		return nil
	}
}

// Open opens the database at dsn and creates the journal table if needed.
func Open(ctx context.Context, dsn string, options ...Option) (*Journal, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	// every connection to an in-memory database sees its own database
	db.SetMaxOpenConns(1)

	j, err := NewJournal(ctx, db, options...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return j, nil
}

// NewJournal creates a Journal on an already opened database and creates the journal table if needed.
func NewJournal(ctx context.Context, db *sql.DB, options ...Option) (*Journal, error) {
	if db == nil {
		return nil, journal.ErrNilDatabaseConnection
	}

	j := &Journal{
		db:        db,
		sq:        squirrel.StatementBuilder.RunWith(db),
		tableName: journal.DefaultTableName,
	}

	for _, option := range options {
		if err := option(j); err != nil {
			return nil, err
		}
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf(createTableStatement, j.tableName)); err != nil {
		return nil, err
	}

	return j, nil
}

// Record inserts one entry for the stamped transaction.
func (j *Journal) Record(ctx context.Context, transaction catalog.Transaction) error {
	entry := journal.EntryFrom(transaction)

	payload, err := entry.PayloadJSON()
	if err != nil {
		return err
	}

	result, err := j.sq.Insert(j.tableName).
		Columns(colSequenceNumber, colBookTitle, colMemberName, colAction, colOccurredAt, colPayload).
		Values(
			entry.SequenceNumber,
			entry.BookTitle,
			entry.MemberName,
			entry.Action,
			entry.Timestamp.Format(timestampLayout),
			string(payload),
		).
		ExecContext(ctx)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected != 1 {
		return journal.ErrEntryNotWritten
	}

	return nil
}

// Entries reads all entries in sequence order.
func (j *Journal) Entries(ctx context.Context) ([]journal.Entry, error) {
	rows, err := j.sq.Select(colPayload).
		From(j.tableName).
		OrderBy(colSequenceNumber).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []journal.Entry

	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}

		entry, err := journal.EntryFromJSON([]byte(payload))
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
