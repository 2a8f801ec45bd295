package journal

import (
	"context"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending-go/catalog"
)

// DefaultTableName is the table the SQL journals write to unless configured otherwise.
const DefaultTableName = "lending_transactions"

var (
	// ErrNilDatabaseConnection is returned when a journal is built without a database connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableName is returned when an empty table name is configured.
	ErrEmptyTableName = errors.New("table name must not be empty")

	// ErrEntryNotWritten is returned when the database reports that no row was written.
	ErrEntryNotWritten = errors.New("journal entry was not written")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Journal receives every committed transaction.
type Journal interface {
	Record(ctx context.Context, transaction catalog.Transaction) error
}

// Entry is the persisted shape of a transaction.
type Entry struct {
	SequenceNumber uint      `json:"sequence_number"`
	BookTitle      string    `json:"book_title"`
	MemberName     string    `json:"member_name"`
	Action         string    `json:"action"`
	Timestamp      time.Time `json:"timestamp"`
}

// EntryFrom converts a stamped transaction into an Entry.
func EntryFrom(transaction catalog.Transaction) Entry {
	return Entry{
		SequenceNumber: transaction.SequenceNumber,
		BookTitle:      transaction.BookTitle,
		MemberName:     transaction.MemberName,
		Action:         transaction.Action.String(),
		Timestamp:      transaction.Timestamp.UTC(),
	}
}

// PayloadJSON encodes the Entry as JSON.
func (e Entry) PayloadJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EntryFromJSON decodes an Entry from its JSON payload.
func EntryFromJSON(payload []byte) (Entry, error) {
	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return Entry{}, err
	}

	return entry, nil
}

// ValidateTableName checks a configured table name.
func ValidateTableName(tableName string) error {
	if tableName == "" {
		return ErrEmptyTableName
	}

	return nil
}
