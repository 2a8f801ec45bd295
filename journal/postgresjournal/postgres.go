package postgresjournal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/journal"
	"github.com/AntonStoeckl/library-lending-go/journal/postgresjournal/internal/adapters"
)

const (
	dialectPostgres = "postgres"
	castJsonb       = "?::jsonb"

	colSequenceNumber = "sequence_number"
	colBookTitle      = "book_title"
	colMemberName     = "member_name"
	colAction         = "action"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"

	logMsgBuildInsertQueryFailed = "journal: failed to build insert query"
	logMsgDBExecFailed           = "journal: database execution failed"
	logMsgEntryRecorded          = "journal: entry recorded"
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrSequence              = "sequence"
	logAttrDurationMS            = "duration_ms"

	createTableStatement = `CREATE TABLE IF NOT EXISTS %q (
	sequence_number BIGINT PRIMARY KEY,
	book_title TEXT NOT NULL,
	member_name TEXT NOT NULL,
	action TEXT NOT NULL,
	occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
	payload JSONB NOT NULL
)`
)

// Logger receives the executed SQL at Debug level and failures at Error level.
type Logger = catalog.Logger

// Journal writes journal entries to PostgreSQL.
type Journal struct {
	db        adapters.DBAdapter
	tableName string
	logger    Logger
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

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// NewJournalFromPGXPool creates a Journal using a pgx Pool.
func NewJournalFromPGXPool(db *pgxpool.Pool, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewPGXAdapter(db), options...)
}

// NewJournalFromSQLDB creates a Journal using a sql.DB, e.g. opened with the lib/pq driver.
func NewJournalFromSQLDB(db *sql.DB, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLAdapter(db), options...)
}

// NewJournalFromSQLX creates a Journal using a sqlx.DB.
func NewJournalFromSQLX(db *sqlx.DB, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLXAdapter(db), options...)
}

func newJournal(db adapters.DBAdapter, options ...Option) (Journal, error) {
	j := Journal{
		db:        db,
		tableName: journal.DefaultTableName,
	}

	for _, option := range options {
		if err := option(&j); err != nil {
			return Journal{}, err
		}
	}

	return j, nil
}

// EnsureTable creates the journal table if it does not exist yet.
func (j Journal) EnsureTable(ctx context.Context) error {
	_, err := j.db.Exec(ctx, fmt.Sprintf(createTableStatement, j.tableName))

	return err
}

// Record inserts one entry for the stamped transaction.
func (j Journal) Record(ctx context.Context, transaction catalog.Transaction) error {
	entry := journal.EntryFrom(transaction)

	sqlQuery, err := j.buildInsertQuery(entry)
	if err != nil {
		j.logError(logMsgBuildInsertQueryFailed, err)
		return err
	}

	start := time.Now()

	result, err := j.db.Exec(ctx, sqlQuery)
	if err != nil {
		j.logError(logMsgDBExecFailed, err, logAttrQuery, sqlQuery)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected != 1 {
		return journal.ErrEntryNotWritten
	}

	if j.logger != nil {
		j.logger.Debug(
			logMsgEntryRecorded,
			logAttrQuery, sqlQuery,
			logAttrSequence, entry.SequenceNumber,
			logAttrDurationMS, float64(time.Since(start).Nanoseconds())/1e6,
		)
	}

	return nil
}

func (j Journal) buildInsertQuery(entry journal.Entry) (string, error) {
	payload, err := entry.PayloadJSON()
	if err != nil {
		return "", err
	}

	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		Insert(j.tableName).
		Rows(goqu.Record{
			colSequenceNumber: entry.SequenceNumber,
			colBookTitle:      entry.BookTitle,
			colMemberName:     entry.MemberName,
			colAction:         entry.Action,
			colOccurredAt:     entry.Timestamp,
			colPayload:        goqu.L(castJsonb, string(payload)),
		}).
		ToSQL()
	if err != nil {
		return "", err
	}

	return sqlQuery, nil
}

func (j Journal) logError(msg string, err error, args ...any) {
	if j.logger == nil {
		return
	}

	j.logger.Error(msg, append([]any{logAttrError, err.Error()}, args...)...)
}
