package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/journal/postgresjournal"
)

const (
	// EnvDSN names the environment variable holding the DSN of the test database.
	EnvDSN = "LIBRARY_TEST_POSTGRES_DSN"
	// EnvAdapterType selects the connection type: pgxpool (default), sqldb or sqlx.
	EnvAdapterType = "ADAPTER_TYPE"

	typePGXPool = "pgxpool"
	typeSQLDB   = "sqldb"
	typeSQLX    = "sqlx"

	maxOpenConnections = 10
	connectTimeout     = 5 * time.Second
)

// Wrapper abstracts over the connection types a postgresjournal.Journal can be built from.
type Wrapper interface {
	Journal() postgresjournal.Journal
	TableName() string
	QueryRow(ctx context.Context, query string, args ...any) Row
	Exec(ctx context.Context, query string) error
	Close()
}

// Row is the common subset of pgx.Row and *sql.Row.
type Row interface {
	Scan(dest ...any) error
}

type base struct {
	journal   postgresjournal.Journal
	tableName string
}

func (b base) Journal() postgresjournal.Journal { return b.journal }
func (b base) TableName() string                { return b.tableName }

// PGXPoolWrapper wraps a pgxpool-based journal.
type PGXPoolWrapper struct {
	base
	pool *pgxpool.Pool
}

func (w *PGXPoolWrapper) QueryRow(ctx context.Context, query string, args ...any) Row {
	return w.pool.QueryRow(ctx, query, args...)
}

func (w *PGXPoolWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.pool.Exec(ctx, query)
	return err
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps a database/sql-based journal.
type SQLDBWrapper struct {
	base
	db *sql.DB
}

func (w *SQLDBWrapper) QueryRow(ctx context.Context, query string, args ...any) Row {
	return w.db.QueryRowContext(ctx, query, args...)
}

func (w *SQLDBWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.db.ExecContext(ctx, query)
	return err
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps a sqlx-based journal.
type SQLXWrapper struct {
	base
	db *sqlx.DB
}

func (w *SQLXWrapper) QueryRow(ctx context.Context, query string, args ...any) Row {
	return w.db.QueryRowxContext(ctx, query, args...)
}

func (w *SQLXWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.db.ExecContext(ctx, query)
	return err
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapper connects to the database named by EnvDSN and returns a wrapper around a journal
// writing to tableName, whose table exists and is empty. The test is skipped when EnvDSN is unset.
func CreateWrapper(t testing.TB, tableName string) Wrapper {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDSN)
	}

	ctx := context.Background()
	adapterType := strings.ToLower(os.Getenv(EnvAdapterType))

	var wrapper Wrapper

	switch adapterType {
	case typePGXPool, "":
		config, err := pgxpool.ParseConfig(dsn)
		require.NoError(t, err, "error parsing the DSN in test setup")
		config.MaxConns = maxOpenConnections
		config.ConnConfig.ConnectTimeout = connectTimeout

		pool, err := pgxpool.NewWithConfig(ctx, config)
		require.NoError(t, err, "error connecting to DB pool in test setup")

		journal, err := postgresjournal.NewJournalFromPGXPool(pool, postgresjournal.WithTableName(tableName))
		require.NoError(t, err)

		wrapper = &PGXPoolWrapper{base: base{journal: journal, tableName: tableName}, pool: pool}

	case typeSQLDB:
		db, err := sql.Open("postgres", dsn)
		require.NoError(t, err, "error opening DB in test setup")
		db.SetMaxOpenConns(maxOpenConnections)

		journal, err := postgresjournal.NewJournalFromSQLDB(db, postgresjournal.WithTableName(tableName))
		require.NoError(t, err)

		wrapper = &SQLDBWrapper{base: base{journal: journal, tableName: tableName}, db: db}

	case typeSQLX:
		db, err := sqlx.Open("postgres", dsn)
		require.NoError(t, err, "error opening DB in test setup")
		db.SetMaxOpenConns(maxOpenConnections)

		journal, err := postgresjournal.NewJournalFromSQLX(db, postgresjournal.WithTableName(tableName))
		require.NoError(t, err)

		wrapper = &SQLXWrapper{base: base{journal: journal, tableName: tableName}, db: db}

	default:
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterType))
	}

	require.NoError(t, wrapper.Journal().EnsureTable(ctx), "error creating the journal table")
	CleanUp(t, wrapper)

	return wrapper
}

// CleanUp empties the journal table of the given wrapper.
func CleanUp(t testing.TB, wrapper Wrapper) {
	t.Helper()

	err := wrapper.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %q", wrapper.TableName()))
	require.NoError(t, err, "error cleaning up the journal table")
}

// CountEntries returns the number of rows in the journal table.
func CountEntries(t testing.TB, wrapper Wrapper) int {
	t.Helper()

	var cnt int
	query := fmt.Sprintf("SELECT count(*) FROM %q", wrapper.TableName())
	require.NoError(t, wrapper.QueryRow(context.Background(), query).Scan(&cnt))

	return cnt
}

// PayloadOf returns the JSON payload stored for sequenceNumber.
func PayloadOf(t testing.TB, wrapper Wrapper, sequenceNumber uint) []byte {
	t.Helper()

	var payload []byte
	query := fmt.Sprintf("SELECT payload::text FROM %q WHERE sequence_number = $1", wrapper.TableName())
	require.NoError(t, wrapper.QueryRow(context.Background(), query, int64(sequenceNumber)).Scan(&payload))

	return payload
}
