package main

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver for database/sql and sqlx

	"github.com/AntonStoeckl/library-lending-go/journal"
	"github.com/AntonStoeckl/library-lending-go/journal/postgresjournal"
	"github.com/AntonStoeckl/library-lending-go/journal/sqlitejournal"
)

const postgresDriverName = "postgres"

// openJournal connects the configured journal. It returns a nil journal when the journal is disabled.
// The returned close function is never nil.
func openJournal(ctx context.Context, cfg JournalConfig, logger postgresjournal.Logger) (journal.Journal, func(), error) {
	noop := func() {}

	switch cfg.Driver {
	case journalDriverPGX:
		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			return nil, noop, err
		}

		j, err := postgresjournal.NewJournalFromPGXPool(pool, postgresOptions(cfg, logger)...)

		return ensurePostgresTable(ctx, j, err, pool.Close)

	case journalDriverSQL:
		db, err := sql.Open(postgresDriverName, cfg.DSN)
		if err != nil {
			return nil, noop, err
		}

		j, err := postgresjournal.NewJournalFromSQLDB(db, postgresOptions(cfg, logger)...)

		return ensurePostgresTable(ctx, j, err, func() { _ = db.Close() })

	case journalDriverSQLX:
		db, err := sqlx.Open(postgresDriverName, cfg.DSN)
		if err != nil {
			return nil, noop, err
		}

		j, err := postgresjournal.NewJournalFromSQLX(db, postgresOptions(cfg, logger)...)

		return ensurePostgresTable(ctx, j, err, func() { _ = db.Close() })

	case journalDriverSQLite:
		var options []sqlitejournal.Option
		if cfg.Table != "" {
			options = append(options, sqlitejournal.WithTableName(cfg.Table))
		}

		j, err := sqlitejournal.Open(ctx, firstNonEmpty(cfg.DSN, defaultSQLiteDSN), options...)
		if err != nil {
			return nil, noop, err
		}

		return j, func() { _ = j.Close() }, nil

	default:
		return nil, noop, nil
	}
}

func postgresOptions(cfg JournalConfig, logger postgresjournal.Logger) []postgresjournal.Option {
	options := []postgresjournal.Option{postgresjournal.WithLogger(logger)}
	if cfg.Table != "" {
		options = append(options, postgresjournal.WithTableName(cfg.Table))
	}

	return options
}

func ensurePostgresTable(
	ctx context.Context,
	j postgresjournal.Journal,
	err error,
	closeDB func(),
) (journal.Journal, func(), error) {

	if err == nil {
		err = j.EnsureTable(ctx)
	}

	if err != nil {
		closeDB()
		return nil, func() {}, err
	}

	return j, closeDB, nil
}
