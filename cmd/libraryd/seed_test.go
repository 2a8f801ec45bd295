package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/fine"
	"github.com/AntonStoeckl/library-lending-go/lending"
)

func Test_seedDemoData(t *testing.T) {
	// arrange
	ctx := context.Background()
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	store, err := catalog.NewStore()
	require.NoError(t, err)
	engine, err := lending.NewEngine(store)
	require.NoError(t, err)

	// act
	err = seedDemoData(ctx, engine, today)

	// assert
	require.NoError(t, err)

	members, err := engine.GetAllMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Alice Johnson", members[0].Name)
	assert.Equal(t, "Bob Williams", members[1].Name)

	books, err := engine.GetAllBooks(ctx, today)
	require.NoError(t, err)
	require.Len(t, books, 3)

	byTitle := map[string]catalog.Book{}
	for _, book := range books {
		byTitle[book.Title] = book
	}

	assert.False(t, byTitle["The Great Gatsby"].Issued)
	assert.Equal(t, members[0].ID, byTitle["To Kill a Mockingbird"].IssuedToMemberID)
	assert.Zero(t, byTitle["To Kill a Mockingbird"].Fine)
	assert.Equal(t, members[1].ID, byTitle["1984"].IssuedToMemberID)
	assert.Equal(t, fine.AddDays(today, -10), byTitle["1984"].DueDate)
	assert.Equal(t, fine.Amount(50), byTitle["1984"].Fine)

	history, err := engine.GetTransactionHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func Test_buildEngine_WithSQLiteJournal(t *testing.T) {
	// arrange
	ctx := context.Background()
	cfg := defaultConfig()
	cfg.Journal = JournalConfig{Driver: journalDriverSQLite}

	// act
	engine, closeJournal, err := buildEngine(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), observability{})

	// assert
	require.NoError(t, err)
	t.Cleanup(closeJournal)
	require.NoError(t, seedDemoData(ctx, engine, time.Now()))
}
