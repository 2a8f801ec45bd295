package addbook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/features/command/addbook"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_AddsBookAtTheFront(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenEmptyStore(t)
	older := GivenBookWasAdded(t, ctx, store)
	handler := addbook.NewCommandHandler(store)
	bookID := GivenUniqueID(t)

	// act
	result, err := handler.Handle(ctx, addbook.BuildCommand(bookID, "Dune", "Frank Herbert", "Science Fiction"))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Rejected)
	assert.Equal(t, bookID, result.Book.ID)
	assert.Equal(t, 1, result.RetryAttempts)
	assert.NotZero(t, result.CommittedSequence)

	books := store.ListBooks(ctx, FakeToday)
	require.Len(t, books, 2)
	assert.Equal(t, bookID, books[0].ID)
	assert.Equal(t, older.ID, books[1].ID)
	assert.Empty(t, store.ListTransactions(ctx), "adding a book is not logged")
}

func Test_CommandHandler_Handle_RejectsTakenID(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenEmptyStore(t)
	existing := GivenBookWasAdded(t, ctx, store)
	handler := addbook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(ctx, addbook.BuildCommand(existing.ID, "Dune", "Frank Herbert", "Science Fiction"))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Rejected)
	assert.Len(t, store.ListBooks(ctx, FakeToday), 1)
}

func Test_CommandHandler_Handle_FailsOnCanceledContext(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := GivenEmptyStore(t)
	handler := addbook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, addbook.BuildCommand(GivenUniqueID(t), "Dune", "Frank Herbert", "Science Fiction"))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.ListBooks(context.Background(), FakeToday))
}
