package listbooks_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/fine"
	"github.com/AntonStoeckl/library-lending-go/lending/features/query/listbooks"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_RefreshesFines(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenEmptyStore(t)
	member := GivenMemberWasAdded(t, ctx, store, "Bob Williams")
	overdue := GivenBookWasAdded(t, ctx, store)
	GivenBookWasIssued(t, ctx, store, overdue.ID, member.ID, FakeToday.AddDate(0, 0, -25), FakeToday.AddDate(0, 0, -10))
	available := GivenBookWasAdded(t, ctx, store)
	handler := listbooks.NewQueryHandler(store)

	// act
	result, err := handler.Handle(ctx, listbooks.BuildQuery(FakeToday.Add(20*time.Hour)))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.ItemCount())
	assert.Equal(t, available.ID, result.Books[0].ID)
	assert.Zero(t, result.Books[0].Fine)
	assert.Equal(t, overdue.ID, result.Books[1].ID)
	assert.Equal(t, fine.Amount(50), result.Books[1].Fine)

	stored, _ := store.FindBook(ctx, overdue.ID)
	assert.Equal(t, fine.Amount(50), stored.Fine, "the fine is written back")
}

func Test_QueryHandler_Handle_FineGrowsByRatePerDay(t *testing.T) {
	ctx := context.Background()
	store := GivenEmptyStore(t)
	member := GivenMemberWasAdded(t, ctx, store, "Bob Williams")
	book := GivenBookWasAdded(t, ctx, store)
	dueDate := FakeToday
	GivenBookWasIssued(t, ctx, store, book.ID, member.ID, dueDate.AddDate(0, 0, -15), dueDate)
	handler := listbooks.NewQueryHandler(store)

	for days, expected := range []fine.Amount{0, 5, 10, 15} {
		result, err := handler.Handle(ctx, listbooks.BuildQuery(dueDate.AddDate(0, 0, days)))

		require.NoError(t, err)
		assert.Equal(t, expected, result.Books[0].Fine, "%d days after the due date", days)
	}

	result, err := handler.Handle(ctx, listbooks.BuildQuery(dueDate.AddDate(0, 0, -3)))
	require.NoError(t, err)
	assert.Zero(t, result.Books[0].Fine, "not overdue yet")
}

func Test_QueryHandler_Handle_FailsOnCanceledContext(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	handler := listbooks.NewQueryHandler(GivenEmptyStore(t))

	// act
	_, err := handler.Handle(ctx, listbooks.BuildQuery(FakeToday))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}
