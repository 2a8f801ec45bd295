package issuebook_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/issuebook"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_IssuesBookAndRecordsTransaction(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenEmptyStore(t)
	book := GivenBookWasAdded(t, ctx, store)
	member := GivenMemberWasAdded(t, ctx, store, "Alice Johnson")
	handler := issuebook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(ctx, issuebook.BuildCommand(book.ID, member.ID, FakeToday))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Rejected)
	assert.Equal(t, result.CommittedSequence, result.Transaction.SequenceNumber)

	stored, found := store.FindBook(ctx, book.ID)
	require.True(t, found)
	assert.True(t, stored.Issued)
	assert.Equal(t, FakeToday.AddDate(0, 0, 15), stored.DueDate)

	transactions := store.ListTransactions(ctx)
	require.Len(t, transactions, 1)
	assert.Equal(t, catalog.ActionIssued, transactions[0].Action)
	assert.Equal(t, result.Transaction, transactions[0])
	RequireLoanInvariantForAllBooks(t, ctx, store)
}

func Test_CommandHandler_Handle_RejectsSecondIssue(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenEmptyStore(t)
	book := GivenBookWasAdded(t, ctx, store)
	alice := GivenMemberWasAdded(t, ctx, store, "Alice Johnson")
	bob := GivenMemberWasAdded(t, ctx, store, "Bob Williams")
	handler := issuebook.NewCommandHandler(store)
	_, err := handler.Handle(ctx, issuebook.BuildCommand(book.ID, alice.ID, FakeToday))
	require.NoError(t, err, "error in arranging test data")

	// act
	result, err := handler.Handle(ctx, issuebook.BuildCommand(book.ID, bob.ID, FakeToday))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Rejected)
	stored, _ := store.FindBook(ctx, book.ID)
	assert.Equal(t, alice.ID, stored.IssuedToMemberID)
	assert.Len(t, store.ListTransactions(ctx), 1)
}

func Test_CommandHandler_Handle_ConcurrentIssuesOfOneBook_ExactlyOneSucceeds(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenEmptyStore(t)
	book := GivenBookWasAdded(t, ctx, store)

	const callers = 20

	members := make([]catalog.Member, callers)
	for i := range members {
		members[i] = GivenMemberWasAdded(t, ctx, store, "Member")
	}

	handler := issuebook.NewCommandHandler(
		store,
		issuebook.WithRetryOptions(shell.WithMaxAttempts(50), shell.WithBaseDelay(100*time.Microsecond)),
	)

	var wg sync.WaitGroup
	results := make([]issuebook.Result, callers)
	errs := make([]error, callers)
	start := make(chan struct{})

	// act
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results[i], errs[i] = handler.Handle(ctx, issuebook.BuildCommand(book.ID, members[i].ID, FakeToday))
		}()
	}

	close(start)
	wg.Wait()

	// assert
	accepted := 0
	for i := range callers {
		require.NoError(t, errs[i])
		if !results[i].Rejected {
			accepted++
		}
	}

	assert.Equal(t, 1, accepted)
	assert.Len(t, store.ListTransactions(ctx), 1)
	RequireLoanInvariantForAllBooks(t, ctx, store)
}
