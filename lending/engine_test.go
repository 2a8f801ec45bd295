package lending_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/fine"
	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

type journalSpy struct {
	mu       sync.Mutex
	recorded []catalog.Transaction
	err      error
}

func (j *journalSpy) Record(_ context.Context, transaction catalog.Transaction) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.err != nil {
		return j.err
	}

	j.recorded = append(j.recorded, transaction)

	return nil
}

func (j *journalSpy) Recorded() []catalog.Transaction {
	j.mu.Lock()
	defer j.mu.Unlock()

	return append([]catalog.Transaction(nil), j.recorded...)
}

func givenEngine(t *testing.T, options ...lending.Option) (*lending.Engine, *catalog.Store) {
	t.Helper()

	store := GivenEmptyStore(t)
	engine, err := lending.NewEngine(store, options...)
	require.NoError(t, err, "error in arranging test data")

	return engine, store
}

func givenBookAndMember(t *testing.T, engine *lending.Engine) (catalog.Book, catalog.Member) {
	t.Helper()
	ctx := context.Background()

	book, err := engine.AddBook(ctx, "1984", "George Orwell", "Dystopian")
	require.NoError(t, err, "error in arranging test data")

	member, err := engine.AddMember(ctx, "Bob Williams")
	require.NoError(t, err, "error in arranging test data")

	return book, member
}

func Test_Engine_IssueBook_SetsLoanFieldsAndLogsIssued(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, store := givenEngine(t)
	book, member := givenBookAndMember(t, engine)

	// act
	issued, ok, err := engine.IssueBook(ctx, book.ID, member.ID, FakeToday.Add(14*time.Hour))

	// assert
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, issued.Issued)
	assert.Equal(t, member.ID, issued.IssuedToMemberID)
	assert.Equal(t, FakeToday, issued.IssueDate)
	assert.Equal(t, FakeToday.AddDate(0, 0, core.LoanPeriodDays), issued.DueDate)
	assert.Zero(t, issued.Fine)

	history, err := engine.GetTransactionHistory(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, catalog.ActionIssued, history[0].Action)
	assert.Equal(t, "1984", history[0].BookTitle)
	assert.Equal(t, "Bob Williams", history[0].MemberName)
	RequireLoanInvariantForAllBooks(t, ctx, store)
}

func Test_Engine_IssueBook_RejectsUnknownOrIssuedBooks(t *testing.T) {
	ctx := context.Background()
	engine, _ := givenEngine(t)
	book, member := givenBookAndMember(t, engine)

	_, ok, err := engine.IssueBook(ctx, "unknown", member.ID, FakeToday)
	require.NoError(t, err)
	assert.False(t, ok, "unknown book")

	_, ok, err = engine.IssueBook(ctx, book.ID, "unknown", FakeToday)
	require.NoError(t, err)
	assert.False(t, ok, "unknown member")

	_, ok, err = engine.IssueBook(ctx, book.ID, member.ID, FakeToday)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = engine.IssueBook(ctx, book.ID, member.ID, FakeToday)
	require.NoError(t, err)
	assert.False(t, ok, "already issued")
}

func Test_Engine_GetAllBooks_ChargesFineForOverdueBook(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, _ := givenEngine(t)
	book, member := givenBookAndMember(t, engine)
	_, ok, err := engine.IssueBook(ctx, book.ID, member.ID, FakeToday.AddDate(0, 0, -25))
	require.NoError(t, err)
	require.True(t, ok)

	// act
	books, err := engine.GetAllBooks(ctx, FakeToday)

	// assert
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, FakeToday.AddDate(0, 0, -10), books[0].DueDate)
	assert.Equal(t, fine.Amount(50), books[0].Fine)
}

func Test_Engine_ReturnBook_ClearsLoanAndFine(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, store := givenEngine(t)
	book, member := givenBookAndMember(t, engine)
	_, _, err := engine.IssueBook(ctx, book.ID, member.ID, FakeToday.AddDate(0, 0, -25))
	require.NoError(t, err)
	_, err = engine.GetAllBooks(ctx, FakeToday)
	require.NoError(t, err)

	// act
	returned, ok, err := engine.ReturnBook(ctx, book.ID, FakeToday)

	// assert
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, returned.Issued)
	assert.Empty(t, returned.IssuedToMemberID)
	assert.True(t, returned.IssueDate.IsZero())
	assert.True(t, returned.DueDate.IsZero())
	assert.Zero(t, returned.Fine)

	history, err := engine.GetTransactionHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, catalog.ActionReturned, history[0].Action)
	assert.Equal(t, "Bob Williams", history[0].MemberName)
	RequireLoanInvariantForAllBooks(t, ctx, store)
}

func Test_Engine_ReturnBook_SecondReturnIsRejectedAndNotLogged(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, _ := givenEngine(t)
	book, member := givenBookAndMember(t, engine)
	_, _, err := engine.IssueBook(ctx, book.ID, member.ID, FakeToday)
	require.NoError(t, err)
	_, ok, err := engine.ReturnBook(ctx, book.ID, FakeToday)
	require.NoError(t, err)
	require.True(t, ok)

	// act
	returned, ok, err := engine.ReturnBook(ctx, book.ID, FakeToday)

	// assert
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, catalog.Book{}, returned)

	history, err := engine.GetTransactionHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func Test_Engine_DeleteBook(t *testing.T) {
	ctx := context.Background()
	engine, _ := givenEngine(t)
	book, member := givenBookAndMember(t, engine)
	_, _, err := engine.IssueBook(ctx, book.ID, member.ID, FakeToday)
	require.NoError(t, err)

	deleted, err := engine.DeleteBook(ctx, book.ID, FakeToday)
	require.NoError(t, err)
	assert.False(t, deleted, "issued books stay")

	books, err := engine.GetAllBooks(ctx, FakeToday)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.True(t, books[0].Issued)
	assert.Equal(t, member.ID, books[0].IssuedToMemberID)

	_, _, err = engine.ReturnBook(ctx, book.ID, FakeToday)
	require.NoError(t, err)

	deleted, err = engine.DeleteBook(ctx, book.ID, FakeToday)
	require.NoError(t, err)
	assert.True(t, deleted)

	history, err := engine.GetTransactionHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.ActionDeleted, history[0].Action)
	assert.Equal(t, core.SystemMemberName, history[0].MemberName)

	deleted, err = engine.DeleteBook(ctx, book.ID, FakeToday)
	require.NoError(t, err)
	assert.False(t, deleted, "already gone")
}

func Test_Engine_DeleteMember_IsBlockedByOutstandingLoans(t *testing.T) {
	ctx := context.Background()
	engine, _ := givenEngine(t)
	book, member := givenBookAndMember(t, engine)
	_, _, err := engine.IssueBook(ctx, book.ID, member.ID, FakeToday)
	require.NoError(t, err)

	deleted, err := engine.DeleteMember(ctx, member.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, _, err = engine.ReturnBook(ctx, book.ID, FakeToday)
	require.NoError(t, err)

	deleted, err = engine.DeleteMember(ctx, member.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	members, err := engine.GetAllMembers(ctx)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func Test_Engine_AddBook_PrependsAndAddMember_Appends(t *testing.T) {
	ctx := context.Background()
	engine, _ := givenEngine(t)

	first, err := engine.AddBook(ctx, "The Great Gatsby", "F. Scott Fitzgerald", "Classic")
	require.NoError(t, err)
	second, err := engine.AddBook(ctx, "", "", "")
	require.NoError(t, err)
	alice, err := engine.AddMember(ctx, "Alice Johnson")
	require.NoError(t, err)
	bob, err := engine.AddMember(ctx, "Bob Williams")
	require.NoError(t, err)

	books, err := engine.GetAllBooks(ctx, FakeToday)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, second.ID, books[0].ID)
	assert.Equal(t, first.ID, books[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.Issued)

	members, err := engine.GetAllMembers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []catalog.Member{alice, bob}, members)
}

func Test_Engine_AddBook_FailsOnDuplicateGeneratedID(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, _ := givenEngine(t, lending.WithIDGenerator(func() string { return "fixed" }))
	_, err := engine.AddBook(ctx, "1984", "George Orwell", "Dystopian")
	require.NoError(t, err)

	// act
	_, err = engine.AddBook(ctx, "Brave New World", "Aldous Huxley", "Dystopian")

	// assert
	assert.ErrorIs(t, err, catalog.ErrDuplicateID)
}

func Test_Engine_IssueBook_ConcurrentCallersExactlyOneWins(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine, store := givenEngine(t, lending.WithRetryOptions(shell.WithBaseDelay(0)))
	book, _ := givenBookAndMember(t, engine)

	const callers = 20
	memberIDs := make([]catalog.MemberID, callers)
	for i := range memberIDs {
		member, err := engine.AddMember(ctx, "Member")
		require.NoError(t, err)
		memberIDs[i] = member.ID
	}

	var wins atomic.Int32
	var wg sync.WaitGroup

	// act
	for i := range callers {
		wg.Add(1)

		go func(memberID catalog.MemberID) {
			defer wg.Done()

			_, ok, err := engine.IssueBook(ctx, book.ID, memberID, FakeToday)
			assert.NoError(t, err)

			if ok {
				wins.Add(1)
			}
		}(memberIDs[i])
	}

	wg.Wait()

	// assert
	assert.Equal(t, int32(1), wins.Load())
	history, err := engine.GetTransactionHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 1)
	RequireLoanInvariantForAllBooks(t, ctx, store)
}

func Test_Engine_MirrorsCommittedTransactionsIntoJournal(t *testing.T) {
	// arrange
	ctx := context.Background()
	spy := &journalSpy{}
	engine, _ := givenEngine(t, lending.WithJournal(spy))
	book, member := givenBookAndMember(t, engine)

	// act
	_, _, err := engine.IssueBook(ctx, book.ID, member.ID, FakeToday)
	require.NoError(t, err)
	_, _, err = engine.IssueBook(ctx, book.ID, member.ID, FakeToday)
	require.NoError(t, err)
	_, _, err = engine.ReturnBook(ctx, book.ID, FakeToday)
	require.NoError(t, err)
	_, err = engine.DeleteBook(ctx, book.ID, FakeToday)
	require.NoError(t, err)

	// assert
	recorded := spy.Recorded()
	require.Len(t, recorded, 3, "the rejected issue is not mirrored")
	assert.Equal(t, catalog.ActionIssued, recorded[0].Action)
	assert.Equal(t, catalog.ActionReturned, recorded[1].Action)
	assert.Equal(t, catalog.ActionDeleted, recorded[2].Action)

	history, err := engine.GetTransactionHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, history[0].SequenceNumber, recorded[2].SequenceNumber)
	assert.Less(t, recorded[0].SequenceNumber, recorded[1].SequenceNumber)
	assert.NotZero(t, recorded[0].SequenceNumber)
}

func Test_Engine_JournalFailureIsLoggedAndIgnored(t *testing.T) {
	// arrange
	ctx := context.Background()
	spy := &journalSpy{err: errors.New("journal down")}
	logger := NewContextualLoggerSpy()
	engine, _ := givenEngine(t, lending.WithJournal(spy), lending.WithContextualLogger(logger))
	book, member := givenBookAndMember(t, engine)

	// act
	issued, ok, err := engine.IssueBook(ctx, book.ID, member.ID, FakeToday)

	// assert
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, issued.Issued)
	assert.True(t, logger.HasLog(slog.LevelWarn, "journal: failed to record transaction"))
}

func Test_Engine_RecordsHandlerMetricsAndSpans(t *testing.T) {
	// arrange
	ctx := context.Background()
	metrics := NewMetricsCollectorSpy(true)
	tracing := NewTracingCollectorSpy(true)
	logHandler := NewLogHandlerSpy(false)
	engine, _ := givenEngine(t,
		lending.WithMetrics(metrics),
		lending.WithTracing(tracing),
		lending.WithLogger(slog.New(logHandler)),
	)
	book, member := givenBookAndMember(t, engine)

	// act
	_, _, err := engine.IssueBook(ctx, book.ID, member.ID, FakeToday)
	require.NoError(t, err)
	_, _, err = engine.IssueBook(ctx, book.ID, member.ID, FakeToday)
	require.NoError(t, err)
	_, err = engine.GetAllBooks(ctx, FakeToday)
	require.NoError(t, err)

	// assert
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithLabel(shell.LogAttrCommandType, "IssueBook").
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerRejectedMetric).
		WithLabel(shell.LogAttrCommandType, "IssueBook").
		Assert())
	assert.True(t, metrics.HasDurationRecordForMetric(shell.QueryHandlerDurationMetric).
		WithLabel(shell.LogAttrQueryType, "ListBooks").
		Assert())
	assert.True(t, tracing.HasSpanRecordForName(shell.SpanNameCommandHandle).
		WithStatus(shell.StatusRejected).
		Assert())
	assert.True(t, logHandler.HasInfoLog(shell.LogMsgCommandCompleted))
}

func Test_Engine_FailsOnCanceledContext(t *testing.T) {
	// arrange
	engine, _ := givenEngine(t)
	book, member := givenBookAndMember(t, engine)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, ok, err := engine.IssueBook(ctx, book.ID, member.ID, FakeToday)
	_, listErr := engine.GetAllBooks(ctx, FakeToday)

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
	assert.ErrorIs(t, listErr, context.Canceled)
}

func Test_NewEngine_RejectsInvalidConfiguration(t *testing.T) {
	_, err := lending.NewEngine(nil)
	assert.ErrorIs(t, err, lending.ErrNilStore)

	store := GivenEmptyStore(t)

	_, err = lending.NewEngine(store, lending.WithJournal(nil))
	assert.ErrorIs(t, err, lending.ErrNilJournal)

	_, err = lending.NewEngine(store, lending.WithIDGenerator(nil))
	assert.ErrorIs(t, err, lending.ErrNilIDGenerator)
}
