package helper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/catalog"
)

// FakeToday is the fixed date most tests run on.
var FakeToday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func GivenUniqueID(t testing.TB) string {
	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id.String()
}

func GivenEmptyStore(t testing.TB, options ...catalog.Option) *catalog.Store {
	store, err := catalog.NewStore(options...)
	require.NoError(t, err, "error in arranging test data")

	return store
}

func FixtureBook(id catalog.BookID) catalog.Book {
	return catalog.BuildBook(id, "Learning Domain-Driven Design", "Vlad Khononov", "Software")
}

func GivenBookWasAdded(t testing.TB, ctx context.Context, store *catalog.Store) catalog.Book {
	book := FixtureBook(GivenUniqueID(t))
	require.NoError(t, store.InsertBook(ctx, book), "error in arranging test data")

	return book
}

func GivenMemberWasAdded(t testing.TB, ctx context.Context, store *catalog.Store, name string) catalog.Member {
	member := catalog.BuildMember(GivenUniqueID(t), name)
	require.NoError(t, store.InsertMember(ctx, member), "error in arranging test data")

	return member
}

// GivenBookWasIssued puts a loan on the book, bypassing the lending rules.
func GivenBookWasIssued(
	t testing.TB,
	ctx context.Context,
	store *catalog.Store,
	bookID catalog.BookID,
	memberID catalog.MemberID,
	issueDate time.Time,
	dueDate time.Time,
) catalog.Book {

	filter := catalog.BuildFilter().Books(bookID).Finalize()
	view, maxSeq, err := store.Query(ctx, filter)
	require.NoError(t, err, "error in arranging test data")

	book, found := view.Book(bookID)
	require.True(t, found, "error in arranging test data")

	issued := book.WithLoan(memberID, issueDate, dueDate)
	_, err = store.Append(ctx, filter, maxSeq, catalog.ReplaceBook(issued))
	require.NoError(t, err, "error in arranging test data")

	return issued
}

// RequireLoanInvariantForAllBooks fails the test if any stored book has inconsistent loan fields.
func RequireLoanInvariantForAllBooks(t testing.TB, ctx context.Context, store *catalog.Store) {
	for _, book := range store.ListBooks(ctx, FakeToday) {
		require.NoError(t, book.CheckLoanInvariant(), "book %s violates the loan invariant", book.ID)
	}
}

// GivenView queries the store with the filter, so that Decide functions can be tested against real views.
func GivenView(t testing.TB, ctx context.Context, store *catalog.Store, filter catalog.Filter) catalog.View {
	view, _, err := store.Query(ctx, filter)
	require.NoError(t, err, "error in arranging test data")

	return view
}
