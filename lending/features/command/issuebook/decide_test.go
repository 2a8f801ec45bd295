package issuebook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/lending/core"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/issuebook"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_Decide_Accepted_WhenBookIsAvailable(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenEmptyStore(t)
	book := GivenBookWasAdded(t, ctx, store)
	member := GivenMemberWasAdded(t, ctx, store, "Alice Johnson")
	now := FakeToday.Add(14 * time.Hour)
	view := GivenView(t, ctx, store, issuebook.BuildFilter(book.ID, member.ID))

	// act
	result := issuebook.Decide(view, issuebook.BuildCommand(book.ID, member.ID, now))

	// assert
	assert.True(t, result.IsAccepted())
	issued := result.Payload.Book
	assert.True(t, issued.Issued)
	assert.Equal(t, member.ID, issued.IssuedToMemberID)
	assert.Equal(t, FakeToday, issued.IssueDate)
	assert.Equal(t, FakeToday.AddDate(0, 0, 15), issued.DueDate)
	assert.Zero(t, issued.Fine)
	assert.NoError(t, issued.CheckLoanInvariant())

	transaction := result.Payload.Transaction
	assert.Equal(t, book.Title, transaction.BookTitle)
	assert.Equal(t, "Alice Johnson", transaction.MemberName)
	assert.Equal(t, catalog.ActionIssued, transaction.Action)
	assert.Len(t, result.Mutations, 2)
}

func Test_Decide_Rejected(t *testing.T) {
	ctx := context.Background()
	store := GivenEmptyStore(t)
	available := GivenBookWasAdded(t, ctx, store)
	member := GivenMemberWasAdded(t, ctx, store, "Alice Johnson")
	other := GivenMemberWasAdded(t, ctx, store, "Bob Williams")
	issued := GivenBookWasAdded(t, ctx, store)
	GivenBookWasIssued(t, ctx, store, issued.ID, other.ID, FakeToday, FakeToday.AddDate(0, 0, 15))
	issuedToSame := GivenBookWasAdded(t, ctx, store)
	GivenBookWasIssued(t, ctx, store, issuedToSame.ID, member.ID, FakeToday, FakeToday.AddDate(0, 0, 15))

	testCases := []struct {
		name     string
		bookID   catalog.BookID
		memberID catalog.MemberID
		reason   string
	}{
		{name: "unknown book", bookID: GivenUniqueID(t), memberID: member.ID, reason: core.ReasonBookNotFound},
		{name: "unknown member", bookID: available.ID, memberID: GivenUniqueID(t), reason: core.ReasonMemberNotFound},
		{name: "issued to another member", bookID: issued.ID, memberID: member.ID, reason: core.ReasonBookAlreadyIssued},
		{name: "issued to the same member", bookID: issuedToSame.ID, memberID: member.ID, reason: core.ReasonBookAlreadyIssued},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			view := GivenView(t, ctx, store, issuebook.BuildFilter(tc.bookID, tc.memberID))

			// act
			result := issuebook.Decide(view, issuebook.BuildCommand(tc.bookID, tc.memberID, FakeToday))

			// assert
			assert.True(t, result.IsRejected())
			assert.Equal(t, tc.reason, result.Reason)
			assert.Nil(t, result.Mutations)
		})
	}
}
