package main

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-lending-go/fine"
	"github.com/AntonStoeckl/library-lending-go/lending"
)

var errSeedIssueRejected = errors.New("seeding: issue was rejected")

// seedDemoData adds two members and three books, two of them issued.
// "1984" was issued 25 days before today, so it is 10 days overdue.
func seedDemoData(ctx context.Context, engine *lending.Engine, today time.Time) error {
	alice, err := engine.AddMember(ctx, "Alice Johnson")
	if err != nil {
		return err
	}

	bob, err := engine.AddMember(ctx, "Bob Williams")
	if err != nil {
		return err
	}

	if _, err = engine.AddBook(ctx, "The Great Gatsby", "F. Scott Fitzgerald", "Classic"); err != nil {
		return err
	}

	mockingbird, err := engine.AddBook(ctx, "To Kill a Mockingbird", "Harper Lee", "Classic")
	if err != nil {
		return err
	}

	orwell, err := engine.AddBook(ctx, "1984", "George Orwell", "Dystopian")
	if err != nil {
		return err
	}

	loans := []struct {
		bookID   string
		memberID string
		issuedOn time.Time
	}{
		{bookID: mockingbird.ID, memberID: alice.ID, issuedOn: today},
		{bookID: orwell.ID, memberID: bob.ID, issuedOn: fine.AddDays(today, -25)},
	}

	for _, loan := range loans {
		_, ok, err := engine.IssueBook(ctx, loan.bookID, loan.memberID, loan.issuedOn)
		if err != nil {
			return err
		}

		if !ok {
			return errSeedIssueRejected
		}
	}

	return nil
}
