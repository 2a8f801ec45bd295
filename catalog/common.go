package catalog

import (
	"errors"
)

var (
	// ErrConcurrencyConflict is returned by Append when the entities matched by the filter changed since the Query.
	ErrConcurrencyConflict = errors.New("concurrency error, catalog changed since it was queried")

	// ErrDuplicateID is returned when a book or member with the same id already exists.
	ErrDuplicateID = errors.New("an entry with this id already exists")

	// ErrEmptyID is returned when a book or member without an id should be stored.
	ErrEmptyID = errors.New("id must not be empty")

	// ErrBookNotFound is returned when a mutation refers to a book which does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ErrMemberNotFound is returned when a mutation refers to a member which does not exist.
	ErrMemberNotFound = errors.New("member not found")

	// ErrLoanInvariantViolated is returned when a book's issued flag disagrees with its loan fields.
	ErrLoanInvariantViolated = errors.New("book loan fields are inconsistent with its issued flag")
)

// SequenceNumber is the sequence number of the last committed change that touched an entity.
type SequenceNumber = uint

// BookID is the opaque identifier of a Book.
type BookID = string

// MemberID is the opaque identifier of a Member.
type MemberID = string
