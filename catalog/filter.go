package catalog

import (
	"slices"
)

/***** Filter *****/

// Filter selects the books and members a decision depends on.
// The Store uses it twice: Query returns the matched entities, Append compares their sequence numbers.
type Filter struct {
	bookIDs          []BookID
	memberIDs        []MemberID
	borrowerIDs      []MemberID
	includeBorrowers bool
}

// BookIDs returns the sanitized book ids.
func (f Filter) BookIDs() []BookID {
	return f.bookIDs
}

// MemberIDs returns the sanitized member ids.
func (f Filter) MemberIDs() []MemberID {
	return f.memberIDs
}

// BorrowerIDs returns the sanitized ids of members whose issued books are matched.
func (f Filter) BorrowerIDs() []MemberID {
	return f.borrowerIDs
}

// IncludesBorrowers reports whether the borrower of a matched book is matched too.
func (f Filter) IncludesBorrowers() bool {
	return f.includeBorrowers
}

// IsEmpty reports whether the Filter matches nothing at all.
func (f Filter) IsEmpty() bool {
	return len(f.bookIDs) == 0 && len(f.memberIDs) == 0 && len(f.borrowerIDs) == 0
}

func (f Filter) matchesBook(book Book) bool {
	if slices.Contains(f.bookIDs, book.ID) {
		return true
	}

	return book.Issued && slices.Contains(f.borrowerIDs, book.IssuedToMemberID)
}

func (f Filter) matchesMember(member Member) bool {
	return slices.Contains(f.memberIDs, member.ID) || slices.Contains(f.borrowerIDs, member.ID)
}

/***** FilterBuilder *****/

// FilterBuilder builds a Filter. All methods may be combined and called in any order:
//
//   - Books(id...) matches the books with these ids
//   - Members(id...) matches the members with these ids
//   - BooksIssuedTo(memberID...) matches every book currently issued to one of these members, and the members
//   - IncludingBorrowers() additionally matches the member a matched book is currently issued to
type FilterBuilder interface {
	// Books adds one or multiple book ids.
	//
	// It sanitizes the input:
	//	- removing empty ids ("")
	//	- sorting the ids
	//	- removing duplicate ids
	Books(id BookID, ids ...BookID) FilterBuilder

	// Members adds one or multiple member ids, sanitized like Books.
	Members(id MemberID, ids ...MemberID) FilterBuilder

	// BooksIssuedTo adds one or multiple borrower ids, sanitized like Books.
	BooksIssuedTo(memberID MemberID, memberIDs ...MemberID) FilterBuilder

	// IncludingBorrowers also matches the member each matched book is issued to.
	IncludingBorrowers() FilterBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

type filterBuilder struct {
	filter Filter
}

// BuildFilter creates a FilterBuilder which must eventually be finalized with Finalize().
func BuildFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) Books(id BookID, ids ...BookID) FilterBuilder {
	fb.filter.bookIDs = sanitizeIDs(fb.filter.bookIDs, id, ids...)

	return fb
}

func (fb filterBuilder) Members(id MemberID, ids ...MemberID) FilterBuilder {
	fb.filter.memberIDs = sanitizeIDs(fb.filter.memberIDs, id, ids...)

	return fb
}

func (fb filterBuilder) BooksIssuedTo(memberID MemberID, memberIDs ...MemberID) FilterBuilder {
	fb.filter.borrowerIDs = sanitizeIDs(fb.filter.borrowerIDs, memberID, memberIDs...)

	return fb
}

func (fb filterBuilder) IncludingBorrowers() FilterBuilder {
	fb.filter.includeBorrowers = true

	return fb
}

func (fb filterBuilder) Finalize() Filter {
	return fb.filter
}

// sanitizeIDs never writes into existing, so builders copied by value do not share backing arrays.
func sanitizeIDs(existing []string, id string, ids ...string) []string {
	allIDs := slices.Concat(existing, []string{id}, ids)
	allIDs = slices.DeleteFunc(
		allIDs,
		func(e string) bool {
			return e == ""
		})
	slices.Sort(allIDs)
	allIDs = slices.Compact(allIDs)
	allIDs = slices.Clip(allIDs)

	return allIDs
}
