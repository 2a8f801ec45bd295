package catalog

import (
	"slices"
)

// Mutation is one change applied by Append or by a single operation of the Store.
// Mutations are built with PutNewBook, ReplaceBook, DeleteBook, PutNewMember, DeleteMember, and RecordTransaction.
type Mutation interface {
	// Kind names the mutation for logs and traces.
	Kind() string

	apply(st *stagedState) error
}

type entityKey string

func bookKey(id BookID) entityKey {
	return entityKey("book:" + id)
}

func memberKey(id MemberID) entityKey {
	return entityKey("member:" + id)
}

// stagedState holds private copies of the collections a batch works on.
// Nothing reaches the Store unless every mutation of the batch applied cleanly.
type stagedState struct {
	books    []Book
	members  []Member
	recorded []Transaction
	touched  []entityKey
	sequence SequenceNumber
}

func (st *stagedState) touchBook(book Book) {
	st.touched = append(st.touched, bookKey(book.ID))

	if book.IssuedToMemberID != "" {
		st.touched = append(st.touched, memberKey(book.IssuedToMemberID))
	}
}

func (st *stagedState) bookIndex(id BookID) int {
	return slices.IndexFunc(st.books, func(b Book) bool { return b.ID == id })
}

func (st *stagedState) memberIndex(id MemberID) int {
	return slices.IndexFunc(st.members, func(m Member) bool { return m.ID == id })
}

/***** books *****/

type putNewBook struct {
	book Book
}

// PutNewBook inserts a book at the front of the listing order.
func PutNewBook(book Book) Mutation {
	return putNewBook{book: book}
}

func (m putNewBook) Kind() string {
	return "PutNewBook"
}

func (m putNewBook) apply(st *stagedState) error {
	if m.book.ID == "" {
		return ErrEmptyID
	}

	if st.bookIndex(m.book.ID) >= 0 {
		return ErrDuplicateID
	}

	if err := m.book.CheckLoanInvariant(); err != nil {
		return err
	}

	st.books = slices.Insert(st.books, 0, m.book)
	st.touchBook(m.book)

	return nil
}

type replaceBook struct {
	book Book
}

// ReplaceBook overwrites an existing book in place, keeping its position in the listing order.
func ReplaceBook(book Book) Mutation {
	return replaceBook{book: book}
}

func (m replaceBook) Kind() string {
	return "ReplaceBook"
}

func (m replaceBook) apply(st *stagedState) error {
	idx := st.bookIndex(m.book.ID)
	if idx < 0 {
		return ErrBookNotFound
	}

	if err := m.book.CheckLoanInvariant(); err != nil {
		return err
	}

	st.touchBook(st.books[idx])
	st.books[idx] = m.book
	st.touchBook(m.book)

	return nil
}

type deleteBook struct {
	id BookID
}

// DeleteBook removes a book from the catalog.
func DeleteBook(id BookID) Mutation {
	return deleteBook{id: id}
}

func (m deleteBook) Kind() string {
	return "DeleteBook"
}

func (m deleteBook) apply(st *stagedState) error {
	idx := st.bookIndex(m.id)
	if idx < 0 {
		return ErrBookNotFound
	}

	st.touchBook(st.books[idx])
	st.books = slices.Delete(st.books, idx, idx+1)

	return nil
}

/***** members *****/

type putNewMember struct {
	member Member
}

// PutNewMember appends a member at the end of the registration order.
func PutNewMember(member Member) Mutation {
	return putNewMember{member: member}
}

func (m putNewMember) Kind() string {
	return "PutNewMember"
}

func (m putNewMember) apply(st *stagedState) error {
	if m.member.ID == "" {
		return ErrEmptyID
	}

	if st.memberIndex(m.member.ID) >= 0 {
		return ErrDuplicateID
	}

	st.members = append(st.members, m.member)
	st.touched = append(st.touched, memberKey(m.member.ID))

	return nil
}

type deleteMember struct {
	id MemberID
}

// DeleteMember removes a member. It does not look at loans, guarding them is up to the caller.
func DeleteMember(id MemberID) Mutation {
	return deleteMember{id: id}
}

func (m deleteMember) Kind() string {
	return "DeleteMember"
}

func (m deleteMember) apply(st *stagedState) error {
	idx := st.memberIndex(m.id)
	if idx < 0 {
		return ErrMemberNotFound
	}

	st.members = slices.Delete(st.members, idx, idx+1)
	st.touched = append(st.touched, memberKey(m.id))

	return nil
}

/***** transactions *****/

type recordTransaction struct {
	transaction Transaction
}

// RecordTransaction prepends an entry to the transaction log, stamped with the sequence number of the batch.
func RecordTransaction(transaction Transaction) Mutation {
	return recordTransaction{transaction: transaction}
}

func (m recordTransaction) Kind() string {
	return "RecordTransaction"
}

func (m recordTransaction) apply(st *stagedState) error {
	stamped := m.transaction
	stamped.SequenceNumber = st.sequence
	st.recorded = append(st.recorded, stamped)

	return nil
}
