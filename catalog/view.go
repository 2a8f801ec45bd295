package catalog

// View is a consistent snapshot of the entities matched by a Filter.
// It holds copies, so deciding on it never races with writers.
type View struct {
	books   []Book
	members []Member
}

// Books returns the matched books in listing order.
func (v View) Books() []Book {
	return v.books
}

// Members returns the matched members in insertion order.
func (v View) Members() []Member {
	return v.members
}

// Book returns the matched book with the given id.
func (v View) Book(id BookID) (Book, bool) {
	for _, book := range v.books {
		if book.ID == id {
			return book, true
		}
	}

	return Book{}, false
}

// Member returns the matched member with the given id.
func (v View) Member(id MemberID) (Member, bool) {
	for _, member := range v.members {
		if member.ID == id {
			return member, true
		}
	}

	return Member{}, false
}

// BooksIssuedTo returns the matched books that are currently issued to memberID.
func (v View) BooksIssuedTo(memberID MemberID) []Book {
	var issued []Book

	for _, book := range v.books {
		if book.IsIssuedTo(memberID) {
			issued = append(issued, book)
		}
	}

	return issued
}
