// Package catalog provides the in-memory Catalog Store for the library lending engine.
//
// The Store is the single owner of three collections: books, members, and the append-only
// transaction log. Callers never get access to the live collections, every read returns copies.
//
// Two groups of operations exist:
//   - single operations (ListBooks, FindBook, InsertBook, RemoveBook, AppendTransaction, ...)
//     which are atomic on their own
//   - the conditional pair Query and Append, which lets a caller read a consistent View, make a
//     decision, and apply a batch of mutations only if nothing it depends on changed in between
//
// Every committed mutation stamps the touched books and members with a new sequence number.
// Query returns the highest sequence number for the entities matched by a Filter, and Append
// refuses to apply its batch with ErrConcurrencyConflict if that number moved on.
//
// Common usage pattern:
//
//	filter := catalog.BuildFilter().
//		Books(bookID).
//		Members(memberID).
//		Finalize()
//
//	view, maxSeq, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	book, _ := view.Book(bookID)
//	_, err = store.Append(ctx, filter, maxSeq, catalog.ReplaceBook(book.WithLoan(memberID, today, dueDate)))
package catalog
