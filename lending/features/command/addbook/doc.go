// Package addbook implements the Add Book use case.
//
// A new book enters the catalog not issued, at the front of the listing order.
// The id is chosen by the caller, so the only possible rejection is an id that is already taken.
// Adding a book is not recorded in the transaction log.
package addbook
