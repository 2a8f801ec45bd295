// Package deletebook implements the Delete Book use case.
//
// Only a book that is not issued can be removed from the catalog.
// The removal is recorded as a Deleted transaction with the member name "System".
package deletebook
