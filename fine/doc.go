// Package fine computes overdue fines for lent books.
//
// Fines accrue per whole calendar day past a book's due date, never per elapsed hour.
// All functions are pure: the current date is always passed in by the caller, nothing
// in this package reads the system clock.
//
// Common usage pattern:
//
//	policy := fine.DefaultPolicy()
//	amount := policy.Fine(book.DueDate, fine.ToDate(time.Now()))
package fine
