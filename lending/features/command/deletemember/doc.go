// Package deletemember implements the Delete Member use case.
//
// A member can only be removed while no book is issued to them.
// The check and the removal run against one catalog sequence number, so a book issued to the member
// in between makes the removal conflict, retry, and get rejected.
// No transaction is recorded.
package deletemember
