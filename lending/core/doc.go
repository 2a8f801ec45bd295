// Package core contains the lending rules of the library:
// the loan period, the fixed member names used in the transaction log, and the
// DecisionResult every Decide function returns.
//
// Everything in here is pure. No clock reads, no locking, no I/O.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
