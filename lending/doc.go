// Package lending is the Lending Engine: the capability surface over the catalog.
//
// Engine composes the command and query slices from lending/features, wraps them with the
// observability decorators from lending/shell/observable, and mirrors every committed
// transaction into an optional journal.
//
// All operations take the current date as an explicit parameter. Rejections by the lending
// rules are reported as a false flag, the error return only carries infrastructure failures
// like context cancellation or exhausted retries.
package lending
