// Package transactionhistory implements the Get Transaction History query.
//
// The log is returned most recent first. Entries are never changed after they were recorded.
package transactionhistory
