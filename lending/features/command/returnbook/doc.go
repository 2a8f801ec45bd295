// Package returnbook implements the Return Book use case.
//
// Returning clears every loan field of the book including the fine, and records a Returned transaction
// with the name of the member the book was issued to.
package returnbook
