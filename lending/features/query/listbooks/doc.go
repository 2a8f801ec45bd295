// Package listbooks implements the Get All Books query.
//
// Listing is the point where fines are refreshed: every issued book gets its fine recomputed
// for the requested date, and the recomputed value is written back into the catalog.
package listbooks
