// Package httpapi exposes the Lending Engine as a JSON REST API built on gin.
//
// All lending routes live under /api:
//
//	GET    /api/books           list books with fines as of today
//	POST   /api/books           add a book {"title","author","genre"}
//	DELETE /api/books/:id       delete a book; 204, or 404 when unknown or issued
//	POST   /api/books/issue     issue a book {"bookId","memberId"}; 400 when rejected
//	POST   /api/books/return    return a book {"bookId"}; 400 when rejected
//	GET    /api/members         list members
//	POST   /api/members         add a member {"name"}
//	DELETE /api/members/:id     delete a member; 204, or 409 when unknown or with loans
//	GET    /api/history         transaction log, most recent first
//
// GET /healthcheck answers "ok". Dates are rendered as YYYY-MM-DD, unset loan fields as null.
package httpapi
