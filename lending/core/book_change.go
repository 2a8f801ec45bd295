package core

import (
	"github.com/AntonStoeckl/library-lending-go/catalog"
)

// BookChange is the payload of decisions that change a book and record a transaction for it.
// Book is the book as it looks after the change, or as it looked before it was deleted.
type BookChange struct {
	Book        catalog.Book
	Transaction catalog.Transaction
}
