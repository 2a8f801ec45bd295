package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-lending-go/catalog"
)

// Lending is the part of the Lending Engine the API serves.
type Lending interface {
	AddBook(ctx context.Context, title, author, genre string) (catalog.Book, error)
	DeleteBook(ctx context.Context, id catalog.BookID, now time.Time) (bool, error)
	AddMember(ctx context.Context, name string) (catalog.Member, error)
	DeleteMember(ctx context.Context, id catalog.MemberID) (bool, error)
	IssueBook(ctx context.Context, bookID catalog.BookID, memberID catalog.MemberID, now time.Time) (catalog.Book, bool, error)
	ReturnBook(ctx context.Context, bookID catalog.BookID, now time.Time) (catalog.Book, bool, error)
	GetAllBooks(ctx context.Context, today time.Time) ([]catalog.Book, error)
	GetAllMembers(ctx context.Context) ([]catalog.Member, error)
	GetTransactionHistory(ctx context.Context) ([]catalog.Transaction, error)
}

// Handler serves the lending routes. The clock supplies the current date to every operation.
type Handler struct {
	lending Lending
	now     func() time.Time
}

// NewHandler creates a Handler. A nil clock means time.Now.
func NewHandler(lending Lending, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}

	return &Handler{lending: lending, now: now}
}

// GetBooks handles GET /api/books.
func (h *Handler) GetBooks(c *gin.Context) {
	books, err := h.lending.GetAllBooks(c.Request.Context(), h.now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, errorCodeInternal, err)
		return
	}

	c.JSON(http.StatusOK, toBookDTOs(books))
}

// AddBook handles POST /api/books.
func (h *Handler) AddBook(c *gin.Context) {
	var req addBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errorCodeMalformedRequest, err)
		return
	}

	book, err := h.lending.AddBook(c.Request.Context(), req.Title, req.Author, req.Genre)
	if err != nil {
		respondError(c, http.StatusInternalServerError, errorCodeInternal, err)
		return
	}

	c.JSON(http.StatusOK, toBookDTO(book))
}

// DeleteBook handles DELETE /api/books/:id.
func (h *Handler) DeleteBook(c *gin.Context) {
	deleted, err := h.lending.DeleteBook(c.Request.Context(), c.Param("id"), h.now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, errorCodeInternal, err)
		return
	}

	if !deleted {
		c.Status(http.StatusNotFound)
		return
	}

	c.Status(http.StatusNoContent)
}

// IssueBook handles POST /api/books/issue.
func (h *Handler) IssueBook(c *gin.Context) {
	var req issueBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errorCodeMalformedRequest, err)
		return
	}

	book, ok, err := h.lending.IssueBook(c.Request.Context(), req.BookID, req.MemberID, h.now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, errorCodeInternal, err)
		return
	}

	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, toBookDTO(book))
}

// ReturnBook handles POST /api/books/return.
func (h *Handler) ReturnBook(c *gin.Context) {
	var req returnBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errorCodeMalformedRequest, err)
		return
	}

	book, ok, err := h.lending.ReturnBook(c.Request.Context(), req.BookID, h.now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, errorCodeInternal, err)
		return
	}

	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, toBookDTO(book))
}

// GetMembers handles GET /api/members.
func (h *Handler) GetMembers(c *gin.Context) {
	members, err := h.lending.GetAllMembers(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, errorCodeInternal, err)
		return
	}

	c.JSON(http.StatusOK, toMemberDTOs(members))
}

// AddMember handles POST /api/members.
func (h *Handler) AddMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errorCodeMalformedRequest, err)
		return
	}

	member, err := h.lending.AddMember(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, http.StatusInternalServerError, errorCodeInternal, err)
		return
	}

	c.JSON(http.StatusOK, toMemberDTO(member))
}

// DeleteMember handles DELETE /api/members/:id.
func (h *Handler) DeleteMember(c *gin.Context) {
	deleted, err := h.lending.DeleteMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, errorCodeInternal, err)
		return
	}

	if !deleted {
		c.Status(http.StatusConflict)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetHistory handles GET /api/history.
func (h *Handler) GetHistory(c *gin.Context) {
	history, err := h.lending.GetTransactionHistory(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, errorCodeInternal, err)
		return
	}

	c.JSON(http.StatusOK, toTransactionDTOs(history))
}

// HealthCheck handles GET /healthcheck.
func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
