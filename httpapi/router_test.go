package httpapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/httpapi"
	"github.com/AntonStoeckl/library-lending-go/lending"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	gin.SetMode(gin.TestMode)
}

func givenRouter(t *testing.T) *gin.Engine {
	t.Helper()

	engine, err := lending.NewEngine(GivenEmptyStore(t))
	require.NoError(t, err, "error in arranging test data")

	return givenRouterFor(engine)
}

func givenRouterFor(l httpapi.Lending) *gin.Engine {
	handler := httpapi.NewHandler(l, func() time.Time { return FakeToday.Add(9 * time.Hour) })

	return httpapi.NewRouter(httpapi.RouterConfig{Handler: handler})
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &v), recorder.Body.String())

	return v
}

func givenBookAndMemberViaAPI(t *testing.T, router *gin.Engine) (httpapi.BookDTO, httpapi.MemberDTO) {
	t.Helper()

	bookResponse := perform(router, http.MethodPost, "/api/books", `{"title":"1984","author":"George Orwell","genre":"Dystopian"}`)
	require.Equal(t, http.StatusOK, bookResponse.Code)

	memberResponse := perform(router, http.MethodPost, "/api/members", `{"name":"Bob Williams"}`)
	require.Equal(t, http.StatusOK, memberResponse.Code)

	return decode[httpapi.BookDTO](t, bookResponse), decode[httpapi.MemberDTO](t, memberResponse)
}

func Test_HealthCheck(t *testing.T) {
	recorder := perform(givenRouter(t), http.MethodGet, "/healthcheck", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", recorder.Body.String())
}

func Test_AddBook_RendersUnsetLoanFieldsAsNull(t *testing.T) {
	// arrange
	router := givenRouter(t)

	// act
	recorder := perform(router, http.MethodPost, "/api/books", `{"title":"The Great Gatsby","author":"F. Scott Fitzgerald","genre":"Classic"}`)

	// assert
	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, `"issued":false`)
	assert.Contains(t, body, `"issuedToMemberId":null`)
	assert.Contains(t, body, `"issueDate":null`)
	assert.Contains(t, body, `"dueDate":null`)
	assert.Contains(t, body, `"fine":0`)

	book := decode[httpapi.BookDTO](t, recorder)
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, "The Great Gatsby", book.Title)
}

func Test_IssueBook_RespondsWithIssuedBook(t *testing.T) {
	// arrange
	router := givenRouter(t)
	book, member := givenBookAndMemberViaAPI(t, router)

	// act
	recorder := perform(router, http.MethodPost, "/api/books/issue", `{"bookId":"`+book.ID+`","memberId":"`+member.ID+`"}`)

	// assert
	require.Equal(t, http.StatusOK, recorder.Code)
	issued := decode[httpapi.BookDTO](t, recorder)
	assert.True(t, issued.Issued)
	require.NotNil(t, issued.IssuedToMemberID)
	assert.Equal(t, member.ID, *issued.IssuedToMemberID)
	require.NotNil(t, issued.IssueDate)
	assert.Equal(t, "2025-03-10", *issued.IssueDate)
	require.NotNil(t, issued.DueDate)
	assert.Equal(t, "2025-03-25", *issued.DueDate)

	history := decode[[]httpapi.TransactionDTO](t, perform(router, http.MethodGet, "/api/history", ""))
	require.Len(t, history, 1)
	assert.Equal(t, "Issued", history[0].Action)
	assert.Equal(t, "1984", history[0].BookTitle)
	assert.Equal(t, "Bob Williams", history[0].MemberName)
}

func Test_IssueAndReturn_RejectionsAreBadRequestsWithEmptyBody(t *testing.T) {
	router := givenRouter(t)
	book, member := givenBookAndMemberViaAPI(t, router)
	issueBody := `{"bookId":"` + book.ID + `","memberId":"` + member.ID + `"}`
	returnBody := `{"bookId":"` + book.ID + `"}`

	recorder := perform(router, http.MethodPost, "/api/books/return", returnBody)
	assert.Equal(t, http.StatusBadRequest, recorder.Code, "not issued yet")
	assert.Empty(t, recorder.Body.String())

	require.Equal(t, http.StatusOK, perform(router, http.MethodPost, "/api/books/issue", issueBody).Code)

	recorder = perform(router, http.MethodPost, "/api/books/issue", issueBody)
	assert.Equal(t, http.StatusBadRequest, recorder.Code, "already issued")
	assert.Empty(t, recorder.Body.String())

	recorder = perform(router, http.MethodPost, "/api/books/issue", `{"bookId":"unknown","memberId":"`+member.ID+`"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code, "unknown book")

	recorder = perform(router, http.MethodPost, "/api/books/return", returnBody)
	require.Equal(t, http.StatusOK, recorder.Code)
	returned := decode[httpapi.BookDTO](t, recorder)
	assert.False(t, returned.Issued)
	assert.Nil(t, returned.DueDate)

	recorder = perform(router, http.MethodPost, "/api/books/return", returnBody)
	assert.Equal(t, http.StatusBadRequest, recorder.Code, "already returned")
}

func Test_DeleteBook(t *testing.T) {
	router := givenRouter(t)
	book, member := givenBookAndMemberViaAPI(t, router)
	require.Equal(t, http.StatusOK,
		perform(router, http.MethodPost, "/api/books/issue", `{"bookId":"`+book.ID+`","memberId":"`+member.ID+`"}`).Code)

	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodDelete, "/api/books/"+book.ID, "").Code, "issued")
	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodDelete, "/api/books/unknown", "").Code, "unknown")

	require.Equal(t, http.StatusOK, perform(router, http.MethodPost, "/api/books/return", `{"bookId":"`+book.ID+`"}`).Code)

	assert.Equal(t, http.StatusNoContent, perform(router, http.MethodDelete, "/api/books/"+book.ID, "").Code)

	books := decode[[]httpapi.BookDTO](t, perform(router, http.MethodGet, "/api/books", ""))
	assert.Empty(t, books)
}

func Test_DeleteMember(t *testing.T) {
	router := givenRouter(t)
	book, member := givenBookAndMemberViaAPI(t, router)
	require.Equal(t, http.StatusOK,
		perform(router, http.MethodPost, "/api/books/issue", `{"bookId":"`+book.ID+`","memberId":"`+member.ID+`"}`).Code)

	assert.Equal(t, http.StatusConflict, perform(router, http.MethodDelete, "/api/members/"+member.ID, "").Code, "has loans")

	require.Equal(t, http.StatusOK, perform(router, http.MethodPost, "/api/books/return", `{"bookId":"`+book.ID+`"}`).Code)

	assert.Equal(t, http.StatusNoContent, perform(router, http.MethodDelete, "/api/members/"+member.ID, "").Code)
	assert.Equal(t, http.StatusConflict, perform(router, http.MethodDelete, "/api/members/"+member.ID, "").Code, "gone")

	members := decode[[]httpapi.MemberDTO](t, perform(router, http.MethodGet, "/api/members", ""))
	assert.Empty(t, members)
}

func Test_MalformedJSON_IsBadRequestWithErrorEnvelope(t *testing.T) {
	router := givenRouter(t)

	for _, path := range []string{"/api/books", "/api/members", "/api/books/issue", "/api/books/return"} {
		recorder := perform(router, http.MethodPost, path, `{"title":`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code, path)
		envelope := decode[httpapi.ErrorEnvelope](t, recorder)
		assert.Equal(t, "malformed_request", envelope.Error.Code, path)
		assert.NotEmpty(t, envelope.Error.Message, path)
	}
}

func Test_InfrastructureErrors_AreInternalServerErrors(t *testing.T) {
	router := givenRouterFor(failingLending{err: errors.Join(errors.New("max retry attempts reached"), catalog.ErrConcurrencyConflict)})

	testCases := []struct {
		method string
		path   string
		body   string
	}{
		{method: http.MethodGet, path: "/api/books"},
		{method: http.MethodPost, path: "/api/books", body: `{"title":"1984"}`},
		{method: http.MethodDelete, path: "/api/books/b-1"},
		{method: http.MethodPost, path: "/api/books/issue", body: `{"bookId":"b-1","memberId":"m-1"}`},
		{method: http.MethodPost, path: "/api/books/return", body: `{"bookId":"b-1"}`},
		{method: http.MethodGet, path: "/api/members"},
		{method: http.MethodPost, path: "/api/members", body: `{"name":"Alice Johnson"}`},
		{method: http.MethodDelete, path: "/api/members/m-1"},
		{method: http.MethodGet, path: "/api/history"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			recorder := perform(router, tc.method, tc.path, tc.body)

			assert.Equal(t, http.StatusInternalServerError, recorder.Code)
			assert.Equal(t, "internal_error", decode[httpapi.ErrorEnvelope](t, recorder).Error.Code)
		})
	}
}

func Test_CORS_AllowsTheFrontendOrigin(t *testing.T) {
	// arrange
	router := givenRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/books", nil)
	req.Header.Set("Origin", httpapi.DefaultAllowedOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()

	// act
	router.ServeHTTP(recorder, req)

	// assert
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, httpapi.DefaultAllowedOrigin, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func Test_CORS_RejectsOtherOrigins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.Header.Set("Origin", "http://evil.example")
	recorder := httptest.NewRecorder()

	givenRouter(t).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

type failingLending struct {
	err error
}

func (f failingLending) AddBook(context.Context, string, string, string) (catalog.Book, error) {
	return catalog.Book{}, f.err
}

func (f failingLending) DeleteBook(context.Context, catalog.BookID, time.Time) (bool, error) {
	return false, f.err
}

func (f failingLending) AddMember(context.Context, string) (catalog.Member, error) {
	return catalog.Member{}, f.err
}

func (f failingLending) DeleteMember(context.Context, catalog.MemberID) (bool, error) {
	return false, f.err
}

func (f failingLending) IssueBook(context.Context, catalog.BookID, catalog.MemberID, time.Time) (catalog.Book, bool, error) {
	return catalog.Book{}, false, f.err
}

func (f failingLending) ReturnBook(context.Context, catalog.BookID, time.Time) (catalog.Book, bool, error) {
	return catalog.Book{}, false, f.err
}

func (f failingLending) GetAllBooks(context.Context, time.Time) ([]catalog.Book, error) {
	return nil, f.err
}

func (f failingLending) GetAllMembers(context.Context) ([]catalog.Member, error) {
	return nil, f.err
}

func (f failingLending) GetTransactionHistory(context.Context) ([]catalog.Transaction, error) {
	return nil, f.err
}
