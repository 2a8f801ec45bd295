package lending

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/journal"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/addbook"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/addmember"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/deletebook"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/deletemember"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/issuebook"
	"github.com/AntonStoeckl/library-lending-go/lending/features/command/returnbook"
	"github.com/AntonStoeckl/library-lending-go/lending/features/query/listbooks"
	"github.com/AntonStoeckl/library-lending-go/lending/features/query/listmembers"
	"github.com/AntonStoeckl/library-lending-go/lending/features/query/transactionhistory"
	"github.com/AntonStoeckl/library-lending-go/lending/shell"
	"github.com/AntonStoeckl/library-lending-go/lending/shell/observable"
)

const (
	logMsgJournalRecordFailed = "journal: failed to record transaction"
	logAttrSequence           = "sequence"
	logAttrAction             = "action"
)

// Store is everything the Engine needs from the catalog.
type Store interface {
	Query(ctx context.Context, filter catalog.Filter) (catalog.View, catalog.SequenceNumber, error)
	Append(
		ctx context.Context,
		filter catalog.Filter,
		expectedMaxSequenceNumber catalog.SequenceNumber,
		mutation catalog.Mutation,
		additionalMutations ...catalog.Mutation,
	) (catalog.SequenceNumber, error)
	ListBooks(ctx context.Context, today time.Time) []catalog.Book
	ListMembers(ctx context.Context) []catalog.Member
	ListTransactions(ctx context.Context) []catalog.Transaction
}

// Engine is the Lending Engine. It is safe for concurrent use.
type Engine struct {
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	journal          journal.Journal
	retryOptions     []shell.RetryOption
	generateID       func() string

	addBook      shell.CommandHandler[addbook.Command, addbook.Result]
	deleteBook   shell.CommandHandler[deletebook.Command, deletebook.Result]
	addMember    shell.CommandHandler[addmember.Command, addmember.Result]
	deleteMember shell.CommandHandler[deletemember.Command, deletemember.Result]
	issueBook    shell.CommandHandler[issuebook.Command, issuebook.Result]
	returnBook   shell.CommandHandler[returnbook.Command, returnbook.Result]

	listBooks          shell.QueryHandler[listbooks.Query, listbooks.Books]
	listMembers        shell.QueryHandler[listmembers.Query, listmembers.Members]
	transactionHistory shell.QueryHandler[transactionhistory.Query, transactionhistory.History]
}

// NewEngine creates an Engine on top of store.
func NewEngine(store Store, options ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	e := &Engine{generateID: uuid.NewString}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	var err error

	if e.addBook, err = wrapCommand[addbook.Command, addbook.Result](e, addbook.NewCommandHandler(store,
		addbook.WithRetryOptions(e.retryOptionsFor(addbook.Command{})...))); err != nil {
		return nil, err
	}

	if e.deleteBook, err = wrapCommand[deletebook.Command, deletebook.Result](e, deletebook.NewCommandHandler(store,
		deletebook.WithRetryOptions(e.retryOptionsFor(deletebook.Command{})...))); err != nil {
		return nil, err
	}

	if e.addMember, err = wrapCommand[addmember.Command, addmember.Result](e, addmember.NewCommandHandler(store,
		addmember.WithRetryOptions(e.retryOptionsFor(addmember.Command{})...))); err != nil {
		return nil, err
	}

	if e.deleteMember, err = wrapCommand[deletemember.Command, deletemember.Result](e, deletemember.NewCommandHandler(store,
		deletemember.WithRetryOptions(e.retryOptionsFor(deletemember.Command{})...))); err != nil {
		return nil, err
	}

	if e.issueBook, err = wrapCommand[issuebook.Command, issuebook.Result](e, issuebook.NewCommandHandler(store,
		issuebook.WithRetryOptions(e.retryOptionsFor(issuebook.Command{})...))); err != nil {
		return nil, err
	}

	if e.returnBook, err = wrapCommand[returnbook.Command, returnbook.Result](e, returnbook.NewCommandHandler(store,
		returnbook.WithRetryOptions(e.retryOptionsFor(returnbook.Command{})...))); err != nil {
		return nil, err
	}

	if e.listBooks, err = wrapQuery[listbooks.Query, listbooks.Books](e, listbooks.NewQueryHandler(store)); err != nil {
		return nil, err
	}

	if e.listMembers, err = wrapQuery[listmembers.Query, listmembers.Members](e, listmembers.NewQueryHandler(store)); err != nil {
		return nil, err
	}

	if e.transactionHistory, err = wrapQuery[transactionhistory.Query, transactionhistory.History](e, transactionhistory.NewQueryHandler(store)); err != nil {
		return nil, err
	}

	return e, nil
}

// AddBook adds an available book with a fresh id to the front of the catalog.
func (e *Engine) AddBook(ctx context.Context, title, author, genre string) (catalog.Book, error) {
	result, err := e.addBook.Handle(ctx, addbook.BuildCommand(e.generateID(), title, author, genre))
	if err != nil {
		return catalog.Book{}, err
	}

	if result.Rejected {
		return catalog.Book{}, catalog.ErrDuplicateID
	}

	return result.Book, nil
}

// DeleteBook removes a book that is not issued and records a Deleted transaction.
// It reports false when the book is unknown or currently issued.
func (e *Engine) DeleteBook(ctx context.Context, id catalog.BookID, now time.Time) (bool, error) {
	result, err := e.deleteBook.Handle(ctx, deletebook.BuildCommand(id, now))
	if err != nil {
		return false, err
	}

	if result.Rejected {
		return false, nil
	}

	e.mirror(ctx, result.Transaction)

	return true, nil
}

// AddMember registers a member with a fresh id.
func (e *Engine) AddMember(ctx context.Context, name string) (catalog.Member, error) {
	result, err := e.addMember.Handle(ctx, addmember.BuildCommand(e.generateID(), name))
	if err != nil {
		return catalog.Member{}, err
	}

	if result.Rejected {
		return catalog.Member{}, catalog.ErrDuplicateID
	}

	return result.Member, nil
}

// DeleteMember removes a member without outstanding loans.
// It reports false when the member is unknown or has books issued.
func (e *Engine) DeleteMember(ctx context.Context, id catalog.MemberID) (bool, error) {
	result, err := e.deleteMember.Handle(ctx, deletemember.BuildCommand(id))
	if err != nil {
		return false, err
	}

	return !result.Rejected, nil
}

// IssueBook lends a book to a member for LoanPeriodDays, starting on the calendar date of now.
func (e *Engine) IssueBook(
	ctx context.Context,
	bookID catalog.BookID,
	memberID catalog.MemberID,
	now time.Time,
) (catalog.Book, bool, error) {

	result, err := e.issueBook.Handle(ctx, issuebook.BuildCommand(bookID, memberID, now))
	if err != nil {
		return catalog.Book{}, false, err
	}

	if result.Rejected {
		return catalog.Book{}, false, nil
	}

	e.mirror(ctx, result.Transaction)

	return result.Book, true, nil
}

// ReturnBook takes an issued book back and clears its loan and fine.
func (e *Engine) ReturnBook(ctx context.Context, bookID catalog.BookID, now time.Time) (catalog.Book, bool, error) {
	result, err := e.returnBook.Handle(ctx, returnbook.BuildCommand(bookID, now))
	if err != nil {
		return catalog.Book{}, false, err
	}

	if result.Rejected {
		return catalog.Book{}, false, nil
	}

	e.mirror(ctx, result.Transaction)

	return result.Book, true, nil
}

// GetAllBooks lists all books, most recently added first, with fines as of today.
func (e *Engine) GetAllBooks(ctx context.Context, today time.Time) ([]catalog.Book, error) {
	result, err := e.listBooks.Handle(ctx, listbooks.BuildQuery(today))
	if err != nil {
		return nil, err
	}

	return result.Books, nil
}

// GetAllMembers lists all members in registration order.
func (e *Engine) GetAllMembers(ctx context.Context) ([]catalog.Member, error) {
	result, err := e.listMembers.Handle(ctx, listmembers.BuildQuery())
	if err != nil {
		return nil, err
	}

	return result.Members, nil
}

// GetTransactionHistory lists the transaction log, most recent first.
func (e *Engine) GetTransactionHistory(ctx context.Context) ([]catalog.Transaction, error) {
	result, err := e.transactionHistory.Handle(ctx, transactionhistory.BuildQuery())
	if err != nil {
		return nil, err
	}

	return result.Transactions, nil
}

// mirror hands a committed transaction to the journal. A failure never changes the operation result.
func (e *Engine) mirror(ctx context.Context, transaction catalog.Transaction) {
	if e.journal == nil {
		return
	}

	err := e.journal.Record(ctx, transaction)
	if err == nil {
		return
	}

	args := []any{
		shell.LogAttrError, err.Error(),
		logAttrSequence, transaction.SequenceNumber,
		logAttrAction, transaction.Action.String(),
	}

	if e.contextualLogger != nil {
		e.contextualLogger.WarnContext(ctx, logMsgJournalRecordFailed, args...)
	} else if e.logger != nil {
		e.logger.Warn(logMsgJournalRecordFailed, args...)
	}
}

func (e *Engine) retryOptionsFor(command shell.Command) []shell.RetryOption {
	opts := make([]shell.RetryOption, 0, len(e.retryOptions)+1)
	opts = append(opts, e.retryOptions...)

	if e.metricsCollector != nil {
		opts = append(opts, shell.WithMetrics(e.metricsCollector, command.CommandType()))
	}

	return opts
}

func wrapCommand[C shell.Command, R shell.CommandResult](
	e *Engine,
	coreHandler shell.CommandHandler[C, R],
) (shell.CommandHandler[C, R], error) {

	var opts []observable.CommandOption[C, R]

	if e.metricsCollector != nil {
		opts = append(opts, observable.WithCommandMetrics[C, R](e.metricsCollector))
	}

	if e.tracingCollector != nil {
		opts = append(opts, observable.WithCommandTracing[C, R](e.tracingCollector))
	}

	if e.contextualLogger != nil {
		opts = append(opts, observable.WithCommandContextualLogging[C, R](e.contextualLogger))
	}

	if e.logger != nil {
		opts = append(opts, observable.WithCommandLogging[C, R](e.logger))
	}

	wrapper, err := observable.NewCommandWrapper(coreHandler, opts...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

func wrapQuery[Q shell.Query, R shell.QueryResult](
	e *Engine,
	coreHandler shell.QueryHandler[Q, R],
) (shell.QueryHandler[Q, R], error) {

	var opts []observable.QueryOption[Q, R]

	if e.metricsCollector != nil {
		opts = append(opts, observable.WithQueryMetrics[Q, R](e.metricsCollector))
	}

	if e.tracingCollector != nil {
		opts = append(opts, observable.WithQueryTracing[Q, R](e.tracingCollector))
	}

	if e.contextualLogger != nil {
		opts = append(opts, observable.WithQueryContextualLogging[Q, R](e.contextualLogger))
	}

	if e.logger != nil {
		opts = append(opts, observable.WithQueryLogging[Q, R](e.logger))
	}

	wrapper, err := observable.NewQueryWrapper(coreHandler, opts...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}
