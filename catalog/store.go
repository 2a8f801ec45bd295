package catalog

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-lending-go/fine"
)

// Store is the in-memory owner of books, members, and the transaction log.
// It is safe for concurrent use. Construct it with NewStore and share it by reference.
type Store struct {
	mu sync.RWMutex

	books        []Book        // most recently added first
	members      []Member      // registration order
	transactions []Transaction // oldest first, ListTransactions reverses

	sequences          map[entityKey]SequenceNumber // kept after removal, so stale decisions still conflict
	lastSequenceNumber SequenceNumber

	finePolicy       fine.Policy
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// NewStore creates an empty Store.
func NewStore(options ...Option) (*Store, error) {
	s := &Store{
		sequences:  make(map[entityKey]SequenceNumber),
		finePolicy: fine.DefaultPolicy(),
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

/***** single operations *****/

// ListBooks returns a snapshot of all books, most recently added first.
// Every stored fine is recomputed for today and written back before the snapshot is taken.
func (s *Store) ListBooks(ctx context.Context, today time.Time) []Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		s.books[i].Fine = s.finePolicy.Fine(s.books[i].DueDate, today)
	}

	s.recordValue(ctx, metricBooksTotal, float64(len(s.books)))

	return slices.Clone(s.books)
}

// ListMembers returns a snapshot of all members in registration order.
func (s *Store) ListMembers(_ context.Context) []Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.members)
}

// FindBook returns a copy of the book with the given id.
func (s *Store) FindBook(_ context.Context, id BookID) (Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := slices.IndexFunc(s.books, func(b Book) bool { return b.ID == id })
	if idx < 0 {
		return Book{}, false
	}

	return s.books[idx], true
}

// FindMember returns a copy of the member with the given id.
func (s *Store) FindMember(_ context.Context, id MemberID) (Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := slices.IndexFunc(s.members, func(m Member) bool { return m.ID == id })
	if idx < 0 {
		return Member{}, false
	}

	return s.members[idx], true
}

// InsertBook stores a new book at the front of the listing order.
func (s *Store) InsertBook(ctx context.Context, book Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.applyLocked(ctx, PutNewBook(book))

	return err
}

// InsertMember stores a new member at the end of the registration order.
func (s *Store) InsertMember(ctx context.Context, member Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.applyLocked(ctx, PutNewMember(member))

	return err
}

// RemoveBook removes the book with the given id and reports whether it existed.
func (s *Store) RemoveBook(ctx context.Context, id BookID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.applyLocked(ctx, DeleteBook(id))

	return err == nil
}

// RemoveMember removes the member with the given id and reports whether it existed.
func (s *Store) RemoveMember(ctx context.Context, id MemberID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.applyLocked(ctx, DeleteMember(id))

	return err == nil
}

// AppendTransaction prepends an entry to the transaction log and returns the stamped copy.
func (s *Store) AppendTransaction(ctx context.Context, transaction Transaction) Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	// recording a transaction can't fail
	seq, _ := s.applyLocked(ctx, RecordTransaction(transaction))
	transaction.SequenceNumber = seq

	return transaction
}

// ListTransactions returns a snapshot of the transaction log, most recent first.
func (s *Store) ListTransactions(_ context.Context) []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listed := slices.Clone(s.transactions)
	slices.Reverse(listed)

	return listed
}

/***** conditional operations *****/

// Query returns a View of the entities matched by the filter together with the highest sequence number
// of any change that touched one of them, removed entities included.
//
// The returned SequenceNumber is meant to be handed to Append together with the same filter.
func (s *Store) Query(ctx context.Context, filter Filter) (View, SequenceNumber, error) {
	ctx, span := s.startSpan(ctx, spanNameQuery, map[string]string{spanAttrOperation: operationQuery})
	start := time.Now()

	if err := ctx.Err(); err != nil {
		s.finishSpanError(span, errorTypeCanceled)
		s.recordDuration(ctx, metricQueryDuration, time.Since(start), operationQuery, statusError)

		return View{}, 0, err
	}

	s.mu.RLock()
	view := s.viewLocked(filter)
	maxSeq := s.maxSequenceNumberLocked(filter)
	s.mu.RUnlock()

	duration := time.Since(start)
	s.recordDuration(ctx, metricQueryDuration, duration, operationQuery, statusSuccess)
	s.finishSpanSuccess(span, map[string]string{spanAttrMaxSequence: formatSequence(maxSeq)})
	s.logDebug(
		ctx,
		logMsgQueryCompleted,
		logAttrBookCount, len(view.books),
		logAttrMemberCount, len(view.members),
		logAttrSequence, maxSeq,
		logAttrDurationMS, toMilliseconds(duration),
	)

	return view, maxSeq, nil
}

// Append applies one or multiple mutations atomically, but only if the highest sequence number of the entities
// matched by the filter still equals expectedMaxSequenceNumber. Otherwise, it returns ErrConcurrencyConflict.
//
// The filter should be the one used for the Query the decision was made on.
// If any mutation is invalid, nothing is applied and its error is returned.
// On success, it returns the sequence number stamped on the touched entities and recorded transactions.
func (s *Store) Append(
	ctx context.Context,
	filter Filter,
	expectedMaxSequenceNumber SequenceNumber,
	mutation Mutation,
	additionalMutations ...Mutation,
) (SequenceNumber, error) {
	allMutations := append([]Mutation{mutation}, additionalMutations...)

	ctx, span := s.startSpan(ctx, spanNameAppend, map[string]string{
		spanAttrOperation:   operationAppend,
		spanAttrMutations:   strconv.Itoa(len(allMutations)),
		spanAttrExpectedSeq: formatSequence(expectedMaxSequenceNumber),
	})
	start := time.Now()

	if err := ctx.Err(); err != nil {
		s.finishSpanError(span, errorTypeCanceled)
		s.recordDuration(ctx, metricAppendDuration, time.Since(start), operationAppend, statusError)

		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if currentMaxSeq := s.maxSequenceNumberLocked(filter); currentMaxSeq != expectedMaxSequenceNumber {
		s.incrementCounter(ctx, metricConcurrencyConflicts, operationAppend)
		s.recordDuration(ctx, metricAppendDuration, time.Since(start), operationAppend, statusError)
		s.finishSpanError(span, errorTypeConcurrencyConflict)
		s.logInfo(
			ctx,
			logMsgConcurrencyConflict,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
			logAttrCurrentSequence, currentMaxSeq,
		)

		return 0, ErrConcurrencyConflict
	}

	seq, err := s.applyLocked(ctx, allMutations...)
	if err != nil {
		s.recordDuration(ctx, metricAppendDuration, time.Since(start), operationAppend, statusError)
		s.finishSpanError(span, errorTypeInvalidMutation)

		return 0, err
	}

	duration := time.Since(start)
	s.recordDuration(ctx, metricAppendDuration, duration, operationAppend, statusSuccess)
	s.finishSpanSuccess(span, map[string]string{spanAttrMaxSequence: formatSequence(seq)})
	s.logDebug(
		ctx,
		logMsgMutationsAppended,
		logAttrMutations, mutationKinds(allMutations),
		logAttrSequence, seq,
		logAttrDurationMS, toMilliseconds(duration),
	)

	return seq, nil
}

/***** internals, callers hold the lock *****/

// applyLocked applies the batch on copies and swaps them in only if every mutation succeeded.
func (s *Store) applyLocked(ctx context.Context, mutations ...Mutation) (SequenceNumber, error) {
	st := &stagedState{
		books:    slices.Clone(s.books),
		members:  slices.Clone(s.members),
		sequence: s.lastSequenceNumber + 1,
	}

	for _, mutation := range mutations {
		if err := mutation.apply(st); err != nil {
			s.incrementCounter(ctx, metricInvalidMutations, mutation.Kind())
			s.logError(ctx, logMsgInvalidMutation, err, "mutation", mutation.Kind())

			return 0, err
		}
	}

	s.books = st.books
	s.members = st.members
	s.transactions = append(s.transactions, st.recorded...)

	for _, key := range st.touched {
		s.sequences[key] = st.sequence
	}

	s.lastSequenceNumber = st.sequence

	return st.sequence, nil
}

func (s *Store) viewLocked(filter Filter) View {
	view := View{}

	for _, book := range s.books {
		if filter.matchesBook(book) {
			view.books = append(view.books, book)
		}
	}

	borrowers := make(map[MemberID]struct{})
	if filter.includeBorrowers {
		for _, book := range view.books {
			if book.Issued {
				borrowers[book.IssuedToMemberID] = struct{}{}
			}
		}
	}

	for _, member := range s.members {
		_, isBorrower := borrowers[member.ID]
		if isBorrower || filter.matchesMember(member) {
			view.members = append(view.members, member)
		}
	}

	return view
}

func (s *Store) maxSequenceNumberLocked(filter Filter) SequenceNumber {
	var maxSeq SequenceNumber

	consider := func(key entityKey) {
		if seq := s.sequences[key]; seq > maxSeq {
			maxSeq = seq
		}
	}

	for _, id := range filter.bookIDs {
		consider(bookKey(id))
	}

	for _, id := range slices.Concat(filter.memberIDs, filter.borrowerIDs) {
		consider(memberKey(id))
	}

	for _, book := range s.books {
		if !filter.matchesBook(book) {
			continue
		}

		consider(bookKey(book.ID))

		if filter.includeBorrowers && book.Issued {
			consider(memberKey(book.IssuedToMemberID))
		}
	}

	return maxSeq
}

func mutationKinds(mutations []Mutation) []string {
	kinds := make([]string, 0, len(mutations))
	for _, mutation := range mutations {
		kinds = append(kinds, mutation.Kind())
	}

	return kinds
}
