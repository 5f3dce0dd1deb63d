package library

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"
)

// Recorder receives circulation events after a borrow or return succeeds.
type Recorder interface {
	Record(e Event) error
}

// Library owns the catalog and the member registry and carries out every
// operation that touches both. It is not safe for concurrent use.
type Library struct {
	books     map[string]*Book
	bookOrder []string

	borrowers     map[string]*Borrower
	borrowerOrder []string

	loanDays     int
	guardRemoval bool
	now          func() time.Time
	log          *slog.Logger
	recorder     Recorder
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(lib *Library) { lib.log = l }
}

// WithClock replaces time.Now for due dates and overdue checks.
func WithClock(now func() time.Time) Option {
	return func(lib *Library) { lib.now = now }
}

// WithLoanDays sets the lending period. Non-positive values keep the default.
func WithLoanDays(days int) Option {
	return func(lib *Library) {
		if days > 0 {
			lib.loanDays = days
		}
	}
}

// WithGuardedBookRemoval makes RemoveBook refuse titles that are still on loan.
func WithGuardedBookRemoval() Option {
	return func(lib *Library) { lib.guardRemoval = true }
}

// WithRecorder sends borrow and return events to r.
func WithRecorder(r Recorder) Option {
	return func(lib *Library) { lib.recorder = r }
}

// NewLibrary returns an empty Library.
func NewLibrary(opts ...Option) *Library {
	lib := &Library{
		books:     make(map[string]*Book),
		borrowers: make(map[string]*Borrower),
		loanDays:  DefaultLoanDays,
		now:       time.Now,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(lib)
	}
	return lib
}

// Today is the current calendar day according to the library clock.
func (l *Library) Today() time.Time { return Day(l.now()) }

// ------------------ Book management ------------------

// AddBook stores a new title. The ISBN must be unused and the quantity
// non-negative.
func (l *Library) AddBook(title, author, isbn, genre string, quantity int) (*Book, error) {
	if _, ok := l.books[isbn]; ok {
		return nil, fmt.Errorf("book with ISBN %s %w", isbn, ErrDuplicateKey)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%q: %w", title, ErrInvalidQuantity)
	}
	b := NewBook(title, author, isbn, genre, quantity)
	l.books[isbn] = b
	l.bookOrder = append(l.bookOrder, isbn)
	l.log.Info("book added", "isbn", isbn, "title", title, "quantity", quantity)
	return b, nil
}

// UpdateBookQuantity sets the stock of an existing title.
func (l *Library) UpdateBookQuantity(isbn string, quantity int) (*Book, error) {
	b, ok := l.books[isbn]
	if !ok {
		return nil, fmt.Errorf("isbn %s: %w", isbn, ErrBookNotFound)
	}
	if err := b.SetQuantity(quantity); err != nil {
		l.log.Warn("quantity update rejected", "isbn", isbn, "quantity", quantity, "err", err)
		return b, err
	}
	l.log.Info("quantity updated", "isbn", isbn, "quantity", quantity)
	return b, nil
}

// RemoveBook deletes a title from the catalog. Outstanding loans for it are
// not checked unless the library was built WithGuardedBookRemoval.
func (l *Library) RemoveBook(isbn string) (*Book, error) {
	b, ok := l.books[isbn]
	if !ok {
		return nil, fmt.Errorf("isbn %s: %w", isbn, ErrBookNotFound)
	}
	if l.guardRemoval {
		for _, id := range l.borrowerOrder {
			if l.borrowers[id].HasLoan(isbn) {
				return nil, fmt.Errorf("%q is on loan to %s: %w", b.title, id, ErrHasOutstandingLoans)
			}
		}
	}
	delete(l.books, isbn)
	l.bookOrder = removeKey(l.bookOrder, isbn)
	l.log.Info("book removed", "isbn", isbn, "title", b.title)
	return b, nil
}

// Book looks up a title by ISBN.
func (l *Library) Book(isbn string) (*Book, bool) {
	b, ok := l.books[isbn]
	return b, ok
}

// Books returns the catalog in the order titles were added.
func (l *Library) Books() []*Book {
	out := make([]*Book, 0, len(l.bookOrder))
	for _, isbn := range l.bookOrder {
		out = append(out, l.books[isbn])
	}
	return out
}

// ------------------ Borrower management ------------------

// AddBorrower registers a new member under an unused membership ID.
func (l *Library) AddBorrower(name, contact, membershipID string) (*Borrower, error) {
	if _, ok := l.borrowers[membershipID]; ok {
		return nil, fmt.Errorf("borrower with ID %s %w", membershipID, ErrDuplicateKey)
	}
	b := NewBorrower(name, contact, membershipID)
	l.borrowers[membershipID] = b
	l.borrowerOrder = append(l.borrowerOrder, membershipID)
	l.log.Info("borrower registered", "membership_id", membershipID, "name", name)
	return b, nil
}

// UpdateBorrowerContact overwrites a member's contact details.
func (l *Library) UpdateBorrowerContact(membershipID, contact string) (*Borrower, error) {
	b, ok := l.borrowers[membershipID]
	if !ok {
		return nil, fmt.Errorf("membership ID %s: %w", membershipID, ErrBorrowerNotFound)
	}
	b.SetContact(contact)
	l.log.Info("contact updated", "membership_id", membershipID)
	return b, nil
}

// RemoveBorrower deletes a member who holds no loans.
func (l *Library) RemoveBorrower(membershipID string) (*Borrower, error) {
	b, ok := l.borrowers[membershipID]
	if !ok {
		return nil, fmt.Errorf("membership ID %s: %w", membershipID, ErrBorrowerNotFound)
	}
	if b.LoanCount() > 0 {
		return nil, fmt.Errorf("cannot remove %s: %w", b.name, ErrHasOutstandingLoans)
	}
	delete(l.borrowers, membershipID)
	l.borrowerOrder = removeKey(l.borrowerOrder, membershipID)
	l.log.Info("borrower removed", "membership_id", membershipID, "name", b.name)
	return b, nil
}

// Borrower looks up a member by membership ID.
func (l *Library) Borrower(membershipID string) (*Borrower, bool) {
	b, ok := l.borrowers[membershipID]
	return b, ok
}

// Borrowers returns every member in registration order.
func (l *Library) Borrowers() []*Borrower {
	out := make([]*Borrower, 0, len(l.borrowerOrder))
	for _, id := range l.borrowerOrder {
		out = append(out, l.borrowers[id])
	}
	return out
}

// ------------------ Circulation ------------------

// BorrowBook lends one copy of isbn to the member. All checks run before any
// state changes: borrower, then book, then stock.
func (l *Library) BorrowBook(membershipID, isbn string) (BorrowReceipt, error) {
	borrower, ok := l.borrowers[membershipID]
	if !ok {
		return BorrowReceipt{}, fmt.Errorf("membership ID %s: %w", membershipID, ErrBorrowerNotFound)
	}
	book, ok := l.books[isbn]
	if !ok {
		return BorrowReceipt{}, fmt.Errorf("isbn %s: %w", isbn, ErrBookNotFound)
	}
	if !book.Available() {
		return BorrowReceipt{}, fmt.Errorf("%q: %w", book.title, ErrUnavailable)
	}

	book.quantity--
	now := l.now()
	due := Day(now).AddDate(0, 0, l.loanDays)
	borrower.AddLoan(book, due)

	l.log.Info("book borrowed", "membership_id", membershipID, "isbn", isbn, "due", DateString(due))
	l.record(Event{MembershipID: membershipID, ISBN: isbn, Action: ActionBorrow, OccurredAt: now, DueDate: &due})

	return BorrowReceipt{BorrowerName: borrower.name, BookTitle: book.title, DueDate: due}, nil
}

// ReturnBook takes back a copy of isbn from the member.
func (l *Library) ReturnBook(membershipID, isbn string) (ReturnReceipt, error) {
	borrower, ok := l.borrowers[membershipID]
	if !ok {
		return ReturnReceipt{}, fmt.Errorf("membership ID %s: %w", membershipID, ErrBorrowerNotFound)
	}
	book, ok := l.books[isbn]
	if !ok {
		return ReturnReceipt{}, fmt.Errorf("isbn %s: %w", isbn, ErrBookNotFound)
	}
	if !borrower.HasLoan(isbn) {
		return ReturnReceipt{}, fmt.Errorf("%s and %q: %w", borrower.name, book.title, ErrNotBorrowed)
	}

	book.quantity++
	if err := borrower.RemoveLoan(book); err != nil {
		// HasLoan passed above, so this means the loan list changed underneath us.
		l.log.Error("loan records inconsistent", "membership_id", membershipID, "isbn", isbn, "err", err)
	}

	l.log.Info("book returned", "membership_id", membershipID, "isbn", isbn)
	l.record(Event{MembershipID: membershipID, ISBN: isbn, Action: ActionReturn, OccurredAt: l.now()})

	return ReturnReceipt{BorrowerName: borrower.name, BookTitle: book.title}, nil
}

func (l *Library) record(e Event) {
	if l.recorder == nil {
		return
	}
	if err := l.recorder.Record(e); err != nil {
		l.log.Warn("circulation event not recorded", "action", e.Action, "err", err)
	}
}

// ------------------ Search ------------------

// SearchBooks returns the titles whose field contains term, ignoring case, in
// catalog order. No match yields an empty, non-nil slice.
func (l *Library) SearchBooks(term string, field SearchField) ([]*Book, error) {
	if _, ok := field.value(&Book{}); !ok {
		return nil, fmt.Errorf("%q: %w", field, ErrInvalidSearchField)
	}
	results := []*Book{}
	for _, isbn := range l.bookOrder {
		b := l.books[isbn]
		if v, _ := field.value(b); containsFold(v, term) {
			results = append(results, b)
		}
	}
	return results, nil
}

func removeKey(keys []string, key string) []string {
	if i := slices.Index(keys, key); i >= 0 {
		return slices.Delete(keys, i, i+1)
	}
	return keys
}
