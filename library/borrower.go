package library

import (
	"fmt"
	"iter"
	"slices"
	"time"
)

// Borrower is a registered member and the loans they currently hold, in the
// order they were borrowed.
type Borrower struct {
	name         string
	contact      string
	membershipID string
	loans        []Loan
}

// NewBorrower returns a Borrower with no loans.
func NewBorrower(name, contact, membershipID string) *Borrower {
	return &Borrower{name: name, contact: contact, membershipID: membershipID}
}

func (b *Borrower) Name() string         { return b.name }
func (b *Borrower) Contact() string      { return b.contact }
func (b *Borrower) MembershipID() string { return b.membershipID }

// SetContact overwrites the contact details. Any string is accepted.
func (b *Borrower) SetContact(contact string) { b.contact = contact }

// AddLoan appends a loan for book. It does not look for an existing loan of the
// same ISBN; Library.BorrowBook relies on stock checks instead.
func (b *Borrower) AddLoan(book *Book, due time.Time) {
	b.loans = append(b.loans, Loan{ISBN: book.isbn, DueDate: due})
}

// RemoveLoan drops the first loan for book. When there is none the loan list is
// unchanged and an error wrapping ErrNotBorrowed is returned.
func (b *Borrower) RemoveLoan(book *Book) error {
	i := b.loanIndex(book.isbn)
	if i < 0 {
		return fmt.Errorf("%s has no loan for %q: %w", b.name, book.title, ErrNotBorrowed)
	}
	b.loans = slices.Delete(b.loans, i, i+1)
	return nil
}

// HasLoan reports whether an active loan for isbn exists.
func (b *Borrower) HasLoan(isbn string) bool { return b.loanIndex(isbn) >= 0 }

// LoanCount is the number of active loans.
func (b *Borrower) LoanCount() int { return len(b.loans) }

// Loans returns a copy of the active loans.
func (b *Borrower) Loans() []Loan { return slices.Clone(b.loans) }

// ListLoans yields each loan classified against today. A loan is overdue when
// its due date is strictly before today. The sequence can be ranged over any
// number of times and always reflects the current loans.
func (b *Borrower) ListLoans(today time.Time) iter.Seq[LoanStatus] {
	day := Day(today)
	return func(yield func(LoanStatus) bool) {
		for _, l := range b.loans {
			if !yield(LoanStatus{Loan: l, Overdue: Day(l.DueDate).Before(day)}) {
				return
			}
		}
	}
}

func (b *Borrower) loanIndex(isbn string) int {
	return slices.IndexFunc(b.loans, func(l Loan) bool { return l.ISBN == isbn })
}

func (b *Borrower) String() string {
	return fmt.Sprintf("Member: %s, ID: %s, Contact: %s", b.name, b.membershipID, b.contact)
}
