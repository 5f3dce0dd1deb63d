package library

import (
	"strings"
	"time"
)

// DefaultLoanDays is the lending period applied by BorrowBook unless overridden.
const DefaultLoanDays = 14

// Loan is a single active loan held by a borrower.
type Loan struct {
	ISBN    string    `json:"isbn"`
	DueDate time.Time `json:"due_date"`
}

// LoanStatus is a Loan classified against a reference day.
type LoanStatus struct {
	Loan
	Overdue bool `json:"overdue"`
}

// Label is "OVERDUE" or "On time".
func (s LoanStatus) Label() string {
	if s.Overdue {
		return "OVERDUE"
	}
	return "On time"
}

// BorrowReceipt describes a successful BorrowBook.
type BorrowReceipt struct {
	BorrowerName string
	BookTitle    string
	DueDate      time.Time
}

// ReturnReceipt describes a successful ReturnBook.
type ReturnReceipt struct {
	BorrowerName string
	BookTitle    string
}

// SearchField selects which Book attribute SearchBooks matches against.
type SearchField string

const (
	ByTitle  SearchField = "title"
	ByAuthor SearchField = "author"
	ByGenre  SearchField = "genre"
)

func (f SearchField) value(b *Book) (string, bool) {
	switch f {
	case ByTitle:
		return b.title, true
	case ByAuthor:
		return b.author, true
	case ByGenre:
		return b.genre, true
	}
	return "", false
}

// Day truncates t to midnight in its own location. Due dates and overdue checks
// compare calendar days only.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateString formats a calendar day as YYYY-MM-DD.
func DateString(t time.Time) string { return t.Format(time.DateOnly) }

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
