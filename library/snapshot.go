package library

import (
	"io"
	"slices"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BookView is the exported form of a Book.
type BookView struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Genre     string `json:"genre"`
	Quantity  int    `json:"quantity"`
	Available bool   `json:"available"`
	Status    string `json:"status"`
}

// BorrowerView is the exported form of a Borrower with loans classified
// against the snapshot day.
type BorrowerView struct {
	Name         string       `json:"name"`
	Contact      string       `json:"contact"`
	MembershipID string       `json:"membership_id"`
	Loans        []LoanStatus `json:"loans"`
}

// Snapshot is a point-in-time copy of the whole library.
type Snapshot struct {
	TakenAt   time.Time      `json:"taken_at"`
	Books     []BookView     `json:"books"`
	Borrowers []BorrowerView `json:"borrowers"`
}

// Snapshot copies the current catalog and registry. It does not change state.
func (l *Library) Snapshot() Snapshot {
	now := l.now()
	s := Snapshot{
		TakenAt:   now,
		Books:     make([]BookView, 0, len(l.bookOrder)),
		Borrowers: make([]BorrowerView, 0, len(l.borrowerOrder)),
	}
	for _, b := range l.Books() {
		s.Books = append(s.Books, BookView{
			Title:     b.title,
			Author:    b.author,
			ISBN:      b.isbn,
			Genre:     b.genre,
			Quantity:  b.quantity,
			Available: b.Available(),
			Status:    b.Status(),
		})
	}
	for _, br := range l.Borrowers() {
		loans := slices.Collect(br.ListLoans(now))
		if loans == nil {
			loans = []LoanStatus{}
		}
		s.Borrowers = append(s.Borrowers, BorrowerView{
			Name:         br.name,
			Contact:      br.contact,
			MembershipID: br.membershipID,
			Loans:        loans,
		})
	}
	return s
}

// WriteSnapshot encodes s as indented JSON.
func WriteSnapshot(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
