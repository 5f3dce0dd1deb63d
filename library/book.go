package library

import "fmt"

// Book is one catalog title and the number of copies the library owns.
// Availability is never stored; it is derived from the quantity on every read.
type Book struct {
	title    string
	author   string
	isbn     string
	genre    string
	quantity int
}

// NewBook builds a Book. The quantity is trusted here; Library.AddBook rejects
// negative values before calling it.
func NewBook(title, author, isbn, genre string, quantity int) *Book {
	return &Book{
		title:    title,
		author:   author,
		isbn:     isbn,
		genre:    genre,
		quantity: quantity,
	}
}

func (b *Book) Title() string  { return b.title }
func (b *Book) Author() string { return b.author }
func (b *Book) ISBN() string   { return b.isbn }
func (b *Book) Genre() string  { return b.genre }
func (b *Book) Quantity() int  { return b.quantity }

// Available reports whether at least one copy is on the shelf.
func (b *Book) Available() bool { return b.quantity > 0 }

// Status is the display label for Available.
func (b *Book) Status() string {
	if b.Available() {
		return "Available"
	}
	return "Out of Stock"
}

// SetQuantity replaces the stock count. A negative value leaves the book
// untouched and returns ErrInvalidQuantity.
func (b *Book) SetQuantity(n int) error {
	if n < 0 {
		return fmt.Errorf("%q: %w", b.title, ErrInvalidQuantity)
	}
	b.quantity = n
	return nil
}

func (b *Book) String() string {
	return fmt.Sprintf("Title: %s, Author: %s, ISBN: %s, Genre: %s, Quantity: %d (%s)",
		b.title, b.author, b.isbn, b.genre, b.quantity, b.Status())
}
