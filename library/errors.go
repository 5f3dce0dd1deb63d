package library

import (
	"errors"
	"fmt"
)

// Outcome kinds reported by Library operations. Callers match them with errors.Is.
var (
	ErrDuplicateKey        = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrUnavailable         = errors.New("out of stock")
	ErrNotBorrowed         = errors.New("not borrowed by this member")
	ErrHasOutstandingLoans = errors.New("has outstanding loans")
	ErrInvalidQuantity     = errors.New("quantity cannot be negative")
	ErrMalformedQuantity   = errors.New("quantity is not a whole number")
	ErrInvalidSearchField  = errors.New("invalid search field")
)

// ErrBookNotFound and ErrBorrowerNotFound both match ErrNotFound.
var (
	ErrBookNotFound     = fmt.Errorf("book %w", ErrNotFound)
	ErrBorrowerNotFound = fmt.Errorf("borrower %w", ErrNotFound)
)
