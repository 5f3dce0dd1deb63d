package library

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookQuantity(t *testing.T) {
	b := NewBook("Dune", "Frank Herbert", "978-0441013593", "Sci-Fi", 0)
	assert.False(t, b.Available())
	assert.Equal(t, "Title: Dune, Author: Frank Herbert, ISBN: 978-0441013593, Genre: Sci-Fi, Quantity: 0 (Out of Stock)", b.String())

	require.NoError(t, b.SetQuantity(3))
	assert.True(t, b.Available())
	assert.Contains(t, b.String(), "Quantity: 3 (Available)")

	require.ErrorIs(t, b.SetQuantity(-1), ErrInvalidQuantity)
	assert.Equal(t, 3, b.Quantity())
}

func TestBorrowerLoans(t *testing.T) {
	m := NewBorrower("Alice Smith", "alice@email.com", "M001")
	assert.Equal(t, "Member: Alice Smith, ID: M001, Contact: alice@email.com", m.String())

	dune := NewBook("Dune", "Frank Herbert", "978-0441013593", "Sci-Fi", 1)
	emma := NewBook("Emma", "Jane Austen", "978-0141439587", "Classic", 1)
	due := time.Date(2025, time.March, 24, 0, 0, 0, 0, time.UTC)

	m.AddLoan(dune, due)
	m.AddLoan(emma, due)
	m.AddLoan(dune, due)
	require.Equal(t, 3, m.LoanCount())

	require.NoError(t, m.RemoveLoan(dune))
	loans := m.Loans()
	require.Len(t, loans, 2)
	assert.Equal(t, "978-0141439587", loans[0].ISBN)
	assert.Equal(t, "978-0441013593", loans[1].ISBN)

	other := NewBook("Ulysses", "James Joyce", "978-0199535675", "Modernist", 1)
	require.ErrorIs(t, m.RemoveLoan(other), ErrNotBorrowed)
	assert.Equal(t, 2, m.LoanCount())

	m.SetContact("555-0100")
	assert.Equal(t, "555-0100", m.Contact())
}

func TestListLoansOverdue(t *testing.T) {
	m := NewBorrower("Bob Johnson", "bob@email.com", "M002")
	a := NewBook("A", "x", "isbn-a", "g", 1)
	b := NewBook("B", "x", "isbn-b", "g", 1)
	c := NewBook("C", "x", "isbn-c", "g", 1)

	today := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	m.AddLoan(a, time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC))
	m.AddLoan(b, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	m.AddLoan(c, time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC))

	statuses := slices.Collect(m.ListLoans(today))
	require.Len(t, statuses, 3)
	assert.Equal(t, "OVERDUE", statuses[0].Label())
	assert.Equal(t, "On time", statuses[1].Label())
	assert.Equal(t, "On time", statuses[2].Label())

	// The sequence can be consumed again and stops early on request.
	var first []string
	for s := range m.ListLoans(today) {
		first = append(first, s.ISBN)
		break
	}
	assert.Equal(t, []string{"isbn-a"}, first)
	assert.Len(t, slices.Collect(m.ListLoans(today)), 3)
}

func TestListLoansEmpty(t *testing.T) {
	m := NewBorrower("Carol", "c@d.e", "M003")
	assert.Empty(t, slices.Collect(m.ListLoans(time.Now())))
}
