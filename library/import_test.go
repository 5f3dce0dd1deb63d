package library

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCatalog(t *testing.T) {
	lib := newLibrary(t)
	data := `title,author,isbn,genre,quantity
Dune, Frank Herbert, 978-0441013593, Sci-Fi, 4
"Emma",Jane Austen,978-0141439587,Classic,0
1984 again,George Orwell,978-0451524935,Dystopian,1
Bad Count,Nobody,978-1,Misc,lots
Short Row,Nobody
Negative,Nobody,978-2,Misc,-2
`
	report, err := ImportCatalog(lib, strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, report.Rows, 6)
	assert.Equal(t, 2, report.Added())
	assert.Equal(t, 4, report.Failed())

	assert.Equal(t, 2, report.Rows[0].Line)
	assert.NoError(t, report.Rows[0].Err)
	assert.ErrorIs(t, report.Rows[2].Err, ErrDuplicateKey)
	assert.ErrorIs(t, report.Rows[3].Err, ErrMalformedQuantity)
	assert.NotErrorIs(t, report.Rows[3].Err, ErrInvalidQuantity)
	assert.Error(t, report.Rows[4].Err)
	assert.ErrorIs(t, report.Rows[5].Err, ErrInvalidQuantity)

	dune, ok := lib.Book("978-0441013593")
	require.True(t, ok)
	assert.Equal(t, "Frank Herbert", dune.Author())
	assert.Equal(t, 4, dune.Quantity())

	emma, ok := lib.Book("978-0141439587")
	require.True(t, ok)
	assert.False(t, emma.Available())
}

func TestImportCatalogWithoutHeader(t *testing.T) {
	lib := NewLibrary()
	report, err := ImportCatalog(lib, strings.NewReader("Dune,Frank Herbert,978-0441013593,Sci-Fi,4\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added())
	assert.Equal(t, 1, report.Rows[0].Line)
}

func TestImportCatalogLineNumbers(t *testing.T) {
	lib := NewLibrary()
	data := "title,author,isbn,genre,quantity\n" +
		"\n" +
		"\n" +
		"Dune,Frank Herbert,978-0441013593,Sci-Fi,4\n" +
		"\"Multi\nLine\",Someone,978-0000000001,Misc,1\n" +
		"Short,Row\n" +
		"Bad,Nobody,978-0000000002,Misc,oops\n"

	report, err := ImportCatalog(lib, strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, report.Rows, 4)

	lines := make([]int, 0, len(report.Rows))
	for _, row := range report.Rows {
		lines = append(lines, row.Line)
	}
	assert.Equal(t, []int{4, 5, 7, 8}, lines)
	assert.Equal(t, "Multi\nLine", report.Rows[1].Title)
	assert.ErrorIs(t, report.Rows[2].Err, csv.ErrFieldCount)
	assert.ErrorIs(t, report.Rows[3].Err, ErrMalformedQuantity)
	assert.Contains(t, report.Rows[3].Err.Error(), "not a whole number")
}

func TestImportCatalogHeaderOnlyFirst(t *testing.T) {
	lib := NewLibrary()
	report, err := ImportCatalog(lib, strings.NewReader("\ntitle,author,isbn,genre,quantity\ntitle,author,isbn,genre,quantity\n"))
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, 3, report.Rows[0].Line)
	assert.ErrorIs(t, report.Rows[0].Err, ErrMalformedQuantity)
}

func TestImportCatalogMalformed(t *testing.T) {
	lib := NewLibrary()
	_, err := ImportCatalog(lib, strings.NewReader("\"unterminated,a,b,c,1\n"))
	require.Error(t, err)
}

func TestSnapshotJSON(t *testing.T) {
	lib := newLibrary(t)
	_, err := lib.BorrowBook("M001", "978-0451524935")
	require.NoError(t, err)

	// A day past the due date the loan shows as overdue.
	lib.now = func() time.Time { return fixedNow.AddDate(0, 0, 15) }
	s := lib.Snapshot()
	require.Len(t, s.Books, 2)
	assert.Equal(t, BookView{
		Title: "1984", Author: "George Orwell", ISBN: "978-0451524935", Genre: "Dystopian",
		Quantity: 4, Available: true, Status: "Available",
	}, s.Books[0])
	require.Len(t, s.Borrowers, 2)
	require.Len(t, s.Borrowers[0].Loans, 1)
	assert.True(t, s.Borrowers[0].Loans[0].Overdue)
	assert.Empty(t, s.Borrowers[1].Loans)

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, s))
	out := buf.String()
	assert.Contains(t, out, `"isbn": "978-0451524935"`)
	assert.Contains(t, out, `"overdue": true`)
	assert.Contains(t, out, `"loans": []`)
}
