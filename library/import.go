package library

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RowResult is the outcome of importing one CSV row.
type RowResult struct {
	Line  int
	ISBN  string
	Title string
	Err   error
}

// ImportReport summarises an ImportCatalog run.
type ImportReport struct {
	Rows []RowResult
}

// Added counts rows that produced a new book.
func (r ImportReport) Added() int {
	n := 0
	for _, row := range r.Rows {
		if row.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts rows that were rejected.
func (r ImportReport) Failed() int { return len(r.Rows) - r.Added() }

var catalogHeader = []string{"title", "author", "isbn", "genre", "quantity"}

// ImportCatalog adds one book per CSV record of title,author,isbn,genre,quantity.
// A leading header row is skipped. A bad row is reported and the import carries
// on; only a malformed CSV stream aborts it.
func ImportCatalog(lib *Library, r io.Reader) (ImportReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(catalogHeader)
	cr.TrimLeadingSpace = true

	var report ImportReport
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return report, nil
		}
		if errors.Is(err, csv.ErrFieldCount) {
			var pe *csv.ParseError
			errors.As(err, &pe)
			report.Rows = append(report.Rows, RowResult{Line: pe.StartLine, Err: err})
			continue
		}
		if err != nil {
			return report, fmt.Errorf("read catalog: %w", err)
		}
		if first && isHeader(rec) {
			continue
		}

		// Blank lines and quoted newlines make records and lines diverge.
		line, _ := cr.FieldPos(0)
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		row := RowResult{Line: line, Title: rec[0], ISBN: rec[2]}
		qty, err := strconv.Atoi(rec[4])
		if err != nil {
			row.Err = fmt.Errorf("quantity %q: %w", rec[4], ErrMalformedQuantity)
		} else {
			_, row.Err = lib.AddBook(rec[0], rec[1], rec[2], rec[3], qty)
		}
		report.Rows = append(report.Rows, row)
	}
}

func isHeader(rec []string) bool {
	for i, h := range catalogHeader {
		if !strings.EqualFold(strings.TrimSpace(rec[i]), h) {
			return false
		}
	}
	return true
}
