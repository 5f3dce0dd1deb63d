package main

import (
	"fmt"
	"os"
	"strings"

	"library-lending/library"
)

// import_catalog checks a CSV catalog by importing it into an empty library
// and printing what would be loaded.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <catalog.csv>\n", os.Args[0])
		os.Exit(2)
	}
	path := os.Args[1]

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening catalog: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	lib := library.NewLibrary()
	fmt.Printf("Importing books from %s...\n", path)
	report, err := library.ImportCatalog(lib, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading catalog: %v\n", err)
		os.Exit(1)
	}

	for _, row := range report.Rows {
		if row.Err != nil {
			fmt.Printf("line %d: ERROR - %v\n", row.Line, row.Err)
			continue
		}
		fmt.Printf("line %d: %s (%s)... SUCCESS\n", row.Line, row.Title, row.ISBN)
	}

	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Successfully imported: %d books\n", report.Added())
	fmt.Printf("Errors: %d\n", report.Failed())

	if report.Added() > 0 {
		fmt.Println("\nImported books:")
		fmt.Printf("%-16s %-40s %-25s %s\n", "ISBN", "Title", "Author", "Qty")
		fmt.Println(strings.Repeat("-", 90))
		for _, b := range lib.Books() {
			fmt.Printf("%-16s %-40s %-25s %d\n", truncateString(b.ISBN(), 16), truncateString(b.Title(), 40), truncateString(b.Author(), 25), b.Quantity())
		}
	}
	if report.Failed() > 0 {
		os.Exit(1)
	}
}

// truncateString shortens s to maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
