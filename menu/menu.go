// Package menu is the interactive console front end. It collects input for one
// library operation at a time and renders the outcome.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"library-lending/library"
)

var errInvalidNumber = errors.New("invalid numeric input")

// History is the read side of the circulation log.
type History interface {
	All() ([]library.Event, error)
	ForBorrower(membershipID string) ([]library.Event, error)
}

// Menu drives a Library from line-oriented input.
type Menu struct {
	lib     *library.Library
	history History
	sc      *bufio.Scanner
	out     io.Writer

	// ShowMenu prints the option list before every prompt.
	ShowMenu bool
}

// New returns a Menu reading from in and writing to out. history may be nil.
func New(lib *library.Library, history History, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		lib:      lib,
		history:  history,
		sc:       bufio.NewScanner(in),
		out:      out,
		ShowMenu: true,
	}
}

func (m *Menu) printf(format string, a ...any) { fmt.Fprintf(m.out, format, a...) }
func (m *Menu) println(a ...any)               { fmt.Fprintln(m.out, a...) }

func (m *Menu) printMenu() {
	m.println("\n========= Library Management System ==========")
	m.println("1.  Add a new book")
	m.println("2.  Update book quantity")
	m.println("3.  Remove a book")
	m.println("4.  Register a new borrower")
	m.println("5.  Update borrower contact")
	m.println("6.  Remove a borrower")
	m.println("7.  Borrow a book")
	m.println("8.  Return a book")
	m.println("9.  Search for a book (by title, author, or genre)")
	m.println("10. Show all books")
	m.println("11. Show all borrowers (and their borrowed books)")
	m.println("12. Show circulation history")
	m.println("13. Export snapshot (JSON)")
	m.println("0.  Exit")
	m.println("==============================================")
}

// Run loops until the user exits or input ends.
func (m *Menu) Run() error {
	for {
		if m.ShowMenu {
			m.printMenu()
		}
		choice, ok := m.prompt("Enter your choice (0-13): ")
		if !ok {
			return m.sc.Err()
		}

		var err error
		switch choice {
		case "1":
			err = m.handleAddBook()
		case "2":
			err = m.handleUpdateQuantity()
		case "3":
			err = m.handleRemoveBook()
		case "4":
			err = m.handleAddBorrower()
		case "5":
			err = m.handleUpdateContact()
		case "6":
			err = m.handleRemoveBorrower()
		case "7":
			err = m.handleBorrow()
		case "8":
			err = m.handleReturn()
		case "9":
			err = m.handleSearch()
		case "10":
			m.showAllBooks()
		case "11":
			m.showAllBorrowers()
		case "12":
			err = m.handleHistory()
		case "13":
			err = library.WriteSnapshot(m.out, m.lib.Snapshot())
		case "0":
			m.println("Thank you for using the Library Management System. Goodbye!")
			return nil
		default:
			m.println("Invalid choice. Please enter a number between 0 and 13.")
		}

		switch {
		case err == nil:
		case errors.Is(err, errInvalidNumber):
			m.println("\nError: Invalid input. Please enter numbers where required (like quantity).")
		case errors.Is(err, io.EOF):
			return m.sc.Err()
		default:
			m.printf("\nAn unexpected error occurred: %v\n", err)
		}
	}
}

// prompt prints label and reads one trimmed line. ok is false at end of input.
func (m *Menu) prompt(label string) (string, bool) {
	m.printf("%s", label)
	if !m.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.sc.Text()), true
}

// fields prompts for each label in turn. It returns io.EOF if input ends early.
func (m *Menu) fields(labels ...string) ([]string, error) {
	vals := make([]string, 0, len(labels))
	for _, l := range labels {
		v, ok := m.prompt(l)
		if !ok {
			return nil, io.EOF
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, errInvalidNumber)
	}
	return n, nil
}
