package menu

import (
	"errors"
	"strings"

	"library-lending/library"
)

// ------------------ Books ------------------

func (m *Menu) handleAddBook() error {
	m.println("\n--- Add New Book ---")
	v, err := m.fields("Enter title: ", "Enter author: ", "Enter ISBN: ", "Enter genre: ", "Enter quantity: ")
	if err != nil {
		return err
	}
	title, isbn := v[0], v[2]
	qty, err := parseNumber(v[4])
	if err != nil {
		return err
	}

	_, err = m.lib.AddBook(title, v[1], isbn, v[3], qty)
	switch {
	case err == nil:
		m.printf("Success: Added '%s' to the library.\n", title)
	case errors.Is(err, library.ErrDuplicateKey):
		m.printf("Error: Book with ISBN %s already exists. Use 'update' instead.\n", isbn)
	case errors.Is(err, library.ErrInvalidQuantity):
		m.printf("Error: Quantity cannot be negative for '%s'.\n", title)
	default:
		return err
	}
	return nil
}

func (m *Menu) handleUpdateQuantity() error {
	m.println("\n--- Update Book Quantity ---")
	v, err := m.fields("Enter ISBN of book to update: ", "Enter new total quantity: ")
	if err != nil {
		return err
	}
	isbn := v[0]
	qty, err := parseNumber(v[1])
	if err != nil {
		return err
	}

	b, err := m.lib.UpdateBookQuantity(isbn, qty)
	switch {
	case err == nil:
		m.printf("Success: Quantity updated for '%s'.\n", b.Title())
	case errors.Is(err, library.ErrNotFound):
		m.printf("Error: Book with ISBN %s not found.\n", isbn)
	case errors.Is(err, library.ErrInvalidQuantity):
		m.printf("Error: Quantity cannot be negative for '%s'.\n", b.Title())
	default:
		return err
	}
	return nil
}

func (m *Menu) handleRemoveBook() error {
	m.println("\n--- Remove Book ---")
	isbn, ok := m.prompt("Enter ISBN of book to remove: ")
	if !ok {
		return nil
	}

	b, err := m.lib.RemoveBook(isbn)
	switch {
	case err == nil:
		m.printf("Success: Removed '%s' from the library.\n", b.Title())
	case errors.Is(err, library.ErrNotFound):
		m.printf("Error: Book with ISBN %s not found.\n", isbn)
	case errors.Is(err, library.ErrHasOutstandingLoans):
		m.printf("Error: Cannot remove ISBN %s. Copies are still on loan.\n", isbn)
	default:
		return err
	}
	return nil
}

// ------------------ Borrowers ------------------

func (m *Menu) handleAddBorrower() error {
	m.println("\n--- Register New Borrower ---")
	v, err := m.fields("Enter name: ", "Enter contact (email/phone): ", "Enter new membership ID (e.g., M003): ")
	if err != nil {
		return err
	}
	name, id := v[0], v[2]

	_, err = m.lib.AddBorrower(name, v[1], id)
	switch {
	case err == nil:
		m.printf("Success: Registered new borrower '%s'.\n", name)
	case errors.Is(err, library.ErrDuplicateKey):
		m.printf("Error: Borrower with ID %s already exists.\n", id)
	default:
		return err
	}
	return nil
}

func (m *Menu) handleUpdateContact() error {
	m.println("\n--- Update Borrower Contact ---")
	v, err := m.fields("Enter membership ID: ", "Enter new contact info: ")
	if err != nil {
		return err
	}
	id := v[0]

	b, err := m.lib.UpdateBorrowerContact(id, v[1])
	switch {
	case err == nil:
		m.printf("Contact updated for %s to %s.\n", b.Name(), b.Contact())
	case errors.Is(err, library.ErrNotFound):
		m.printf("Error: Borrower with ID %s not found.\n", id)
	default:
		return err
	}
	return nil
}

func (m *Menu) handleRemoveBorrower() error {
	m.println("\n--- Remove Borrower ---")
	id, ok := m.prompt("Enter membership ID to remove: ")
	if !ok {
		return nil
	}

	b, err := m.lib.RemoveBorrower(id)
	switch {
	case err == nil:
		m.printf("Success: Removed borrower '%s'.\n", b.Name())
	case errors.Is(err, library.ErrNotFound):
		m.printf("Error: Borrower with ID %s not found.\n", id)
	case errors.Is(err, library.ErrHasOutstandingLoans):
		name := id
		if br, ok := m.lib.Borrower(id); ok {
			name = br.Name()
		}
		m.printf("Error: Cannot remove '%s'. They still have books to return.\n", name)
	default:
		return err
	}
	return nil
}

// ------------------ Circulation ------------------

func (m *Menu) handleBorrow() error {
	m.println("\n--- Borrow Book ---")
	v, err := m.fields("Enter your membership ID: ", "Enter the ISBN of the book to borrow: ")
	if err != nil {
		return err
	}
	id, isbn := v[0], v[1]

	r, err := m.lib.BorrowBook(id, isbn)
	switch {
	case err == nil:
		m.printf("Success: %s borrowed '%s'. Due on %s.\n", r.BorrowerName, r.BookTitle, library.DateString(r.DueDate))
	case errors.Is(err, library.ErrBorrowerNotFound):
		m.printf("Error: Borrower ID %s not found.\n", id)
	case errors.Is(err, library.ErrBookNotFound):
		m.printf("Error: Book with ISBN %s not found.\n", isbn)
	case errors.Is(err, library.ErrUnavailable):
		b, _ := m.lib.Book(isbn)
		m.printf("Sorry: '%s' is currently out of stock.\n", b.Title())
	default:
		return err
	}
	return nil
}

func (m *Menu) handleReturn() error {
	m.println("\n--- Return Book ---")
	v, err := m.fields("Enter your membership ID: ", "Enter the ISBN of the book to return: ")
	if err != nil {
		return err
	}
	id, isbn := v[0], v[1]

	r, err := m.lib.ReturnBook(id, isbn)
	switch {
	case err == nil:
		m.printf("Success: %s returned '%s'.\n", r.BorrowerName, r.BookTitle)
	case errors.Is(err, library.ErrBorrowerNotFound):
		m.printf("Error: Borrower ID %s not found.\n", id)
	case errors.Is(err, library.ErrBookNotFound):
		m.printf("Error: Book with ISBN %s not found.\n", isbn)
	case errors.Is(err, library.ErrNotBorrowed):
		br, _ := m.lib.Borrower(id)
		m.printf("Error: %s does not seem to have borrowed this book.\n", br.Name())
	default:
		return err
	}
	return nil
}

// ------------------ Search & display ------------------

var searchFields = map[string]library.SearchField{
	"1": library.ByTitle,
	"2": library.ByAuthor,
	"3": library.ByGenre,
}

func (m *Menu) handleSearch() error {
	m.println("\n--- Search for Book ---")
	m.println("Search by: (1) Title, (2) Author, (3) Genre")
	v, err := m.fields("Enter search type (1, 2, or 3): ", "Enter search term: ")
	if err != nil {
		return err
	}
	field, ok := searchFields[v[0]]
	if !ok {
		m.println("Invalid search type. Please enter 1, 2, or 3.")
		return nil
	}
	term := v[1]

	results, err := m.lib.SearchBooks(term, field)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		m.printf("No books found for '%s' by %s.\n", strings.ToLower(term), field)
		return nil
	}
	m.printf("\n--- Search Results (%d found) ---\n", len(results))
	for _, b := range results {
		m.println(b)
	}
	m.println("-----------------------------")
	return nil
}

func (m *Menu) showAllBooks() {
	books := m.lib.Books()
	if len(books) == 0 {
		m.println("The library has no books yet.")
		return
	}
	m.println("\n--- All Books in Library ---")
	for _, b := range books {
		m.println(b)
	}
	m.println("----------------------------")
}

func (m *Menu) showAllBorrowers() {
	borrowers := m.lib.Borrowers()
	if len(borrowers) == 0 {
		m.println("There are no registered borrowers yet.")
		return
	}
	today := m.lib.Today()
	m.println("\n--- All Registered Borrowers ---")
	for _, br := range borrowers {
		m.println(br)
		if br.LoanCount() == 0 {
			m.printf("%s has no books borrowed.\n", br.Name())
			continue
		}
		m.printf("\n--- Books borrowed by %s ---\n", br.Name())
		for s := range br.ListLoans(today) {
			m.printf("  - ISBN: %s, Due: %s (%s)\n", s.ISBN, library.DateString(s.DueDate), s.Label())
		}
		m.println("---------------------------------")
	}
	m.println("--------------------------------")
}

func (m *Menu) handleHistory() error {
	m.println("\n--- Circulation History ---")
	if m.history == nil {
		m.println("Circulation history is not enabled.")
		return nil
	}
	id, ok := m.prompt("Enter membership ID (blank for all): ")
	if !ok {
		return nil
	}

	var (
		events []library.Event
		err    error
	)
	if id == "" {
		events, err = m.history.All()
	} else {
		events, err = m.history.ForBorrower(id)
	}
	if err != nil {
		return err
	}
	if len(events) == 0 {
		m.println("No circulation events recorded.")
		return nil
	}
	for _, e := range events {
		m.printf("%s  %-6s  %-8s  %s", e.OccurredAt.Format("2006-01-02 15:04"), e.Action, e.MembershipID, e.ISBN)
		if e.DueDate != nil {
			m.printf("  due %s", library.DateString(*e.DueDate))
		}
		m.println()
	}
	return nil
}
