package library

// Seed loads the sample catalog and members used when the program starts.
func Seed(lib *Library) error {
	books := []struct {
		title, author, isbn, genre string
		quantity                   int
	}{
		{"1984", "George Orwell", "978-0451524935", "Dystopian", 5},
		{"To Kill a Mockingbird", "Harper Lee", "978-0061120084", "Fiction", 3},
	}
	for _, b := range books {
		if _, err := lib.AddBook(b.title, b.author, b.isbn, b.genre, b.quantity); err != nil {
			return err
		}
	}

	members := [][3]string{
		{"Alice Smith", "alice@email.com", "M001"},
		{"Bob Johnson", "bob@email.com", "M002"},
	}
	for _, m := range members {
		if _, err := lib.AddBorrower(m[0], m[1], m[2]); err != nil {
			return err
		}
	}
	return nil
}
