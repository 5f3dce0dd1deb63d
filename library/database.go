package library

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Action is the kind of circulation event.
type Action string

const (
	ActionBorrow Action = "borrow"
	ActionReturn Action = "return"
)

// Event is one entry in the circulation log.
type Event struct {
	ID           uuid.UUID  `json:"id"`
	MembershipID string     `json:"membership_id"`
	ISBN         string     `json:"isbn"`
	Action       Action     `json:"action"`
	OccurredAt   time.Time  `json:"occurred_at"`
	DueDate      *time.Time `json:"due_date,omitempty"`
}

// History keeps the circulation log in an in-memory SQLite database. Nothing is
// written to disk and the log is gone when the process exits.
type History struct {
	db *sql.DB

	insertStmt *sql.Stmt
}

// NewHistory opens a private in-memory database, applies the schema and
// prepares the insert statement.
func NewHistory() (*History, error) {
	// _loc=auto reads timestamps back in local time so due dates keep their day.
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=1&_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every new connection to :memory: is a fresh, empty database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	h := &History{db: db}
	if err := h.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

// Close releases the prepared statement and the database.
func (h *History) Close() error {
	if h.insertStmt != nil {
		h.insertStmt.Close()
	}
	return h.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS circulation (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            id TEXT NOT NULL UNIQUE,
            membership_id TEXT NOT NULL,
            isbn TEXT NOT NULL,
            action TEXT NOT NULL CHECK (action IN ('borrow','return')),
            occurred_at DATETIME NOT NULL,
            due_date DATETIME
        );`,
		`CREATE INDEX IF NOT EXISTS idx_circulation_member ON circulation(membership_id);`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (h *History) prepareStatements() error {
	var err error
	h.insertStmt, err = h.db.Prepare(`INSERT INTO circulation(id,membership_id,isbn,action,occurred_at,due_date) VALUES(?,?,?,?,?,?)`)
	return err
}

// ---------------------------------------------------------------------------
// Log access
// ---------------------------------------------------------------------------

// Record appends e to the log. A zero ID is replaced with a fresh UUID.
func (h *History) Record(e Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	var due sql.NullTime
	if e.DueDate != nil {
		due = sql.NullTime{Time: *e.DueDate, Valid: true}
	}
	if _, err := h.insertStmt.Exec(e.ID.String(), e.MembershipID, e.ISBN, string(e.Action), e.OccurredAt, due); err != nil {
		return fmt.Errorf("record %s event: %w", e.Action, err)
	}
	return nil
}

// All returns every event, oldest first.
func (h *History) All() ([]Event, error) {
	return h.query(`SELECT id,membership_id,isbn,action,occurred_at,due_date FROM circulation ORDER BY seq`)
}

// ForBorrower returns the events of one member, oldest first.
func (h *History) ForBorrower(membershipID string) ([]Event, error) {
	return h.query(`SELECT id,membership_id,isbn,action,occurred_at,due_date FROM circulation WHERE membership_id=? ORDER BY seq`, membershipID)
}

func (h *History) query(q string, args ...any) ([]Event, error) {
	rows, err := h.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e      Event
			id     string
			action string
			due    sql.NullTime
		)
		if err := rows.Scan(&id, &e.MembershipID, &e.ISBN, &action, &e.OccurredAt, &due); err != nil {
			return nil, err
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse event id %q: %w", id, err)
		}
		e.Action = Action(action)
		if due.Valid {
			d := due.Time
			e.DueDate = &d
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
