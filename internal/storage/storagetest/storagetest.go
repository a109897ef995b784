// Package storagetest provides test doubles and fixtures for storage.Gateway
// consumers.
package storagetest

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/student-functions/internal/storage"

	_ "github.com/mattn/go-sqlite3"
)

// Schema creates the students table the functions expect to find.
const Schema = `
	CREATE TABLE students (
		id         INTEGER PRIMARY KEY,
		first_name TEXT    NOT NULL,
		last_name  TEXT    NOT NULL,
		dob        DATE    NOT NULL,
		gender     TEXT    NOT NULL
	)`

// OpenSQLite opens a fresh SQLite database in t.TempDir() with the students
// table already created. The database is closed when the test ends.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "students.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("Failed to create students table: %v", err)
	}

	return db
}

// Fake is a scripted storage.Gateway. The zero value acquires successfully,
// reports one affected row per Execute, and finds no rows.
type Fake struct {
	AcquireErr error
	ExecErr    error
	Affected   int64
	Row        []any // column values returned by QueryRow; nil means no rows
	QueryErr   error

	Acquired  int
	Closed    int
	Executed  []Call
	Queried   []Call
	setAffect bool
}

// Call records one statement sent to the fake.
type Call struct {
	Stmt string
	Args []any
}

// WithAffected makes Execute report n affected rows (including 0).
func (f *Fake) WithAffected(n int64) *Fake {
	f.Affected = n
	f.setAffect = true
	return f
}

// Open returns the number of acquired connections not yet closed.
func (f *Fake) Open() int {
	return f.Acquired - f.Closed
}

// Calls is the total number of statements the fake received.
func (f *Fake) Calls() int {
	return len(f.Executed) + len(f.Queried)
}

func (f *Fake) Acquire(ctx context.Context) (storage.Conn, error) {
	if f.AcquireErr != nil {
		return nil, f.AcquireErr
	}
	f.Acquired++
	return &fakeConn{f: f}, nil
}

type fakeConn struct {
	f      *Fake
	closed bool
}

func (c *fakeConn) Execute(ctx context.Context, stmt string, args ...any) (int64, error) {
	c.f.Executed = append(c.f.Executed, Call{Stmt: stmt, Args: args})
	if c.f.ExecErr != nil {
		return 0, c.f.ExecErr
	}
	if !c.f.setAffect {
		return 1, nil
	}
	return c.f.Affected, nil
}

func (c *fakeConn) QueryRow(ctx context.Context, stmt string, args ...any) storage.Row {
	c.f.Queried = append(c.f.Queried, Call{Stmt: stmt, Args: args})
	return fakeRow{values: c.f.Row, err: c.f.QueryErr}
}

func (c *fakeConn) Close() error {
	if !c.closed {
		c.closed = true
		c.f.Closed++
	}
	return nil
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.values == nil {
		return storage.ErrNoRows
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(r.values))
	}

	for i, d := range dest {
		switch d := d.(type) {
		case sql.Scanner:
			if err := d.Scan(r.values[i]); err != nil {
				return err
			}
		case *int64:
			v, ok := r.values[i].(int64)
			if !ok {
				return fmt.Errorf("scan column %d: want int64, got %T", i, r.values[i])
			}
			*d = v
		case *string:
			v, ok := r.values[i].(string)
			if !ok {
				return fmt.Errorf("scan column %d: want string, got %T", i, r.values[i])
			}
			*d = v
		default:
			return fmt.Errorf("scan column %d: unsupported destination %T", i, d)
		}
	}
	return nil
}
