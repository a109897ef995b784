// Package storage defines the Gateway interface, the contract between the
// student functions and whatever relational database holds the students
// table.
//
// WHY AN INTERFACE?
// ─────────────────
// The functions should not know which database or driver they are talking
// to. By depending only on this interface:
//
//   - Switching databases = pick another driver in config. Zero function
//     changes (see storage/sqldb).
//
//   - Writing tests = pass a fake that satisfies the interface and count how
//     often it was called, or make it fail on purpose.
//
// CONNECTION LIFETIME
// ───────────────────
// A Conn is scoped to one request: acquire it at the start, `defer
// conn.Close()` immediately, and every exit path (success, validation
// failure after acquisition, database error) releases it.
package storage

import (
	"context"
	"errors"
)

// Statement templates. Placeholders are always "?"; gateways for dialects
// with other placeholder styles rebind them. User input is never
// concatenated into these strings; it is only passed as bound args.
const (
	// InsertStudent binds (id, first_name, last_name, dob, gender) in that order.
	InsertStudent = "INSERT INTO students (id, first_name, last_name, dob, gender) VALUES (?, ?, ?, ?, ?)"

	// SelectStudentByID is a point lookup on the primary key.
	SelectStudentByID = "SELECT id, first_name, last_name, dob, gender FROM students WHERE id = ?"
)

var (
	// ErrNoRows is returned by Row.Scan when the query matched nothing.
	ErrNoRows = errors.New("no rows in result set")

	// ErrDuplicateID tags driver errors caused by reusing a primary key.
	// The driver's own error stays in the chain.
	ErrDuplicateID = errors.New("duplicate id")
)

// Gateway hands out request-scoped connections.
type Gateway interface {
	Acquire(ctx context.Context) (Conn, error)
}

// Conn runs parameterized statements on a single connection.
type Conn interface {
	// Execute runs a write statement and returns the affected-row count.
	Execute(ctx context.Context, stmt string, args ...any) (int64, error)

	// QueryRow runs a statement expected to return at most one row.
	// Errors are deferred until Row.Scan.
	QueryRow(ctx context.Context, stmt string, args ...any) Row

	// Close releases the connection. Safe to call more than once.
	Close() error
}

// Row is the result of Conn.QueryRow.
type Row interface {
	// Scan copies the columns into dest, in SELECT order.
	// It returns ErrNoRows when the query matched nothing.
	Scan(dest ...any) error
}
