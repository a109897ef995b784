package sqldb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aanand-mishra/student-functions/internal/storage"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// dialect captures the placeholder style of a driver.
type dialect struct {
	driver string
	dollar bool // Postgres: $1, $2, ... instead of ?
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "sqlite3", "mysql":
		return dialect{driver: driver}, nil
	case "pgx":
		return dialect{driver: driver, dollar: true}, nil
	default:
		return dialect{}, fmt.Errorf("unsupported driver %q", driver)
	}
}

// rebind rewrites ? placeholders for dialects that need numbered ones.
// The statement templates in package storage contain no string literals,
// so every ? is a placeholder.
func (d dialect) rebind(stmt string) string {
	if !d.dollar || !strings.Contains(stmt, "?") {
		return stmt
	}

	var b strings.Builder
	b.Grow(len(stmt) + 8)
	n := 0
	for i := 0; i < len(stmt); i++ {
		if stmt[i] != '?' {
			b.WriteByte(stmt[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

const (
	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// classify tags primary-key collisions with storage.ErrDuplicateID. The
// driver error stays in the chain and its message is returned unchanged.
func classify(err error) error {
	if isDuplicateKey(err) {
		return &duplicateIDError{err: err}
	}
	return err
}

// duplicateIDError matches storage.ErrDuplicateID under errors.Is but
// reads exactly like the driver error it wraps.
type duplicateIDError struct {
	err error
}

func (e *duplicateIDError) Error() string {
	return e.err.Error()
}

func (e *duplicateIDError) Unwrap() []error {
	return []error{storage.ErrDuplicateID, e.err}
}

func isDuplicateKey(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	return false
}
