// Package sqldb provides the database/sql-backed implementation of the
// storage.Gateway interface.
//
// Three drivers are registered through blank imports and picked by name
// from config (database.driver):
//
//	sqlite3   github.com/mattn/go-sqlite3 (local development, tests)
//	pgx       github.com/jackc/pgx/v5/stdlib
//	mysql     github.com/go-sql-driver/mysql
//
// The students table is assumed to exist; this package never creates or
// alters schema.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-functions/internal/config"
	"github.com/aanand-mishra/student-functions/internal/storage"

	// Blank imports: side-effect only (each registers its driver name with
	// database/sql). Without them sql.Open fails with "unknown driver".
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Compile-time check that *DB satisfies the gateway contract.
var _ storage.Gateway = (*DB)(nil)

// DB is the concrete storage.Gateway.
// The *sql.DB inside is safe for concurrent use; each request takes its own
// *sql.Conn from it via Acquire.
type DB struct {
	db      *sql.DB
	dialect dialect
}

// New opens the database named by cfg.Database and pings it, so a bad DSN
// or unreachable server fails at startup rather than on the first request.
func New(ctx context.Context, cfg *config.Config) (*DB, error) {
	d, err := dialectFor(cfg.Database.Driver)
	if err != nil {
		return nil, fmt.Errorf("sqldb.New: %w", err)
	}

	// sql.Open does NOT connect yet; it validates the driver name and DSN.
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqldb.New: open db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqldb.New: ping: %w", err)
	}

	return &DB{db: db, dialect: d}, nil
}

// Wrap builds a gateway around an already opened *sql.DB.
func Wrap(db *sql.DB, driver string) (*DB, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, fmt.Errorf("sqldb.Wrap: %w", err)
	}
	return &DB{db: db, dialect: d}, nil
}

// Close closes the underlying pool. Call once, at process shutdown.
func (s *DB) Close() error {
	return s.db.Close()
}

// Acquire takes one dedicated connection from the pool.
func (s *DB) Acquire(ctx context.Context) (storage.Conn, error) {
	c, err := s.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &conn{c: c, dialect: s.dialect}, nil
}

type conn struct {
	c       *sql.Conn
	dialect dialect
	closed  bool
}

// Execute runs stmt with args bound in order and returns RowsAffected.
// Errors carry the driver's own message so it can be shown to the client.
func (c *conn) Execute(ctx context.Context, stmt string, args ...any) (int64, error) {
	result, err := c.c.ExecContext(ctx, c.dialect.rebind(stmt), args...)
	if err != nil {
		return 0, classify(err)
	}

	return result.RowsAffected()
}

func (c *conn) QueryRow(ctx context.Context, stmt string, args ...any) storage.Row {
	return row{r: c.c.QueryRowContext(ctx, c.dialect.rebind(stmt), args...)}
}

// Close returns the connection to the pool.
func (c *conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.c.Close()
}

type row struct {
	r *sql.Row
}

// Scan translates sql.ErrNoRows into storage.ErrNoRows so callers never
// import database/sql to detect a miss.
func (r row) Scan(dest ...any) error {
	err := r.r.Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNoRows
	}
	if err != nil {
		return classify(err)
	}
	return nil
}
