package sqldb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/aanand-mishra/student-functions/internal/config"
	"github.com/aanand-mishra/student-functions/internal/storage"
	"github.com/aanand-mishra/student-functions/internal/storage/storagetest"
	"github.com/aanand-mishra/student-functions/internal/types"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

func setupGateway(t *testing.T) *DB {
	t.Helper()

	gw, err := Wrap(storagetest.OpenSQLite(t), "sqlite3")
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	return gw
}

func insertAnn(ctx context.Context, c storage.Conn) (int64, error) {
	return c.Execute(ctx, storage.InsertStudent,
		int64(1), "Ann", "Lee", types.NewDate(1990, time.May, 1), "F")
}

func TestInsertAndSelect(t *testing.T) {
	ctx := context.Background()
	gw := setupGateway(t)

	c, err := gw.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer c.Close()

	n, err := insertAnn(ctx, c)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if n != 1 {
		t.Fatalf("affected rows = %d, want 1", n)
	}

	var got types.Student
	err = c.QueryRow(ctx, storage.SelectStudentByID, int64(1)).Scan(
		&got.ID, &got.FirstName, &got.LastName, &got.DateOfBirth, &got.Gender)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := types.Student{ID: 1, FirstName: "Ann", LastName: "Lee", DateOfBirth: types.NewDate(1990, time.May, 1), Gender: "F"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSelectMissReturnsErrNoRows(t *testing.T) {
	ctx := context.Background()
	gw := setupGateway(t)

	c, err := gw.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer c.Close()

	var id int64
	var first, last, gender string
	var dob types.Date
	err = c.QueryRow(ctx, storage.SelectStudentByID, int64(999999)).Scan(&id, &first, &last, &dob, &gender)
	if !errors.Is(err, storage.ErrNoRows) {
		t.Errorf("Scan error = %v, want storage.ErrNoRows", err)
	}
}

func TestDuplicateIDIsTagged(t *testing.T) {
	ctx := context.Background()
	gw := setupGateway(t)

	c, err := gw.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer c.Close()

	if _, err := insertAnn(ctx, c); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	_, err = insertAnn(ctx, c)
	if err == nil {
		t.Fatal("second insert with the same id expected error")
	}
	if !errors.Is(err, storage.ErrDuplicateID) {
		t.Errorf("error %v is not tagged ErrDuplicateID", err)
	}
	if got, want := err.Error(), "UNIQUE constraint failed: students.id"; got != want {
		t.Errorf("message = %q, want the driver message %q", got, want)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	gw := setupGateway(t)

	c, err := gw.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestNew(t *testing.T) {
	cfg := &config.Config{
		Env: "dev",
		Database: config.Database{
			Driver: "sqlite3",
			DSN:    filepath.Join(t.TempDir(), "students.db"),
		},
	}

	db, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := &config.Config{Database: config.Database{Driver: "oracle", DSN: "x"}}

	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestRebind(t *testing.T) {
	pg, _ := dialectFor("pgx")
	lite, _ := dialectFor("sqlite3")
	my, _ := dialectFor("mysql")

	wantPG := "INSERT INTO students (id, first_name, last_name, dob, gender) VALUES ($1, $2, $3, $4, $5)"
	if got := pg.rebind(storage.InsertStudent); got != wantPG {
		t.Errorf("pgx rebind = %q", got)
	}
	if got := pg.rebind(storage.SelectStudentByID); got != "SELECT id, first_name, last_name, dob, gender FROM students WHERE id = $1" {
		t.Errorf("pgx rebind = %q", got)
	}
	if got := lite.rebind(storage.InsertStudent); got != storage.InsertStudent {
		t.Errorf("sqlite3 rebind changed the statement: %q", got)
	}
	if got := my.rebind(storage.SelectStudentByID); got != storage.SelectStudentByID {
		t.Errorf("mysql rebind changed the statement: %q", got)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"postgres not null violation", &pgconn.PgError{Code: "23502"}, false},
		{"mysql duplicate entry", &mysql.MySQLError{Number: 1062}, true},
		{"mysql other", &mysql.MySQLError{Number: 1146}, false},
		{"wrapped postgres", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"}), true},
		{"plain", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateKey(tt.err); got != tt.want {
				t.Errorf("isDuplicateKey(%v) = %v, want %v", tt.err, got, tt.want)
			}
			if got := errors.Is(classify(tt.err), storage.ErrDuplicateID); got != tt.want {
				t.Errorf("classify tagged = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyKeepsDriverMessage(t *testing.T) {
	pgErr := &pgconn.PgError{Severity: "ERROR", Code: "23505", Message: `duplicate key value violates unique constraint "students_pkey"`}

	err := classify(pgErr)

	if !errors.Is(err, storage.ErrDuplicateID) {
		t.Errorf("classify(%v) is not tagged ErrDuplicateID", pgErr)
	}
	var got *pgconn.PgError
	if !errors.As(err, &got) || got != pgErr {
		t.Errorf("driver error lost from the chain")
	}
	if err.Error() != pgErr.Error() {
		t.Errorf("message = %q, want %q", err.Error(), pgErr.Error())
	}

	plain := errors.New("connection refused")
	if classify(plain) != plain {
		t.Errorf("non-duplicate error was rewrapped")
	}
}
