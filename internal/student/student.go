// Package student implements the two student functions independently of
// how they are triggered:
//
//	Insert: validate a JSON body, write one row.
//	Lookup: validate an id, read at most one row.
//
// Both return nil or an *errs.Error. The net/http host
// (internal/http/handlers/student) and the Lambda entry point
// (cmd/students-lambda) only translate requests in and results out.
//
// Each call is strictly sequential: parse → validate → acquire connection
// → execute → release → return. Nothing is shared between calls except the
// gateway, so concurrent invocations need no locking.
package student

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/student-functions/internal/errs"
	"github.com/aanand-mishra/student-functions/internal/storage"
	"github.com/aanand-mishra/student-functions/internal/types"
)

const (
	// MsgInserted is the confirmation body of a successful insert.
	MsgInserted = "Data inserted successfully."

	MsgInsertFailed = "Failed to insert data."
	MsgMissingID    = "Missing required query parameter: id."

	insertFailurePrefix = "Database connection failed: "
	lookupFailurePrefix = "Database error: "
)

// Service runs the functions against a storage.Gateway.
type Service struct {
	gw  storage.Gateway
	log *slog.Logger
}

// New returns a Service. A nil logger falls back to slog.Default().
func New(gw storage.Gateway, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{gw: gw, log: log}
}

// ─────────────────────────────────────────────────────────────────────────────
// Insert validates body and inserts the student it describes.
//
// Outcomes:
//
//	nil                      exactly one row written
//	KindMalformedRequest     rejected before touching the database
//	KindSoftWriteFailure     the INSERT ran but reported zero rows
//	KindStorageFailure       connection or statement error (incl. duplicate id)
//
// ─────────────────────────────────────────────────────────────────────────────
func (s *Service) Insert(ctx context.Context, body []byte) error {
	s.log.Info("processing a request to insert a student")

	st, err := DecodeInsert(body)
	if err != nil {
		s.log.Warn("insert rejected", slog.String("reason", err.Error()))
		return err
	}

	conn, err := s.gw.Acquire(ctx)
	if err != nil {
		return s.storageFailure(insertFailurePrefix, st.ID, err)
	}
	defer conn.Close()

	n, err := conn.Execute(ctx, storage.InsertStudent,
		st.ID, st.FirstName, st.LastName, st.DateOfBirth, st.Gender)
	if err != nil {
		return s.storageFailure(insertFailurePrefix, st.ID, err)
	}

	switch n {
	case 1:
		s.log.Info("student inserted", slog.Int64("id", st.ID))
		return nil
	case 0:
		s.log.Error("insert affected no rows", slog.Int64("id", st.ID))
		return errs.SoftWriteFailure(MsgInsertFailed)
	default:
		return s.storageFailure(insertFailurePrefix, st.ID,
			fmt.Errorf("insert affected %d rows", n))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Lookup fetches the student whose primary key is rawID.
//
// rawID is the untouched query-string value; "" means the parameter was
// absent.
//
// Outcomes:
//
//	view, nil                the row, mapped to its response shape
//	KindMalformedRequest     id absent or not an integer
//	KindNotFound             no row with that id
//	KindStorageFailure       connection or query error
//
// ─────────────────────────────────────────────────────────────────────────────
func (s *Service) Lookup(ctx context.Context, rawID string) (types.StudentView, error) {
	s.log.Info("processing a request to get a student", slog.String("id", rawID))

	if rawID == "" {
		return types.StudentView{}, errs.MalformedRequest(MsgMissingID, nil)
	}

	id, err := types.ParseID(rawID)
	if err != nil {
		s.log.Warn("lookup rejected", slog.String("id", rawID))
		return types.StudentView{}, errs.MalformedRequest(MsgInvalidID, err)
	}

	conn, err := s.gw.Acquire(ctx)
	if err != nil {
		return types.StudentView{}, s.storageFailure(lookupFailurePrefix, id, err)
	}
	defer conn.Close()

	var st types.Student
	err = conn.QueryRow(ctx, storage.SelectStudentByID, id).Scan(
		&st.ID,
		&st.FirstName,
		&st.LastName,
		&st.DateOfBirth,
		&st.Gender,
	)
	if errors.Is(err, storage.ErrNoRows) {
		return types.StudentView{}, errs.NotFound(fmt.Sprintf("No student found with id: %d", id))
	}
	if err != nil {
		return types.StudentView{}, s.storageFailure(lookupFailurePrefix, id, err)
	}

	return st.View(), nil
}

func (s *Service) storageFailure(prefix string, id int64, err error) *errs.Error {
	s.log.Error("database error",
		slog.Int64("id", id),
		slog.Bool("duplicate_id", errors.Is(err, storage.ErrDuplicateID)),
		slog.String("error", err.Error()))
	return errs.StorageFailure(prefix, err)
}
