// Package student contains the HTTP handlers that expose the student
// functions over net/http.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// The router expects func(http.ResponseWriter, *http.Request). To inject the
// functions we use a factory that accepts the dependency and returns a
// handler closing over it:
//
//	router.HandleFunc("POST /api/InsertStudentData", student.Insert(svc))
//	//                                                         ^^^^^^^^^^^
//	//                       Insert(svc) runs ONCE at startup; the returned
//	//                       handler runs on EVERY incoming request.
//
// The handlers only move bytes: request in, result out. Validation, storage
// and the error taxonomy live in internal/student.
package student

import (
	"context"
	"io"
	"net/http"

	"github.com/aanand-mishra/student-functions/internal/errs"
	studentfn "github.com/aanand-mishra/student-functions/internal/student"
	"github.com/aanand-mishra/student-functions/internal/types"
	"github.com/aanand-mishra/student-functions/internal/utils/response"
)

// maxBodyBytes caps the insert payload; a student record is a few hundred bytes.
const maxBodyBytes = 1 << 20

// Functions is what the handlers need from internal/student.Service.
type Functions interface {
	Insert(ctx context.Context, body []byte) error
	Lookup(ctx context.Context, rawID string) (types.StudentView, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// Insert handles POST /api/InsertStudentData
//
// Request body (JSON):
//
//	{ "id": 1, "FirstName": "Ann", "LastName": "Lee",
//	  "DateOfBirth": "1990-05-01", "Gender": "F" }
//
// Responses (all text/plain):
//
//	200 OK             "Data inserted successfully."
//	400 Bad Request    empty/invalid body, missing field, bad date, bad id
//	500 Internal       database error (message included) or zero rows written
//
// ─────────────────────────────────────────────────────────────────────────────
func Insert(fns Functions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			response.WriteError(w, errs.MalformedRequest(studentfn.MsgBodyMissing, err))
			return
		}

		if err := fns.Insert(detach(r), body); err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteText(w, http.StatusOK, studentfn.MsgInserted)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Lookup handles GET /api/GetStudentData?id=1
//
// Success response (200 OK, application/json):
//
//	{"id":1,"first_name":"Ann","last_name":"Lee","dob":"1990-05-01","gender":"F"}
//
// Error responses (text/plain):
//
//	400 Bad Request    id missing or not an integer
//	404 Not Found      no student with that id
//	500 Internal       database error (message included)
//
// ─────────────────────────────────────────────────────────────────────────────
func Lookup(fns Functions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := fns.Lookup(detach(r), r.URL.Query().Get("id"))
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, view)
	}
}

// detach keeps request-scoped values but drops cancellation: a request the
// caller abandons still runs its single statement to completion.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// Health handles GET /api/health. It does not touch the database.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteText(w, http.StatusOK, "ok")
	}
}
