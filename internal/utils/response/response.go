// Package response provides helpers for writing HTTP responses in the
// shapes the student functions promise:
//
//	success of a lookup       → JSON object
//	success of an insert      → plain-text confirmation
//	every failure             → plain-text reason with the matching status
//
// Centralising the three steps (set header, set status, write body) keeps
// every handler consistent.
package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aanand-mishra/student-functions/internal/errs"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain; charset=utf-8"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteText writes msg as a plain-text body.
func WriteText(w http.ResponseWriter, status int, msg string) error {
	w.Header().Set("Content-Type", ContentTypeText)
	w.WriteHeader(status)
	_, err := io.WriteString(w, msg)
	return err
}

// WriteError writes err's client message with its status code.
// Errors that are not *errs.Error become a generic 500 so internal details
// that were never meant for clients do not leak.
func WriteError(w http.ResponseWriter, err error) error {
	return WriteText(w, errs.StatusOf(err), Message(err))
}

// Message is the client-facing text for err.
func Message(err error) string {
	var e *errs.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return http.StatusText(http.StatusInternalServerError)
}
