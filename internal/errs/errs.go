// Package errs defines the request-level error taxonomy shared by the
// insert and lookup functions.
//
// Every failed request ends in exactly one *Error. The Kind says what went
// wrong, Message is the human-readable reason sent to the client, and Err
// (optional) is the underlying cause kept for logs and errors.Is/As.
//
// Kinds map to HTTP status codes in one place (Status), so the net/http host
// and the Lambda adapter answer identically.
package errs

import (
	"errors"
	"net/http"
)

// Kind classifies a failed request.
type Kind int

const (
	// KindMalformedRequest: empty or unparseable body, missing fields,
	// bad date format, non-integer id.
	KindMalformedRequest Kind = iota + 1

	// KindNotFound: a lookup matched no row.
	KindNotFound

	// KindStorageFailure: acquiring a connection or running a statement failed.
	KindStorageFailure

	// KindSoftWriteFailure: an insert ran without error but affected zero rows.
	// Same status code as KindStorageFailure, different kind.
	KindSoftWriteFailure
)

func (k Kind) String() string {
	switch k {
	case KindMalformedRequest:
		return "MalformedRequest"
	case KindNotFound:
		return "NotFound"
	case KindStorageFailure:
		return "StorageFailure"
	case KindSoftWriteFailure:
		return "SoftWriteFailure"
	default:
		return "Unknown"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindMalformedRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a terminal, client-facing request failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error returns the client message. The cause is reachable through Unwrap.
func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for e.Kind.
func (e *Error) Status() int {
	return e.Kind.Status()
}

// MalformedRequest builds a 400 error.
func MalformedRequest(message string, cause error) *Error {
	return &Error{Kind: KindMalformedRequest, Message: message, Err: cause}
}

// NotFound builds a 404 error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// StorageFailure builds a 500 error whose message carries the upstream error
// text after prefix.
func StorageFailure(prefix string, cause error) *Error {
	return &Error{Kind: KindStorageFailure, Message: prefix + cause.Error(), Err: cause}
}

// SoftWriteFailure builds a 500 error for a write that reported no rows.
func SoftWriteFailure(message string) *Error {
	return &Error{Kind: KindSoftWriteFailure, Message: message}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0 when
// err is not a request error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// StatusOf returns the HTTP status for err; anything that is not an *Error
// is a 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status()
	}
	return http.StatusInternalServerError
}
