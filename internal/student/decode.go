package student

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-functions/internal/errs"
	"github.com/aanand-mishra/student-functions/internal/types"
	"github.com/go-playground/validator/v10"
)

// Client-facing reasons for a rejected insert.
const (
	MsgBodyMissing   = "Request body is missing or invalid."
	MsgInvalidJSON   = "Invalid JSON format."
	MsgMissingFields = "Missing required fields: id, FirstName, LastName, DateOfBirth, Gender."
	MsgInvalidDate   = "Invalid DateOfBirth format. Expected format: yyyy-MM-dd."
	MsgInvalidID     = "Invalid id: must be an integer."
)

// A validator caches struct metadata and is safe for concurrent use, so one
// instance serves every request.
var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeInsert turns a raw request body into a Student, or a
// KindMalformedRequest *errs.Error explaining why it cannot.
//
// Checks run in this order: empty body, JSON syntax and id coercion,
// missing fields, birth date format.
func DecodeInsert(body []byte) (types.Student, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return types.Student{}, errs.MalformedRequest(MsgBodyMissing, nil)
	}

	var payload types.InsertPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Student{}, decodeError(err)
	}

	if err := validate.Struct(payload); err != nil {
		return types.Student{}, validationError(err)
	}

	st, err := payload.Student()
	if err != nil {
		// unreachable once "datetime" has passed
		return types.Student{}, errs.MalformedRequest(MsgInvalidDate, err)
	}

	return st, nil
}

func decodeError(err error) *errs.Error {
	var idErr *types.InvalidIDError
	if errors.As(err, &idErr) {
		return errs.MalformedRequest(MsgInvalidID, err)
	}

	// A well-formed document with a composite text field, e.g. "Gender": {}.
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return errs.MalformedRequest(fmt.Sprintf("Invalid value for field %s.", typeErr.Field), err)
	}

	return errs.MalformedRequest(MsgInvalidJSON, err)
}

// validationError reports missing fields before a bad date, so a payload
// with both problems is told about the missing fields first.
func validationError(err error) *errs.Error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.MalformedRequest(MsgInvalidJSON, err)
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return errs.MalformedRequest(MsgMissingFields, err)
		}
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "datetime" {
			return errs.MalformedRequest(MsgInvalidDate, err)
		}
	}

	return errs.MalformedRequest(MsgInvalidJSON, err)
}
