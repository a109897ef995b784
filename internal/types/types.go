// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// the student service, the storage gateway, and the HTTP/Lambda adapters
// can all import types without depending on each other.
package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Student is the single persisted entity: one row of the students table.
//
// The ID is supplied by the caller, never generated by the database.
// Handlers only ever hold request-scoped copies of a Student; the backing
// store owns the persisted row.
type Student struct {
	ID          int64
	FirstName   string
	LastName    string
	DateOfBirth Date
	Gender      string
}

// ─────────────────────────────────────────────────────────────────────────────
// InsertPayload is the typed request schema for the insert function.
//
// JSON keys are PascalCase (except id) because that is the contract the
// function has always exposed:
//
//	{ "id": 1, "FirstName": "Ann", "LastName": "Lee",
//	  "DateOfBirth": "1990-05-01", "Gender": "F" }
//
// validate:"..." rules are checked by go-playground/validator:
//   - ID is a pointer so that "missing" (nil) and "zero" can be told apart.
//   - "required" on the names rejects missing keys, null and "".
//   - Gender is a pointer, so "required" rejects only a missing key or null;
//     an empty gender is stored as given.
//   - "datetime=2006-01-02" enforces the yyyy-MM-dd birth date format.
//
// ─────────────────────────────────────────────────────────────────────────────
type InsertPayload struct {
	ID          *StudentID `json:"id"          validate:"required"`
	FirstName   Text       `json:"FirstName"   validate:"required"`
	LastName    Text       `json:"LastName"    validate:"required"`
	DateOfBirth Text       `json:"DateOfBirth" validate:"required,datetime=2006-01-02"`
	Gender      *Text      `json:"Gender"      validate:"required"`
}

// Student converts a validated payload into a Student.
// It must only be called after validation has passed.
func (p InsertPayload) Student() (Student, error) {
	if p.ID == nil || p.Gender == nil {
		return Student{}, errors.New("payload has no id or gender")
	}

	dob, err := ParseDate(string(p.DateOfBirth))
	if err != nil {
		return Student{}, err
	}

	return Student{
		ID:          int64(*p.ID),
		FirstName:   string(p.FirstName),
		LastName:    string(p.LastName),
		DateOfBirth: dob,
		Gender:      string(*p.Gender),
	}, nil
}

// StudentView is the JSON shape returned by the lookup function.
// Field order here is the key order on the wire.
type StudentView struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       Date   `json:"dob"`
	Gender    string `json:"gender"`
}

// View maps a Student to its lookup response shape.
func (s Student) View() StudentView {
	return StudentView{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		DOB:       s.DateOfBirth,
		Gender:    s.Gender,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// StudentID is the JSON representation of a student's primary key.
//
// Clients send it either as a number (1) or as numeric text ("1").
// Anything that is not a whole number in int64 range (1.5, "abc", true,
// an object) fails decoding with an *InvalidIDError instead of silently
// becoming 0.
// ─────────────────────────────────────────────────────────────────────────────
type StudentID int64

// InvalidIDError reports an id value that is not integer-parseable.
type InvalidIDError struct {
	Value string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid id %s: must be an integer", e.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *StudentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	// null leaves the field untouched; the "required" rule reports it.
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return &InvalidIDError{Value: string(data)}
		}
	}

	n, err := ParseID(raw)
	if err != nil {
		return &InvalidIDError{Value: string(data)}
	}

	*id = StudentID(n)
	return nil
}

// ParseID converts decimal text into a student id.
func ParseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
