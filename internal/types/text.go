package types

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Text is a free-form text field of the insert payload.
//
// Strings are taken as-is. Numbers and booleans are accepted too and kept
// as their literal JSON text, so "Gender": 7 stores "7". Objects and arrays
// are rejected with a *json.UnmarshalTypeError naming the field.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &json.UnmarshalTypeError{Value: "empty", Type: reflect.TypeOf(Text(""))}
	}

	switch data[0] {
	case 'n':
		// null leaves the field untouched; the "required" rule reports it.
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case '{':
		return &json.UnmarshalTypeError{Value: "object", Type: reflect.TypeOf(Text(""))}
	case '[':
		return &json.UnmarshalTypeError{Value: "array", Type: reflect.TypeOf(Text(""))}
	default:
		// number, true or false
		*t = Text(data)
		return nil
	}
}
