package student

import (
	"testing"
	"time"

	"github.com/aanand-mishra/student-functions/internal/errs"
	"github.com/aanand-mishra/student-functions/internal/types"
)

func TestDecodeInsertValid(t *testing.T) {
	bodies := []string{
		`{"id":1,"FirstName":"Ann","LastName":"Lee","DateOfBirth":"1990-05-01","Gender":"F"}`,
		`{"id":"1","FirstName":"Ann","LastName":"Lee","DateOfBirth":"1990-05-01","Gender":"F"}`,
		"  \n" + `{"Gender":"F","DateOfBirth":"1990-05-01","LastName":"Lee","FirstName":"Ann","id":1}`,
	}
	want := types.Student{ID: 1, FirstName: "Ann", LastName: "Lee", DateOfBirth: types.NewDate(1990, time.May, 1), Gender: "F"}

	for _, body := range bodies {
		got, err := DecodeInsert([]byte(body))
		if err != nil {
			t.Errorf("DecodeInsert(%s) unexpected error: %v", body, err)
			continue
		}
		if got != want {
			t.Errorf("DecodeInsert(%s) = %+v, want %+v", body, got, want)
		}
	}
}

func TestDecodeInsertRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", ``, MsgBodyMissing},
		{"whitespace body", "  \n\t", MsgBodyMissing},
		{"not json", `id=1&FirstName=Ann`, MsgInvalidJSON},
		{"truncated json", `{"id":1,"FirstName":"Ann"`, MsgInvalidJSON},
		{"json array", `[1,2,3]`, MsgInvalidJSON},
		{"non-integer id", `{"id":"abc","FirstName":"Ann","LastName":"Lee","DateOfBirth":"1990-05-01","Gender":"F"}`, MsgInvalidID},
		{"fractional id", `{"id":1.5,"FirstName":"Ann","LastName":"Lee","DateOfBirth":"1990-05-01","Gender":"F"}`, MsgInvalidID},
		{"missing id", `{"FirstName":"Ann","LastName":"Lee","DateOfBirth":"1990-05-01","Gender":"F"}`, MsgMissingFields},
		{"missing FirstName", `{"id":1,"LastName":"Lee","DateOfBirth":"1990-05-01","Gender":"F"}`, MsgMissingFields},
		{"missing LastName", `{"id":1,"FirstName":"Ann","DateOfBirth":"1990-05-01","Gender":"F"}`, MsgMissingFields},
		{"missing DateOfBirth", `{"id":1,"FirstName":"Ann","LastName":"Lee","Gender":"F"}`, MsgMissingFields},
		{"missing Gender", `{"id":1,"FirstName":"Ann","LastName":"Lee","DateOfBirth":"1990-05-01"}`, MsgMissingFields},
		{"null FirstName", `{"id":1,"FirstName":null,"LastName":"Lee","DateOfBirth":"1990-05-01","Gender":"F"}`, MsgMissingFields},
		{"null Gender", `{"id":1,"FirstName":"Ann","LastName":"Lee","DateOfBirth":"1990-05-01","Gender":null}`, MsgMissingFields},
		{"empty FirstName", `{"id":1,"FirstName":"","LastName":"Lee","DateOfBirth":"1990-05-01","Gender":"F"}`, MsgMissingFields},
		{"null id", `{"id":null,"FirstName":"Ann","LastName":"Lee","DateOfBirth":"1990-05-01","Gender":"F"}`, MsgMissingFields},
		{"json null", `null`, MsgMissingFields},
		{"empty object", `{}`, MsgMissingFields},
		{"slash date", `{"id":1,"FirstName":"Ann","LastName":"Lee","DateOfBirth":"2020/01/01","Gender":"F"}`, MsgInvalidDate},
		{"impossible date", `{"id":1,"FirstName":"Ann","LastName":"Lee","DateOfBirth":"1990-02-30","Gender":"F"}`, MsgInvalidDate},
		{"numeric date", `{"id":1,"FirstName":"Ann","LastName":"Lee","DateOfBirth":19900501,"Gender":"F"}`, MsgInvalidDate},
		{"object field", `{"id":1,"FirstName":"Ann","LastName":"Lee","DateOfBirth":"1990-05-01","Gender":{"v":"F"}}`, "Invalid value for field Gender."},
		{"array field", `{"id":1,"FirstName":["Ann"],"LastName":"Lee","DateOfBirth":"1990-05-01","Gender":"F"}`, "Invalid value for field FirstName."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInsert([]byte(tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errs.KindOf(err); got != errs.KindMalformedRequest {
				t.Errorf("kind = %v, want MalformedRequest", got)
			}
			if err.Error() != tt.want {
				t.Errorf("message = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestDecodeInsertEmptyGender(t *testing.T) {
	body := `{"id":1,"FirstName":"Ann","LastName":"Lee","DateOfBirth":"1990-05-01","Gender":""}`

	got, err := DecodeInsert([]byte(body))
	if err != nil {
		t.Fatalf("DecodeInsert(%s) unexpected error: %v", body, err)
	}
	if got.Gender != "" || got.ID != 1 {
		t.Errorf("DecodeInsert(%s) = %+v", body, got)
	}
}

func TestDecodeInsertScalarText(t *testing.T) {
	body := `{"id":1,"FirstName":"Ann","LastName":true,"DateOfBirth":"1990-05-01","Gender":7}`

	got, err := DecodeInsert([]byte(body))
	if err != nil {
		t.Fatalf("DecodeInsert(%s) unexpected error: %v", body, err)
	}
	if got.LastName != "true" || got.Gender != "7" {
		t.Errorf("DecodeInsert(%s) = %+v, want LastName \"true\" and Gender \"7\"", body, got)
	}
}
