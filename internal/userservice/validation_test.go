package userservice

import (
	"testing"

	"github.com/ishaangoyal/quickmark/internal/common"
)

func strptr(s string) *string {
	return &s
}

func TestValidateName(t *testing.T) {
	testCases := []struct {
		name  string
		input *string
		valid bool
	}{
		{name: "absent", input: nil, valid: true},
		{name: "empty", input: strptr(""), valid: false},
		{name: "too short", input: strptr("ab"), valid: false},
		{name: "minimum", input: strptr("abc"), valid: true},
		{name: "maximum", input: strptr("abcdefghijklmnopqrst"), valid: true},
		{name: "too long", input: strptr("abcdefghijklmnopqrstu"), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateName(v, tc.input)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v", tc.valid, v.Valid())
				for _, e := range v.Errors {
					t.Log(e)
				}
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		email string
		valid bool
	}{
		{email: "", valid: false},
		{email: "a", valid: false},
		{email: "a@", valid: false},
		{email: "a@b", valid: false},
		{email: "a@b.c", valid: false},
		{email: "a@b.com", valid: true},
		{email: "first.last+tag@example.co.uk", valid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.email, func(t *testing.T) {
			v := common.NewValidator()
			validateEmail(v, tc.email)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v", tc.valid, v.Valid())
				for _, e := range v.Errors {
					t.Log(e)
				}
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}

	testCases := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "empty", password: "", valid: false},
		{name: "too short", password: "abcde", valid: false},
		{name: "minimum", password: "abcdef", valid: true},
		{name: "typical", password: "correct horse battery", valid: true},
		{name: "over bcrypt limit", password: string(long), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validatePassword(v, tc.password)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v", tc.valid, v.Valid())
				for _, e := range v.Errors {
					t.Log(e)
				}
			}
		})
	}
}
