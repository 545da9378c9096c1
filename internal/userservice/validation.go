package userservice

import (
	"regexp"

	"github.com/ishaangoyal/quickmark/internal/common"
)

var (
	EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// validateName only runs when a name is supplied; the field is optional.
func validateName(v *common.Validator, name *string) {
	if name == nil {
		return
	}
	v.Check(v.CheckStringLength(*name, 3, 20), "name", "must be between 3 and 20 characters long")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(EmailRX.MatchString(email), "email", "must be a valid email address")
}

// The upper bound keeps the password within bcrypt's 72-byte input limit.
func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(v.CheckStringLength(password, 6, 72), "password", "must be between 6 and 72 characters long")
}

func validateID(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
