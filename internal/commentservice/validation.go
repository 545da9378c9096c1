package commentservice

import (
	"github.com/ishaangoyal/quickmark/internal/common"
)

const (
	maxTitleLength   = 75
	minContentLength = 10
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckMaxLength(title, maxTitleLength), "title", "must not be more than 75 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
	v.Check(len(content) >= minContentLength, "content", "must be at least 10 characters long")
}

func validateID(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
