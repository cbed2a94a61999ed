package service

import (
	"net/mail"
	"strings"
	"unicode"
)

const (
	usernameMinLen = 5
	usernameMaxLen = 25
)

// validateSignup collects every problem with the input and reports them as
// one tagged validation failure instead of bailing on the first field.
func validateSignup(in SignupInput) *Error {
	var problems []string
	if _, err := mail.ParseAddress(in.Email); err != nil {
		problems = append(problems, "email is not valid")
	}
	if l := len(in.Username); l < usernameMinLen || l > usernameMaxLen {
		problems = append(problems, "username must be between 5 and 25 characters")
	}
	if !isAlpha(in.Username) || !isAlpha(in.FirstName) || !isAlpha(in.LastName) {
		problems = append(problems, "Unacceptable symbols")
	}
	if in.Password == "" {
		problems = append(problems, "password is required")
	}
	if len(problems) > 0 {
		return Validation(strings.Join(problems, "; "))
	}
	return nil
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
