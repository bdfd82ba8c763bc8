package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ErrInvalidFormat is wrapped by every validation failure so callers can
// classify with errors.Is without caring which field was bad.
var ErrInvalidFormat = errors.New("invalid format")

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

func Email(s string) error {
	if !emailRe.MatchString(s) {
		return fmt.Errorf("%w: email", ErrInvalidFormat)
	}
	return nil
}

// Password enforces the strict variant: at least 8 characters with an
// upper-case letter, a lower-case letter and a digit.
func Password(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidFormat)
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return fmt.Errorf("%w: password needs upper, lower and digit", ErrInvalidFormat)
	}
	return nil
}

func Username(s string) error {
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return fmt.Errorf("%w: username", ErrInvalidFormat)
	}
	return nil
}
