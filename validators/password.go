package validators

import (
	"errors"
	"unicode"
)

var ErrPasswordWeak = errors.New("Password must be at least 8 characters long and include at least one lowercase letter, one uppercase letter, one number, and one symbol.")

// PasswordValidator enforces the registration strength policy. Note that
// reset-password deliberately does not call this, matching upstream behavior.
func PasswordValidator(p string) error {
	if len(p) < 8 {
		return ErrPasswordWeak
	}

	var lower, upper, digit, symbol bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	if !lower || !upper || !digit || !symbol {
		return ErrPasswordWeak
	}

	return nil
}
