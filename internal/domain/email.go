package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxEmailLength = 255

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_+&*-]+(?:\.[a-zA-Z0-9_+&*-]+)*@(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,7}$`)

// Email is a validated email address. Comparison ignores case.
type Email struct {
	value string
}

// NewEmail validates value and returns an Email.
func NewEmail(value string) (Email, error) {
	if strings.TrimSpace(value) == "" {
		return Email{}, newValidationError("email", "cannot be empty")
	}
	if utf8.RuneCountInString(value) > maxEmailLength {
		return Email{}, newValidationError("email", "is too long (max 255 characters)")
	}
	if !emailPattern.MatchString(value) {
		return Email{}, newValidationError("email", "invalid format: "+value)
	}
	return Email{value: value}, nil
}

func (e Email) String() string { return e.value }

// LocalPart returns the part before '@'.
func (e Email) LocalPart() string {
	local, _, _ := strings.Cut(e.value, "@")
	return local
}

// Domain returns the part after '@'.
func (e Email) Domain() string {
	_, domain, _ := strings.Cut(e.value, "@")
	return domain
}

// Equal compares addresses case-insensitively.
func (e Email) Equal(other Email) bool {
	return strings.EqualFold(e.value, other.value)
}
