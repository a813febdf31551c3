package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxNameLength = 100

// Name is a speaker's first and last name. Comparison ignores case; display keeps it.
type Name struct {
	firstName string
	lastName  string
}

// NewName validates both parts and returns a Name.
func NewName(firstName, lastName string) (Name, error) {
	if strings.TrimSpace(firstName) == "" {
		return Name{}, newValidationError("first_name", "cannot be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return Name{}, newValidationError("last_name", "cannot be empty")
	}
	if utf8.RuneCountInString(firstName) > maxNameLength {
		return Name{}, newValidationError("first_name", "is too long (max 100 characters)")
	}
	if utf8.RuneCountInString(lastName) > maxNameLength {
		return Name{}, newValidationError("last_name", "is too long (max 100 characters)")
	}
	return Name{firstName: firstName, lastName: lastName}, nil
}

// ParseName builds a Name from "First Last". Everything after the first
// whitespace run becomes the last name.
func ParseName(fullName string) (Name, error) {
	trimmed := strings.TrimSpace(fullName)
	if trimmed == "" {
		return Name{}, newValidationError("name", "full name cannot be empty")
	}
	i := strings.IndexFunc(trimmed, unicode.IsSpace)
	if i < 0 {
		return Name{}, newValidationError("name", "full name must contain both first and last name")
	}
	first := trimmed[:i]
	last := strings.TrimLeftFunc(trimmed[i:], unicode.IsSpace)
	return NewName(first, last)
}

func (n Name) FirstName() string { return n.firstName }

func (n Name) LastName() string { return n.lastName }

// FullName returns "First Last".
func (n Name) FullName() string {
	return n.firstName + " " + n.lastName
}

// Initials returns "F.L.".
func (n Name) Initials() string {
	f, _ := utf8.DecodeRuneInString(n.firstName)
	l, _ := utf8.DecodeRuneInString(n.lastName)
	return string(f) + "." + string(l) + "."
}

// Equal compares both parts case-insensitively.
func (n Name) Equal(other Name) bool {
	return strings.EqualFold(n.firstName, other.firstName) && strings.EqualFold(n.lastName, other.lastName)
}

// Compare orders by last name, then first name, ignoring case.
func (n Name) Compare(other Name) int {
	if c := strings.Compare(strings.ToLower(n.lastName), strings.ToLower(other.lastName)); c != 0 {
		return c
	}
	return strings.Compare(strings.ToLower(n.firstName), strings.ToLower(other.firstName))
}

func (n Name) String() string {
	return n.FullName()
}
