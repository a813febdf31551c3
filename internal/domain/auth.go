package domain

import (
	"errors"
	"time"
)

// RoleOrganizer is the role allowed to move sessions through review.
const RoleOrganizer = "organizer"

// ErrInvalidToken is returned when a bearer token cannot be verified.
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer issues tokens (e.g. JWT) for an organizer.
type TokenIssuer interface {
	Issue(subject, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}
