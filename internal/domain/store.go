package domain

import "context"

// Stores groups the repositories bound to one transaction.
type Stores struct {
	Sessions SessionRepository
	Speakers SpeakerRepository
}

// Transactor runs fn inside a single transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}
