package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencecfp/internal/domain"
)

type transactor struct {
	DB *sql.DB
}

// NewTransactor returns a Transactor that binds both repositories to one *sql.Tx per call.
func NewTransactor(db *sql.DB) domain.Transactor {
	return &transactor{DB: db}
}

func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, stores domain.Stores) error) error {
	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stores := domain.Stores{
		Sessions: NewSessionRepository(tx),
		Speakers: NewSpeakerRepository(tx),
	}
	if err := fn(ctx, stores); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
