package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencecfp/internal/domain"
)

const speakerColumns = `id, first_name, last_name, email, bio, company, title, photo_url, created_at, updated_at`

type speakerRepository struct {
	DB DBTX
}

func NewSpeakerRepository(db DBTX) domain.SpeakerRepository {
	return &speakerRepository{DB: db}
}

func (r *speakerRepository) Save(ctx context.Context, s *domain.Speaker) error {
	var err error
	if s.ID == "" {
		err = r.insert(ctx, s)
	} else {
		err = r.update(ctx, s)
	}
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *speakerRepository) insert(ctx context.Context, s *domain.Speaker) error {
	query := `
		INSERT INTO cfp_speakers (first_name, last_name, email, bio, company, title, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		s.Name.FirstName(), s.Name.LastName(), s.Email.String(),
		s.Bio, s.Company, s.Title, s.PhotoURL, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
}

func (r *speakerRepository) update(ctx context.Context, s *domain.Speaker) error {
	query := `
		UPDATE cfp_speakers
		SET first_name = $2, last_name = $3, email = $4, bio = $5, company = $6, title = $7, photo_url = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		s.ID, s.Name.FirstName(), s.Name.LastName(), s.Email.String(),
		s.Bio, s.Company, s.Title, s.PhotoURL, s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *speakerRepository) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM cfp_speakers WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *speakerRepository) GetByEmail(ctx context.Context, email string) (*domain.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM cfp_speakers WHERE lower(email) = lower($1)`
	return r.getOne(ctx, query, email)
}

func (r *speakerRepository) getOne(ctx context.Context, query string, arg any) (*domain.Speaker, error) {
	s, err := scanSpeaker(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *speakerRepository) ListByCompany(ctx context.Context, company string) ([]*domain.Speaker, error) {
	query := `
		SELECT ` + speakerColumns + `
		FROM cfp_speakers
		WHERE lower(company) = lower($1)
		ORDER BY last_name, first_name
	`
	return r.list(ctx, query, company)
}

func (r *speakerRepository) SearchByName(ctx context.Context, q string) ([]*domain.Speaker, error) {
	query := `
		SELECT ` + speakerColumns + `
		FROM cfp_speakers
		WHERE first_name ILIKE $1 OR last_name ILIKE $1
		ORDER BY last_name, first_name
	`
	return r.list(ctx, query, containsPattern(q))
}

func (r *speakerRepository) List(ctx context.Context) ([]*domain.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM cfp_speakers ORDER BY last_name, first_name`
	return r.list(ctx, query)
}

func (r *speakerRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Speaker, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	speakers := make([]*domain.Speaker, 0)
	for rows.Next() {
		s, err := scanSpeaker(rows)
		if err != nil {
			return nil, err
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}

func (r *speakerRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM cfp_speakers WHERE id = $1`, id)
	if isInvalidID(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// scanSpeaker reads speakerColumns from row.
func scanSpeaker(row rowScanner) (*domain.Speaker, error) {
	var (
		s                          domain.Speaker
		firstName, lastName, email string
	)
	if err := row.Scan(&s.ID, &firstName, &lastName, &email, &s.Bio, &s.Company, &s.Title, &s.PhotoURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	name, err := domain.NewName(firstName, lastName)
	if err != nil {
		return nil, fmt.Errorf("speaker %s: %w", s.ID, err)
	}
	addr, err := domain.NewEmail(email)
	if err != nil {
		return nil, fmt.Errorf("speaker %s: %w", s.ID, err)
	}
	s.Name = name
	s.Email = addr
	return &s, nil
}
