package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"conferencecfp/internal/domain"
)

const sessionColumns = `s.id, s.title, s.summary, s.outline, s.learning_objectives, s.target_audience, s.prerequisites,
		s.session_type, s.session_level, s.duration_minutes, s.status, s.created_at, s.last_modified_at`

type sessionRepository struct {
	DB DBTX
}

func NewSessionRepository(db DBTX) domain.SessionRepository {
	return &sessionRepository{DB: db}
}

func (r *sessionRepository) Save(ctx context.Context, c *domain.ConferenceSession) error {
	a := c.Abstract()
	if c.ID == "" {
		query := `
			INSERT INTO cfp_sessions (title, summary, outline, learning_objectives, target_audience, prerequisites,
				session_type, session_level, duration_minutes, status, created_at, last_modified_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id
		`
		err := r.DB.QueryRowContext(ctx, query,
			a.Title(), a.Summary(), a.Outline(), a.LearningObjectives(), a.TargetAudience(), a.Prerequisites(),
			c.SessionType().String(), c.SessionLevel().String(), c.DurationMinutes(), c.Status().String(),
			c.CreatedAt(), c.LastModifiedAt(),
		).Scan(&c.ID)
		if err != nil {
			return err
		}
	} else {
		query := `
			UPDATE cfp_sessions
			SET title = $2, summary = $3, outline = $4, learning_objectives = $5, target_audience = $6, prerequisites = $7,
				session_type = $8, session_level = $9, duration_minutes = $10, status = $11, last_modified_at = $12
			WHERE id = $1
		`
		result, err := r.DB.ExecContext(ctx, query, c.ID,
			a.Title(), a.Summary(), a.Outline(), a.LearningObjectives(), a.TargetAudience(), a.Prerequisites(),
			c.SessionType().String(), c.SessionLevel().String(), c.DurationMinutes(), c.Status().String(),
			c.LastModifiedAt(),
		)
		if err != nil {
			return err
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return domain.ErrNotFound
		}
	}
	// Replace speaker membership with the aggregate's current list
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM cfp_session_speakers WHERE session_id = $1`, c.ID); err != nil {
		return err
	}
	for i, speakerID := range c.SpeakerIDs() {
		query := `INSERT INTO cfp_session_speakers (session_id, speaker_id, position) VALUES ($1, $2, $3)`
		if _, err := r.DB.ExecContext(ctx, query, c.ID, speakerID, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.ConferenceSession, error) {
	sessions, err := r.list(ctx, `SELECT `+sessionColumns+` FROM cfp_sessions s WHERE s.id = $1`, id)
	if isInvalidID(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, domain.ErrNotFound
	}
	return sessions[0], nil
}

func (r *sessionRepository) ListBySpeaker(ctx context.Context, speaker *domain.Speaker) ([]*domain.ConferenceSession, error) {
	if speaker == nil || speaker.ID == "" {
		return []*domain.ConferenceSession{}, nil
	}
	return r.ListBySpeakerID(ctx, speaker.ID)
}

func (r *sessionRepository) ListBySpeakerID(ctx context.Context, speakerID string) ([]*domain.ConferenceSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM cfp_sessions s
		INNER JOIN cfp_session_speakers ss ON ss.session_id = s.id
		WHERE ss.speaker_id = $1
		ORDER BY s.created_at, s.id
	`
	sessions, err := r.list(ctx, query, speakerID)
	if isInvalidID(err) {
		return []*domain.ConferenceSession{}, nil
	}
	return sessions, err
}

func (r *sessionRepository) ListByStatus(ctx context.Context, status domain.SessionStatus) ([]*domain.ConferenceSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cfp_sessions s WHERE s.status = $1 ORDER BY s.created_at, s.id`
	return r.list(ctx, query, status.String())
}

func (r *sessionRepository) ListByType(ctx context.Context, sessionType domain.SessionType) ([]*domain.ConferenceSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cfp_sessions s WHERE s.session_type = $1 ORDER BY s.created_at, s.id`
	return r.list(ctx, query, sessionType.String())
}

func (r *sessionRepository) ListByLevel(ctx context.Context, level domain.SessionLevel) ([]*domain.ConferenceSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cfp_sessions s WHERE s.session_level = $1 ORDER BY s.created_at, s.id`
	return r.list(ctx, query, level.String())
}

func (r *sessionRepository) List(ctx context.Context) ([]*domain.ConferenceSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cfp_sessions s ORDER BY s.created_at, s.id`
	return r.list(ctx, query)
}

func (r *sessionRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM cfp_sessions WHERE id = $1`, id)
	if isInvalidID(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// list runs a session query, then batch-loads the speakers of every returned session.
func (r *sessionRepository) list(ctx context.Context, query string, args ...any) ([]*domain.ConferenceSession, error) {
	snapshots, err := r.querySnapshots(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	sessions := make([]*domain.ConferenceSession, 0, len(snapshots))
	if len(snapshots) == 0 {
		return sessions, nil
	}
	sessionIDs := make([]string, 0, len(snapshots))
	for _, snap := range snapshots {
		sessionIDs = append(sessionIDs, snap.ID)
	}
	speakersBySession, err := r.loadSpeakers(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}
	for _, snap := range snapshots {
		snap.Speakers = speakersBySession[snap.ID]
		sessions = append(sessions, domain.RestoreConferenceSession(snap))
	}
	return sessions, nil
}

// querySnapshots reads all session rows and closes the cursor before returning,
// since a transaction cannot run a second query while rows are open.
func (r *sessionRepository) querySnapshots(ctx context.Context, query string, args ...any) ([]domain.SessionSnapshot, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var snapshots []domain.SessionSnapshot
	for rows.Next() {
		snap, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

func (r *sessionRepository) loadSpeakers(ctx context.Context, sessionIDs []string) (map[string][]*domain.Speaker, error) {
	query := `
		SELECT ss.session_id, sp.id, sp.first_name, sp.last_name, sp.email, sp.bio, sp.company, sp.title, sp.photo_url, sp.created_at, sp.updated_at
		FROM cfp_session_speakers ss
		INNER JOIN cfp_speakers sp ON sp.id = ss.speaker_id
		WHERE ss.session_id = ANY($1)
		ORDER BY ss.session_id, ss.position
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(sessionIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string][]*domain.Speaker)
	for rows.Next() {
		var sessionID string
		sp, err := scanSpeaker(prefixScanner{row: rows, prefix: []any{&sessionID}})
		if err != nil {
			return nil, err
		}
		out[sessionID] = append(out[sessionID], sp)
	}
	return out, rows.Err()
}

// prefixScanner scans leading columns into prefix before handing the rest to the caller.
type prefixScanner struct {
	row    rowScanner
	prefix []any
}

func (p prefixScanner) Scan(dest ...any) error {
	return p.row.Scan(append(p.prefix, dest...)...)
}

func scanSession(row rowScanner) (domain.SessionSnapshot, error) {
	var snap domain.SessionSnapshot
	var title, summary, outline, objectives, audience string
	var prerequisites, sessionType, level, status string
	err := row.Scan(&snap.ID, &title, &summary, &outline, &objectives, &audience, &prerequisites,
		&sessionType, &level, &snap.DurationMinutes, &status, &snap.CreatedAt, &snap.LastModifiedAt)
	if err != nil {
		return snap, err
	}
	abstract, err := domain.NewSessionAbstract(domain.SessionAbstractParams{
		Title:              title,
		Summary:            summary,
		Outline:            outline,
		LearningObjectives: objectives,
		TargetAudience:     audience,
		Prerequisites:      &prerequisites,
	})
	if err != nil {
		return snap, fmt.Errorf("session %s: %w", snap.ID, err)
	}
	snap.Abstract = abstract
	if snap.SessionType, err = domain.ParseSessionType(sessionType); err != nil {
		return snap, fmt.Errorf("session %s: %w", snap.ID, err)
	}
	if snap.SessionLevel, err = domain.ParseSessionLevel(level); err != nil {
		return snap, fmt.Errorf("session %s: %w", snap.ID, err)
	}
	if snap.Status, err = domain.ParseSessionStatus(status); err != nil {
		return snap, fmt.Errorf("session %s: %w", snap.ID, err)
	}
	return snap, nil
}
