package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"conferencecfp/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type sessionRecord struct {
	seq        int
	snap       domain.SessionSnapshot
	speakerIDs []string
}

type speakerRecord struct {
	seq     int
	speaker domain.Speaker
}

// memDB is an in-memory store shared by the fake repositories. It keeps
// copies so that uncommitted changes never leak, and rolls back on error.
type memDB struct {
	mu       sync.Mutex
	speakers map[string]speakerRecord
	sessions map[string]sessionRecord
	nextID   int
	txErr    error // if set, WithinTx returns this error without running fn
	commits  int
}

func newMemDB() *memDB {
	return &memDB{
		speakers: make(map[string]speakerRecord),
		sessions: make(map[string]sessionRecord),
		nextID:   1,
	}
}

func (db *memDB) WithinTx(ctx context.Context, fn func(ctx context.Context, stores domain.Stores) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.txErr != nil {
		return db.txErr
	}
	speakers := maps.Clone(db.speakers)
	sessions := maps.Clone(db.sessions)
	nextID := db.nextID
	stores := domain.Stores{
		Sessions: &memSessionRepo{db: db},
		Speakers: &memSpeakerRepo{db: db},
	}
	if err := fn(ctx, stores); err != nil {
		db.speakers, db.sessions, db.nextID = speakers, sessions, nextID
		return err
	}
	db.commits++
	return nil
}

func (db *memDB) id(prefix string) (string, int) {
	seq := db.nextID
	db.nextID++
	return fmt.Sprintf("%s-%d", prefix, seq), seq
}

type memSpeakerRepo struct {
	db *memDB
}

func (r *memSpeakerRepo) Save(ctx context.Context, s *domain.Speaker) error {
	for id, rec := range r.db.speakers {
		if id != s.ID && rec.speaker.Email.Equal(s.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	rec, ok := r.db.speakers[s.ID]
	if s.ID == "" {
		s.ID, rec.seq = r.db.id("sp")
	} else if !ok {
		return domain.ErrNotFound
	}
	rec.speaker = *s
	r.db.speakers[s.ID] = rec
	return nil
}

func (r *memSpeakerRepo) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	rec, ok := r.db.speakers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s := rec.speaker
	return &s, nil
}

func (r *memSpeakerRepo) GetByEmail(ctx context.Context, email string) (*domain.Speaker, error) {
	for _, s := range r.filter(func(s *domain.Speaker) bool { return strings.EqualFold(s.Email.String(), email) }) {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memSpeakerRepo) ListByCompany(ctx context.Context, company string) ([]*domain.Speaker, error) {
	return r.filter(func(s *domain.Speaker) bool { return strings.EqualFold(s.Company, company) }), nil
}

func (r *memSpeakerRepo) SearchByName(ctx context.Context, query string) ([]*domain.Speaker, error) {
	q := strings.ToLower(query)
	return r.filter(func(s *domain.Speaker) bool {
		return strings.Contains(strings.ToLower(s.Name.FirstName()), q) ||
			strings.Contains(strings.ToLower(s.Name.LastName()), q)
	}), nil
}

func (r *memSpeakerRepo) List(ctx context.Context) ([]*domain.Speaker, error) {
	return r.filter(func(*domain.Speaker) bool { return true }), nil
}

func (r *memSpeakerRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := r.db.speakers[id]; !ok {
		return false, nil
	}
	delete(r.db.speakers, id)
	return true, nil
}

func (r *memSpeakerRepo) filter(keep func(*domain.Speaker) bool) []*domain.Speaker {
	recs := slices.SortedFunc(maps.Values(r.db.speakers), func(a, b speakerRecord) int { return a.seq - b.seq })
	out := make([]*domain.Speaker, 0)
	for _, rec := range recs {
		s := rec.speaker
		if keep(&s) {
			out = append(out, &s)
		}
	}
	return out
}

type memSessionRepo struct {
	db *memDB
}

func (r *memSessionRepo) Save(ctx context.Context, c *domain.ConferenceSession) error {
	rec, ok := r.db.sessions[c.ID]
	if c.ID == "" {
		c.ID, rec.seq = r.db.id("cs")
	} else if !ok {
		return domain.ErrNotFound
	}
	for _, id := range c.SpeakerIDs() {
		if _, ok := r.db.speakers[id]; !ok {
			return fmt.Errorf("speaker %s: foreign key violation", id)
		}
	}
	rec.snap = domain.SessionSnapshot{
		ID:              c.ID,
		Abstract:        c.Abstract(),
		SessionType:     c.SessionType(),
		SessionLevel:    c.SessionLevel(),
		DurationMinutes: c.DurationMinutes(),
		Status:          c.Status(),
		CreatedAt:       c.CreatedAt(),
		LastModifiedAt:  c.LastModifiedAt(),
	}
	rec.speakerIDs = c.SpeakerIDs()
	r.db.sessions[c.ID] = rec
	return nil
}

func (r *memSessionRepo) GetByID(ctx context.Context, id string) (*domain.ConferenceSession, error) {
	rec, ok := r.db.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.restore(rec), nil
}

// restore rebuilds the session, dropping speakers that no longer exist like a cascading delete.
func (r *memSessionRepo) restore(rec sessionRecord) *domain.ConferenceSession {
	snap := rec.snap
	snap.Speakers = nil
	for _, id := range rec.speakerIDs {
		if sp, ok := r.db.speakers[id]; ok {
			s := sp.speaker
			snap.Speakers = append(snap.Speakers, &s)
		}
	}
	return domain.RestoreConferenceSession(snap)
}

func (r *memSessionRepo) ListBySpeaker(ctx context.Context, speaker *domain.Speaker) ([]*domain.ConferenceSession, error) {
	if speaker == nil || speaker.ID == "" {
		return []*domain.ConferenceSession{}, nil
	}
	return r.ListBySpeakerID(ctx, speaker.ID)
}

func (r *memSessionRepo) ListBySpeakerID(ctx context.Context, speakerID string) ([]*domain.ConferenceSession, error) {
	return r.filter(func(c *domain.ConferenceSession) bool { return slices.Contains(c.SpeakerIDs(), speakerID) }), nil
}

func (r *memSessionRepo) ListByStatus(ctx context.Context, status domain.SessionStatus) ([]*domain.ConferenceSession, error) {
	return r.filter(func(c *domain.ConferenceSession) bool { return c.Status() == status }), nil
}

func (r *memSessionRepo) ListByType(ctx context.Context, sessionType domain.SessionType) ([]*domain.ConferenceSession, error) {
	return r.filter(func(c *domain.ConferenceSession) bool { return c.SessionType() == sessionType }), nil
}

func (r *memSessionRepo) ListByLevel(ctx context.Context, level domain.SessionLevel) ([]*domain.ConferenceSession, error) {
	return r.filter(func(c *domain.ConferenceSession) bool { return c.SessionLevel() == level }), nil
}

func (r *memSessionRepo) List(ctx context.Context) ([]*domain.ConferenceSession, error) {
	return r.filter(func(*domain.ConferenceSession) bool { return true }), nil
}

func (r *memSessionRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := r.db.sessions[id]; !ok {
		return false, nil
	}
	delete(r.db.sessions, id)
	return true, nil
}

func (r *memSessionRepo) filter(keep func(*domain.ConferenceSession) bool) []*domain.ConferenceSession {
	recs := slices.SortedFunc(maps.Values(r.db.sessions), func(a, b sessionRecord) int { return a.seq - b.seq })
	out := make([]*domain.ConferenceSession, 0)
	for _, rec := range recs {
		if c := r.restore(rec); keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// fakeEmailService records sent emails.
type fakeEmailService struct {
	welcomes  []*domain.SpeakerWelcomeEmailData
	decisions []*domain.SessionDecisionEmailData
	err       error
}

func (f *fakeEmailService) SendSpeakerWelcome(ctx context.Context, data *domain.SpeakerWelcomeEmailData) error {
	f.welcomes = append(f.welcomes, data)
	return f.err
}

func (f *fakeEmailService) SendSessionDecision(ctx context.Context, data *domain.SessionDecisionEmailData) error {
	f.decisions = append(f.decisions, data)
	return f.err
}

// recordingPublisher collects published notifications.
type recordingPublisher struct {
	notes []domain.Notification
	err   error
}

func (p *recordingPublisher) Publish(ctx context.Context, n domain.Notification) error {
	p.notes = append(p.notes, n)
	return p.err
}

func (p *recordingPublisher) kinds() []domain.NotificationKind {
	out := make([]domain.NotificationKind, 0, len(p.notes))
	for _, n := range p.notes {
		out = append(out, n.Kind)
	}
	return out
}

var errStoreDown = errors.New("store unavailable")
