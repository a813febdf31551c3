package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"conferencecfp/internal/domain"
)

type sessionService struct {
	tx             domain.Transactor
	emailService   domain.EmailService
	notify         notifier
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewSessionService returns a SessionService. emailService and publisher may be nil.
func NewSessionService(tx domain.Transactor,
	emailService domain.EmailService,
	publisher domain.NotificationPublisher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SessionService {
	return &sessionService{
		tx:             tx,
		emailService:   emailService,
		notify:         notifier{publisher: publisher, logger: logger},
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, draft domain.SessionDraft) (*domain.SessionView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	session, err := domain.NewConferenceSessionFromDraft(draft)
	if err != nil {
		return nil, err
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context, st domain.Stores) error {
		return st.Sessions.Save(ctx, session)
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.notify.publish(ctx, domain.NewSessionNotification(domain.NotificationSessionSubmitted, session))
	return domain.NewSessionView(session), nil
}

func (s *sessionService) GetSession(ctx context.Context, id string) (*domain.SessionView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var session *domain.ConferenceSession
	err := s.tx.WithinTx(ctx, func(ctx context.Context, st domain.Stores) error {
		var err error
		session, err = st.Sessions.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return domain.NewSessionView(session), nil
}

func (s *sessionService) ListSessions(ctx context.Context) ([]*domain.SessionView, error) {
	return s.list(ctx, "list sessions", func(ctx context.Context, repo domain.SessionRepository) ([]*domain.ConferenceSession, error) {
		return repo.List(ctx)
	})
}

func (s *sessionService) FindSessionsByStatus(ctx context.Context, status domain.SessionStatus) ([]*domain.SessionView, error) {
	return s.list(ctx, "find sessions by status", func(ctx context.Context, repo domain.SessionRepository) ([]*domain.ConferenceSession, error) {
		return repo.ListByStatus(ctx, status)
	})
}

func (s *sessionService) FindSessionsBySpeaker(ctx context.Context, speakerID string) ([]*domain.SessionView, error) {
	return s.list(ctx, "find sessions by speaker", func(ctx context.Context, repo domain.SessionRepository) ([]*domain.ConferenceSession, error) {
		return repo.ListBySpeakerID(ctx, speakerID)
	})
}

func (s *sessionService) FindSessionsByType(ctx context.Context, sessionType domain.SessionType) ([]*domain.SessionView, error) {
	return s.list(ctx, "find sessions by type", func(ctx context.Context, repo domain.SessionRepository) ([]*domain.ConferenceSession, error) {
		return repo.ListByType(ctx, sessionType)
	})
}

func (s *sessionService) FindSessionsByLevel(ctx context.Context, level domain.SessionLevel) ([]*domain.SessionView, error) {
	return s.list(ctx, "find sessions by level", func(ctx context.Context, repo domain.SessionRepository) ([]*domain.ConferenceSession, error) {
		return repo.ListByLevel(ctx, level)
	})
}

func (s *sessionService) list(ctx context.Context, op string, query func(context.Context, domain.SessionRepository) ([]*domain.ConferenceSession, error)) ([]*domain.SessionView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var sessions []*domain.ConferenceSession
	err := s.tx.WithinTx(ctx, func(ctx context.Context, st domain.Stores) error {
		var err error
		sessions, err = query(ctx, st.Sessions)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return domain.NewSessionViews(sessions), nil
}

func (s *sessionService) UpdateSession(ctx context.Context, id string, draft domain.SessionDraft) (*domain.SessionView, error) {
	return s.mutate(ctx, "update session", id, func(ctx context.Context, st domain.Stores, session *domain.ConferenceSession) (bool, error) {
		if err := session.ApplyDraft(draft); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (s *sessionService) DeleteSession(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var deleted bool
	err := s.tx.WithinTx(ctx, func(ctx context.Context, st domain.Stores) error {
		var err error
		deleted, err = st.Sessions.Delete(ctx, id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return deleted, nil
}

// AddSpeakerToSession attaches the speaker. Attaching an already attached
// speaker is a no-op that still returns the current session.
func (s *sessionService) AddSpeakerToSession(ctx context.Context, sessionID, speakerID string) (*domain.SessionView, error) {
	return s.mutate(ctx, "add speaker to session", sessionID, func(ctx context.Context, st domain.Stores, session *domain.ConferenceSession) (bool, error) {
		speaker, err := st.Speakers.GetByID(ctx, speakerID)
		if err != nil {
			return false, err
		}
		return session.AddSpeaker(speaker), nil
	})
}

// RemoveSpeakerFromSession detaches the speaker. It fails with
// ErrSpeakerNotAttached when the speaker exists but is not on the session.
func (s *sessionService) RemoveSpeakerFromSession(ctx context.Context, sessionID, speakerID string) (*domain.SessionView, error) {
	return s.mutate(ctx, "remove speaker from session", sessionID, func(ctx context.Context, st domain.Stores, session *domain.ConferenceSession) (bool, error) {
		speaker, err := st.Speakers.GetByID(ctx, speakerID)
		if err != nil {
			return false, err
		}
		if !session.RemoveSpeaker(speaker) {
			return false, domain.ErrSpeakerNotAttached
		}
		return true, nil
	})
}

func (s *sessionService) StartReview(ctx context.Context, id string) (*domain.SessionView, error) {
	return s.transition(ctx, "start review", id, (*domain.ConferenceSession).MarkUnderReview)
}

func (s *sessionService) AcceptSession(ctx context.Context, id string) (*domain.SessionView, error) {
	return s.transition(ctx, "accept session", id, (*domain.ConferenceSession).Accept)
}

func (s *sessionService) RejectSession(ctx context.Context, id string) (*domain.SessionView, error) {
	return s.transition(ctx, "reject session", id, (*domain.ConferenceSession).Reject)
}

func (s *sessionService) WithdrawSession(ctx context.Context, id string) (*domain.SessionView, error) {
	return s.transition(ctx, "withdraw session", id, (*domain.ConferenceSession).Withdraw)
}

// mutate loads the session, applies fn and saves the session when fn reports a change.
func (s *sessionService) mutate(ctx context.Context, op, id string, fn func(context.Context, domain.Stores, *domain.ConferenceSession) (bool, error)) (*domain.SessionView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var session *domain.ConferenceSession
	err := s.tx.WithinTx(ctx, func(ctx context.Context, st domain.Stores) error {
		var err error
		session, err = st.Sessions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		changed, err := fn(ctx, st, session)
		if err != nil || !changed {
			return err
		}
		return st.Sessions.Save(ctx, session)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return domain.NewSessionView(session), nil
}

func (s *sessionService) transition(ctx context.Context, op, id string, apply func(*domain.ConferenceSession) (domain.Notification, error)) (*domain.SessionView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		session *domain.ConferenceSession
		note    domain.Notification
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, st domain.Stores) error {
		var err error
		session, err = st.Sessions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if note, err = apply(session); err != nil {
			return err
		}
		return st.Sessions.Save(ctx, session)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.notify.publish(ctx, note)
	if note.Kind == domain.NotificationSessionAccepted || note.Kind == domain.NotificationSessionRejected {
		s.sendDecision(ctx, session)
	}
	return domain.NewSessionView(session), nil
}

func (s *sessionService) sendDecision(ctx context.Context, session *domain.ConferenceSession) {
	if s.emailService == nil {
		return
	}
	for _, speaker := range session.Speakers() {
		data := &domain.SessionDecisionEmailData{
			Email:        speaker.Email.String(),
			FirstName:    speaker.Name.FirstName(),
			SessionTitle: session.Abstract().Title(),
			Status:       session.Status().String(),
			Accepted:     session.Status() == domain.SessionStatusAccepted,
		}
		if err := s.emailService.SendSessionDecision(ctx, data); err != nil {
			s.logger.ErrorContext(ctx, "send session decision failed",
				"session_id", session.ID,
				"speaker_id", speaker.ID,
				"error", err,
			)
		}
	}
}
