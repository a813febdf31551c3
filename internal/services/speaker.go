package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conferencecfp/internal/domain"
)

type speakerService struct {
	tx             domain.Transactor
	emailService   domain.EmailService
	notify         notifier
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewSpeakerService returns a SpeakerService. emailService and publisher may be nil.
func NewSpeakerService(tx domain.Transactor,
	emailService domain.EmailService,
	publisher domain.NotificationPublisher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SpeakerService {
	return &speakerService{
		tx:             tx,
		emailService:   emailService,
		notify:         notifier{publisher: publisher, logger: logger},
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *speakerService) RegisterSpeaker(ctx context.Context, profile domain.SpeakerProfile) (*domain.SpeakerView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speaker, err := domain.NewSpeaker(profile)
	if err != nil {
		return nil, err
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context, st domain.Stores) error {
		if err := ensureEmailAvailable(ctx, st.Speakers, speaker.Email, ""); err != nil {
			return err
		}
		return st.Speakers.Save(ctx, speaker)
	})
	if err != nil {
		return nil, fmt.Errorf("register speaker: %w", err)
	}

	s.notify.publish(ctx, domain.NewSpeakerNotification(domain.NotificationSpeakerRegistered, speaker))
	if s.emailService != nil {
		data := &domain.SpeakerWelcomeEmailData{
			Email:     speaker.Email.String(),
			FirstName: speaker.Name.FirstName(),
			SpeakerID: speaker.ID,
		}
		if err := s.emailService.SendSpeakerWelcome(ctx, data); err != nil {
			s.logger.ErrorContext(ctx, "send speaker welcome failed", "speaker_id", speaker.ID, "error", err)
		}
	}
	return domain.NewSpeakerView(speaker), nil
}

func (s *speakerService) GetSpeaker(ctx context.Context, id string) (*domain.SpeakerView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var speaker *domain.Speaker
	err := s.tx.WithinTx(ctx, func(ctx context.Context, st domain.Stores) error {
		var err error
		speaker, err = st.Speakers.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	return domain.NewSpeakerView(speaker), nil
}

func (s *speakerService) ListSpeakers(ctx context.Context) ([]*domain.SpeakerView, error) {
	return s.list(ctx, "list speakers", func(ctx context.Context, repo domain.SpeakerRepository) ([]*domain.Speaker, error) {
		return repo.List(ctx)
	})
}

func (s *speakerService) FindByCompany(ctx context.Context, company string) ([]*domain.SpeakerView, error) {
	return s.list(ctx, "find speakers by company", func(ctx context.Context, repo domain.SpeakerRepository) ([]*domain.Speaker, error) {
		return repo.ListByCompany(ctx, company)
	})
}

func (s *speakerService) SearchByName(ctx context.Context, query string) ([]*domain.SpeakerView, error) {
	return s.list(ctx, "search speakers", func(ctx context.Context, repo domain.SpeakerRepository) ([]*domain.Speaker, error) {
		return repo.SearchByName(ctx, query)
	})
}

func (s *speakerService) list(ctx context.Context, op string, query func(context.Context, domain.SpeakerRepository) ([]*domain.Speaker, error)) ([]*domain.SpeakerView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var speakers []*domain.Speaker
	err := s.tx.WithinTx(ctx, func(ctx context.Context, st domain.Stores) error {
		var err error
		speakers, err = query(ctx, st.Speakers)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return domain.NewSpeakerViews(speakers), nil
}

func (s *speakerService) UpdateSpeaker(ctx context.Context, id string, profile domain.SpeakerProfile) (*domain.SpeakerView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var speaker *domain.Speaker
	err := s.tx.WithinTx(ctx, func(ctx context.Context, st domain.Stores) error {
		var err error
		speaker, err = st.Speakers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := speaker.Apply(profile); err != nil {
			return err
		}
		if err := ensureEmailAvailable(ctx, st.Speakers, speaker.Email, speaker.ID); err != nil {
			return err
		}
		return st.Speakers.Save(ctx, speaker)
	})
	if err != nil {
		return nil, fmt.Errorf("update speaker: %w", err)
	}
	s.notify.publish(ctx, domain.NewSpeakerNotification(domain.NotificationSpeakerUpdated, speaker))
	return domain.NewSpeakerView(speaker), nil
}

// DeleteSpeaker detaches the speaker from every session before deleting it.
// It returns false when the speaker does not exist.
func (s *speakerService) DeleteSpeaker(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var deleted bool
	err := s.tx.WithinTx(ctx, func(ctx context.Context, st domain.Stores) error {
		speaker, err := st.Speakers.GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		sessions, err := st.Sessions.ListBySpeaker(ctx, speaker)
		if err != nil {
			return err
		}
		for _, session := range sessions {
			if session.RemoveSpeaker(speaker) {
				if err := st.Sessions.Save(ctx, session); err != nil {
					return err
				}
			}
		}
		deleted, err = st.Speakers.Delete(ctx, id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("delete speaker: %w", err)
	}
	return deleted, nil
}

// ensureEmailAvailable fails with ErrDuplicateEmail when another speaker uses email.
func ensureEmailAvailable(ctx context.Context, repo domain.SpeakerRepository, email domain.Email, selfID string) error {
	existing, err := repo.GetByEmail(ctx, email.String())
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return domain.ErrDuplicateEmail
	}
	return nil
}
