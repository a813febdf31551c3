package domain

import (
	"context"
	"time"
)

// SpeakerProfile carries the raw fields used to register or update a speaker.
type SpeakerProfile struct {
	FirstName string
	LastName  string
	Email     string
	Bio       string
	Company   string
	Title     string
	PhotoURL  string
}

// Speaker is a person who submits and presents talks.
type Speaker struct {
	ID        string
	Name      Name
	Email     Email
	Bio       string
	Company   string
	Title     string
	PhotoURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSpeaker validates the profile and returns an unsaved Speaker. ID is set by the repository on save.
func NewSpeaker(p SpeakerProfile) (*Speaker, error) {
	name, err := NewName(p.FirstName, p.LastName)
	if err != nil {
		return nil, err
	}
	email, err := NewEmail(p.Email)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Speaker{
		Name:      name,
		Email:     email,
		Bio:       p.Bio,
		Company:   p.Company,
		Title:     p.Title,
		PhotoURL:  p.PhotoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *Speaker) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// UpdateName replaces the name. The speaker is unchanged on error.
func (s *Speaker) UpdateName(firstName, lastName string) error {
	name, err := NewName(firstName, lastName)
	if err != nil {
		return err
	}
	s.Name = name
	s.touch()
	return nil
}

// UpdateEmail replaces the email. The speaker is unchanged on error.
func (s *Speaker) UpdateEmail(address string) error {
	email, err := NewEmail(address)
	if err != nil {
		return err
	}
	s.Email = email
	s.touch()
	return nil
}

func (s *Speaker) UpdateBio(bio string) {
	s.Bio = bio
	s.touch()
}

func (s *Speaker) UpdateCompany(company string) {
	s.Company = company
	s.touch()
}

func (s *Speaker) UpdateTitle(title string) {
	s.Title = title
	s.touch()
}

func (s *Speaker) UpdatePhoto(photoURL string) {
	s.PhotoURL = photoURL
	s.touch()
}

// Apply replaces every profile field. Name and email are validated first so
// a bad profile leaves the speaker untouched.
func (s *Speaker) Apply(p SpeakerProfile) error {
	name, err := NewName(p.FirstName, p.LastName)
	if err != nil {
		return err
	}
	email, err := NewEmail(p.Email)
	if err != nil {
		return err
	}
	s.Name = name
	s.Email = email
	s.Bio = p.Bio
	s.Company = p.Company
	s.Title = p.Title
	s.PhotoURL = p.PhotoURL
	s.touch()
	return nil
}

// SameAs reports whether s and other are the same speaker: equal IDs once
// persisted, the same pointer before.
func (s *Speaker) SameAs(other *Speaker) bool {
	if s == nil || other == nil {
		return false
	}
	if s.ID == "" || other.ID == "" {
		return s == other
	}
	return s.ID == other.ID
}

// SpeakerRepository defines the interface for speaker storage.
type SpeakerRepository interface {
	// Save inserts the speaker when ID is empty, otherwise updates it.
	Save(ctx context.Context, speaker *Speaker) error
	GetByID(ctx context.Context, id string) (*Speaker, error)
	GetByEmail(ctx context.Context, email string) (*Speaker, error)
	ListByCompany(ctx context.Context, company string) ([]*Speaker, error)
	SearchByName(ctx context.Context, query string) ([]*Speaker, error)
	List(ctx context.Context) ([]*Speaker, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// SpeakerService defines the business logic for managing speakers.
type SpeakerService interface {
	RegisterSpeaker(ctx context.Context, profile SpeakerProfile) (*SpeakerView, error)
	GetSpeaker(ctx context.Context, id string) (*SpeakerView, error)
	ListSpeakers(ctx context.Context) ([]*SpeakerView, error)
	FindByCompany(ctx context.Context, company string) ([]*SpeakerView, error)
	SearchByName(ctx context.Context, query string) ([]*SpeakerView, error)
	UpdateSpeaker(ctx context.Context, id string, profile SpeakerProfile) (*SpeakerView, error)
	DeleteSpeaker(ctx context.Context, id string) (bool, error)
}
