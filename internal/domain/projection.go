package domain

import (
	"time"

	"github.com/samber/lo"
)

// SpeakerView is the read model of a speaker.
// swagger:model SpeakerView
type SpeakerView struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	Company   string    `json:"company"`
	Title     string    `json:"title"`
	PhotoURL  string    `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionView is the read model of a session.
// swagger:model SessionView
type SessionView struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Summary            string         `json:"summary"`
	Outline            string         `json:"outline"`
	LearningObjectives string         `json:"learning_objectives"`
	TargetAudience     string         `json:"target_audience"`
	Prerequisites      string         `json:"prerequisites"`
	SessionType        string         `json:"session_type"`
	SessionLevel       string         `json:"session_level"`
	DurationMinutes    int            `json:"duration_minutes"`
	Status             string         `json:"status"`
	Speakers           []*SpeakerView `json:"speakers"`
	CreatedAt          time.Time      `json:"created_at"`
	LastModifiedAt     time.Time      `json:"last_modified_at"`
}

// NewSpeakerView projects a speaker.
func NewSpeakerView(s *Speaker) *SpeakerView {
	return &SpeakerView{
		ID:        s.ID,
		FirstName: s.Name.FirstName(),
		LastName:  s.Name.LastName(),
		FullName:  s.Name.FullName(),
		Email:     s.Email.String(),
		Bio:       s.Bio,
		Company:   s.Company,
		Title:     s.Title,
		PhotoURL:  s.PhotoURL,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// NewSpeakerViews projects every speaker.
func NewSpeakerViews(speakers []*Speaker) []*SpeakerView {
	return lo.Map(speakers, func(s *Speaker, _ int) *SpeakerView {
		return NewSpeakerView(s)
	})
}

// NewSessionView projects a session and its speakers.
func NewSessionView(c *ConferenceSession) *SessionView {
	return &SessionView{
		ID:                 c.ID,
		Title:              c.abstract.title,
		Summary:            c.abstract.summary,
		Outline:            c.abstract.outline,
		LearningObjectives: c.abstract.learningObjectives,
		TargetAudience:     c.abstract.targetAudience,
		Prerequisites:      c.abstract.prerequisites,
		SessionType:        c.sessionType.String(),
		SessionLevel:       c.sessionLevel.String(),
		DurationMinutes:    c.DurationMinutes(),
		Status:             c.status.String(),
		Speakers:           NewSpeakerViews(c.speakers),
		CreatedAt:          c.createdAt,
		LastModifiedAt:     c.lastModifiedAt,
	}
}

// NewSessionViews projects every session.
func NewSessionViews(sessions []*ConferenceSession) []*SessionView {
	return lo.Map(sessions, func(c *ConferenceSession, _ int) *SessionView {
		return NewSessionView(c)
	})
}
