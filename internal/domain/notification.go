//go:generate go run go.uber.org/mock/mockgen -source=notification.go -destination=../mocks/mock_notification.go -package=mocks
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NotificationKind names what happened to a session or speaker.
type NotificationKind string

const (
	NotificationSessionSubmitted   NotificationKind = "session.submitted"
	NotificationSessionUnderReview NotificationKind = "session.under_review"
	NotificationSessionAccepted    NotificationKind = "session.accepted"
	NotificationSessionRejected    NotificationKind = "session.rejected"
	NotificationSessionWithdrawn   NotificationKind = "session.withdrawn"
	NotificationSpeakerRegistered  NotificationKind = "speaker.registered"
	NotificationSpeakerUpdated     NotificationKind = "speaker.updated"
)

// Notification is a record of a state change. The aggregate only builds it;
// services decide whether to publish it.
type Notification struct {
	ID         string           `json:"id"`
	Kind       NotificationKind `json:"kind"`
	SessionID  string           `json:"session_id,omitempty"`
	SpeakerID  string           `json:"speaker_id,omitempty"`
	Title      string           `json:"title,omitempty"`
	Status     string           `json:"status,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewSessionNotification describes the current state of session.
func NewSessionNotification(kind NotificationKind, session *ConferenceSession) Notification {
	return Notification{
		ID:         uuid.NewString(),
		Kind:       kind,
		SessionID:  session.ID,
		Title:      session.abstract.title,
		Status:     session.status.String(),
		OccurredAt: session.lastModifiedAt,
	}
}

// NewSpeakerNotification describes a change to speaker.
func NewSpeakerNotification(kind NotificationKind, speaker *Speaker) Notification {
	return Notification{
		ID:         uuid.NewString(),
		Kind:       kind,
		SpeakerID:  speaker.ID,
		Title:      speaker.Name.FullName(),
		OccurredAt: speaker.UpdatedAt,
	}
}

// NotificationPublisher delivers notifications to interested consumers.
type NotificationPublisher interface {
	Publish(ctx context.Context, n Notification) error
}
