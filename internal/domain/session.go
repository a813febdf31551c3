package domain

import (
	"context"
	"slices"
	"strings"
	"time"
)

// SessionType is the format of a talk.
type SessionType string

const (
	SessionTypeKeynote   SessionType = "KEYNOTE"
	SessionTypeTalk      SessionType = "TALK"
	SessionTypeWorkshop  SessionType = "WORKSHOP"
	SessionTypePanel     SessionType = "PANEL"
	SessionTypeLightning SessionType = "LIGHTNING_TALK"
	SessionTypeBOF       SessionType = "BOF"
)

var sessionTypes = []SessionType{
	SessionTypeKeynote, SessionTypeTalk, SessionTypeWorkshop,
	SessionTypePanel, SessionTypeLightning, SessionTypeBOF,
}

// ParseSessionType returns the SessionType for s, ignoring case.
func ParseSessionType(s string) (SessionType, error) {
	t := SessionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", newValidationError("session_type", "unknown session type: "+s)
	}
	return t, nil
}

func (t SessionType) Valid() bool { return slices.Contains(sessionTypes, t) }

func (t SessionType) String() string { return string(t) }

// SessionLevel is the expected audience experience.
type SessionLevel string

const (
	SessionLevelBeginner     SessionLevel = "BEGINNER"
	SessionLevelIntermediate SessionLevel = "INTERMEDIATE"
	SessionLevelAdvanced     SessionLevel = "ADVANCED"
	SessionLevelExpert       SessionLevel = "EXPERT"
)

var sessionLevels = []SessionLevel{
	SessionLevelBeginner, SessionLevelIntermediate, SessionLevelAdvanced, SessionLevelExpert,
}

// ParseSessionLevel returns the SessionLevel for s, ignoring case.
func ParseSessionLevel(s string) (SessionLevel, error) {
	l := SessionLevel(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", newValidationError("session_level", "unknown session level: "+s)
	}
	return l, nil
}

func (l SessionLevel) Valid() bool { return slices.Contains(sessionLevels, l) }

func (l SessionLevel) String() string { return string(l) }

// SessionStatus is the review state of a session.
type SessionStatus string

const (
	SessionStatusSubmitted   SessionStatus = "SUBMITTED"
	SessionStatusUnderReview SessionStatus = "UNDER_REVIEW"
	SessionStatusAccepted    SessionStatus = "ACCEPTED"
	SessionStatusRejected    SessionStatus = "REJECTED"
	SessionStatusWithdrawn   SessionStatus = "WITHDRAWN"
)

var sessionStatuses = []SessionStatus{
	SessionStatusSubmitted, SessionStatusUnderReview,
	SessionStatusAccepted, SessionStatusRejected, SessionStatusWithdrawn,
}

// ParseSessionStatus returns the SessionStatus for s, ignoring case.
func ParseSessionStatus(s string) (SessionStatus, error) {
	st := SessionStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", newValidationError("status", "unknown session status: "+s)
	}
	return st, nil
}

func (s SessionStatus) Valid() bool { return slices.Contains(sessionStatuses, s) }

// Terminal reports whether no transition leaves s.
func (s SessionStatus) Terminal() bool {
	return s == SessionStatusAccepted || s == SessionStatusRejected || s == SessionStatusWithdrawn
}

func (s SessionStatus) String() string { return string(s) }

// SessionDraft carries the raw fields used to create or update a session.
type SessionDraft struct {
	Abstract        SessionAbstractParams
	SessionType     SessionType
	SessionLevel    SessionLevel
	DurationMinutes int
}

// ConferenceSession is a submitted talk and the aggregate root for its
// review status and speaker membership. It is not safe for concurrent use.
type ConferenceSession struct {
	ID string

	abstract       SessionAbstract
	sessionType    SessionType
	sessionLevel   SessionLevel
	duration       time.Duration
	status         SessionStatus
	speakers       []*Speaker
	createdAt      time.Time
	lastModifiedAt time.Time
}

// NewConferenceSession returns an unsaved session in SUBMITTED status.
func NewConferenceSession(abstract SessionAbstract, sessionType SessionType, level SessionLevel, duration time.Duration) (*ConferenceSession, error) {
	if abstract.title == "" {
		return nil, newValidationError("abstract", "is required")
	}
	if !sessionType.Valid() {
		return nil, newValidationError("session_type", "unknown session type: "+string(sessionType))
	}
	if !level.Valid() {
		return nil, newValidationError("session_level", "unknown session level: "+string(level))
	}
	if err := validateDuration(duration); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &ConferenceSession{
		abstract:       abstract,
		sessionType:    sessionType,
		sessionLevel:   level,
		duration:       duration,
		status:         SessionStatusSubmitted,
		createdAt:      now,
		lastModifiedAt: now,
	}, nil
}

// NewConferenceSessionFromDraft validates every draft field and builds the session.
func NewConferenceSessionFromDraft(d SessionDraft) (*ConferenceSession, error) {
	abstract, err := NewSessionAbstract(d.Abstract)
	if err != nil {
		return nil, err
	}
	return NewConferenceSession(abstract, d.SessionType, d.SessionLevel, time.Duration(d.DurationMinutes)*time.Minute)
}

func validateDuration(d time.Duration) error {
	if d <= 0 {
		return newValidationError("duration", "must be positive")
	}
	if d%time.Minute != 0 {
		return newValidationError("duration", "must be a whole number of minutes")
	}
	return nil
}

// SessionSnapshot is the stored form of a session.
type SessionSnapshot struct {
	ID              string
	Abstract        SessionAbstract
	SessionType     SessionType
	SessionLevel    SessionLevel
	DurationMinutes int
	Status          SessionStatus
	Speakers        []*Speaker
	CreatedAt       time.Time
	LastModifiedAt  time.Time
}

// RestoreConferenceSession rebuilds a session loaded from storage. It does
// not validate or touch timestamps.
func RestoreConferenceSession(s SessionSnapshot) *ConferenceSession {
	return &ConferenceSession{
		ID:             s.ID,
		abstract:       s.Abstract,
		sessionType:    s.SessionType,
		sessionLevel:   s.SessionLevel,
		duration:       time.Duration(s.DurationMinutes) * time.Minute,
		status:         s.Status,
		speakers:       slices.Clone(s.Speakers),
		createdAt:      s.CreatedAt,
		lastModifiedAt: s.LastModifiedAt,
	}
}

func (c *ConferenceSession) Abstract() SessionAbstract  { return c.abstract }
func (c *ConferenceSession) SessionType() SessionType   { return c.sessionType }
func (c *ConferenceSession) SessionLevel() SessionLevel { return c.sessionLevel }
func (c *ConferenceSession) Duration() time.Duration    { return c.duration }
func (c *ConferenceSession) DurationMinutes() int       { return int(c.duration / time.Minute) }
func (c *ConferenceSession) Status() SessionStatus      { return c.status }
func (c *ConferenceSession) CreatedAt() time.Time       { return c.createdAt }
func (c *ConferenceSession) LastModifiedAt() time.Time  { return c.lastModifiedAt }

// Speakers returns a copy of the attached speakers.
func (c *ConferenceSession) Speakers() []*Speaker {
	return slices.Clone(c.speakers)
}

// SpeakerIDs returns the IDs of the attached speakers.
func (c *ConferenceSession) SpeakerIDs() []string {
	ids := make([]string, 0, len(c.speakers))
	for _, s := range c.speakers {
		ids = append(ids, s.ID)
	}
	return ids
}

func (c *ConferenceSession) touch() {
	c.lastModifiedAt = time.Now().UTC()
}

func (c *ConferenceSession) transition(to SessionStatus, op string, kind NotificationKind) (Notification, error) {
	if c.status == to || c.status.Terminal() {
		return Notification{}, transitionError(c.status, op)
	}
	c.status = to
	c.touch()
	return NewSessionNotification(kind, c), nil
}

// MarkUnderReview moves a SUBMITTED session to UNDER_REVIEW.
func (c *ConferenceSession) MarkUnderReview() (Notification, error) {
	if c.status != SessionStatusSubmitted {
		return Notification{}, transitionError(c.status, "review")
	}
	c.status = SessionStatusUnderReview
	c.touch()
	return NewSessionNotification(NotificationSessionUnderReview, c), nil
}

// Accept finalizes the session as ACCEPTED.
func (c *ConferenceSession) Accept() (Notification, error) {
	return c.transition(SessionStatusAccepted, "accept", NotificationSessionAccepted)
}

// Reject finalizes the session as REJECTED.
func (c *ConferenceSession) Reject() (Notification, error) {
	return c.transition(SessionStatusRejected, "reject", NotificationSessionRejected)
}

// Withdraw finalizes the session as WITHDRAWN.
func (c *ConferenceSession) Withdraw() (Notification, error) {
	return c.transition(SessionStatusWithdrawn, "withdraw", NotificationSessionWithdrawn)
}

// IsFinalized reports whether the session reached ACCEPTED, REJECTED or WITHDRAWN.
func (c *ConferenceSession) IsFinalized() bool {
	return c.status.Terminal()
}

// IsEligibleForReview reports whether the session is SUBMITTED with at least one speaker.
func (c *ConferenceSession) IsEligibleForReview() bool {
	return c.status == SessionStatusSubmitted && len(c.speakers) > 0
}

func (c *ConferenceSession) UpdateSessionAbstract(p SessionAbstractParams) error {
	abstract, err := NewSessionAbstract(p)
	if err != nil {
		return err
	}
	c.abstract = abstract
	c.touch()
	return nil
}

func (c *ConferenceSession) UpdateSessionType(t SessionType) error {
	if !t.Valid() {
		return newValidationError("session_type", "unknown session type: "+string(t))
	}
	c.sessionType = t
	c.touch()
	return nil
}

func (c *ConferenceSession) UpdateSessionLevel(l SessionLevel) error {
	if !l.Valid() {
		return newValidationError("session_level", "unknown session level: "+string(l))
	}
	c.sessionLevel = l
	c.touch()
	return nil
}

func (c *ConferenceSession) UpdateDuration(d time.Duration) error {
	if err := validateDuration(d); err != nil {
		return err
	}
	c.duration = d
	c.touch()
	return nil
}

// ApplyDraft replaces abstract, type, level and duration. Nothing changes
// unless every field is valid.
func (c *ConferenceSession) ApplyDraft(d SessionDraft) error {
	abstract, err := NewSessionAbstract(d.Abstract)
	if err != nil {
		return err
	}
	if !d.SessionType.Valid() {
		return newValidationError("session_type", "unknown session type: "+string(d.SessionType))
	}
	if !d.SessionLevel.Valid() {
		return newValidationError("session_level", "unknown session level: "+string(d.SessionLevel))
	}
	duration := time.Duration(d.DurationMinutes) * time.Minute
	if err := validateDuration(duration); err != nil {
		return err
	}
	c.abstract = abstract
	c.sessionType = d.SessionType
	c.sessionLevel = d.SessionLevel
	c.duration = duration
	c.touch()
	return nil
}

// HasSpeaker reports whether speaker is attached.
func (c *ConferenceSession) HasSpeaker(speaker *Speaker) bool {
	return slices.ContainsFunc(c.speakers, speaker.SameAs)
}

// AddSpeaker attaches speaker. It returns false if already attached.
func (c *ConferenceSession) AddSpeaker(speaker *Speaker) bool {
	if speaker == nil || c.HasSpeaker(speaker) {
		return false
	}
	c.speakers = append(c.speakers, speaker)
	c.touch()
	return true
}

// RemoveSpeaker detaches speaker. It returns false if it was not attached.
func (c *ConferenceSession) RemoveSpeaker(speaker *Speaker) bool {
	i := slices.IndexFunc(c.speakers, speaker.SameAs)
	if i < 0 {
		return false
	}
	c.speakers = slices.Delete(c.speakers, i, i+1)
	c.touch()
	return true
}

// SessionRepository defines the interface for session storage.
type SessionRepository interface {
	// Save inserts the session when ID is empty, otherwise updates it.
	// Speaker membership is replaced with the session's current speakers.
	Save(ctx context.Context, session *ConferenceSession) error
	GetByID(ctx context.Context, id string) (*ConferenceSession, error)
	ListBySpeaker(ctx context.Context, speaker *Speaker) ([]*ConferenceSession, error)
	ListBySpeakerID(ctx context.Context, speakerID string) ([]*ConferenceSession, error)
	ListByStatus(ctx context.Context, status SessionStatus) ([]*ConferenceSession, error)
	ListByType(ctx context.Context, sessionType SessionType) ([]*ConferenceSession, error)
	ListByLevel(ctx context.Context, level SessionLevel) ([]*ConferenceSession, error)
	List(ctx context.Context) ([]*ConferenceSession, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// SessionService defines the business logic for the call for papers.
type SessionService interface {
	CreateSession(ctx context.Context, draft SessionDraft) (*SessionView, error)
	GetSession(ctx context.Context, id string) (*SessionView, error)
	ListSessions(ctx context.Context) ([]*SessionView, error)
	UpdateSession(ctx context.Context, id string, draft SessionDraft) (*SessionView, error)
	DeleteSession(ctx context.Context, id string) (bool, error)
	AddSpeakerToSession(ctx context.Context, sessionID, speakerID string) (*SessionView, error)
	RemoveSpeakerFromSession(ctx context.Context, sessionID, speakerID string) (*SessionView, error)
	StartReview(ctx context.Context, id string) (*SessionView, error)
	AcceptSession(ctx context.Context, id string) (*SessionView, error)
	RejectSession(ctx context.Context, id string) (*SessionView, error)
	WithdrawSession(ctx context.Context, id string) (*SessionView, error)
	FindSessionsByStatus(ctx context.Context, status SessionStatus) ([]*SessionView, error)
	FindSessionsBySpeaker(ctx context.Context, speakerID string) ([]*SessionView, error)
	FindSessionsByType(ctx context.Context, sessionType SessionType) ([]*SessionView, error)
	FindSessionsByLevel(ctx context.Context, level SessionLevel) ([]*SessionView, error)
}
