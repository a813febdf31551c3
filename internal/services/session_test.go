package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"conferencecfp/internal/domain"
	"conferencecfp/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func oneRingDraft() domain.SessionDraft {
	prereq := ""
	return domain.SessionDraft{
		Abstract: domain.SessionAbstractParams{
			Title:              "The One Ring",
			Summary:            "A practical guide to carrying a dangerous artifact.",
			Outline:            "Bag End, Rivendell, Mordor",
			LearningObjectives: "Know when to put it on and when not to",
			TargetAudience:     "Ring-bearers",
			Prerequisites:      &prereq,
		},
		SessionType:     domain.SessionTypeTalk,
		SessionLevel:    domain.SessionLevelBeginner,
		DurationMinutes: 60,
	}
}

func newTestSessionService(db *memDB, email domain.EmailService, pub domain.NotificationPublisher) domain.SessionService {
	return NewSessionService(db, email, pub, testLogger, 2*time.Second)
}

func TestCFPScenario_FrodoBaggins(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()
	speakers := newTestSpeakerService(db, nil, nil)
	sessions := newTestSessionService(db, nil, nil)

	frodo, err := speakers.RegisterSpeaker(ctx, frodoProfile())
	require.NoError(t, err)

	created, err := sessions.CreateSession(ctx, oneRingDraft())
	require.NoError(t, err)
	assert.Equal(t, "SUBMITTED", created.Status)
	assert.Equal(t, "TALK", created.SessionType)
	assert.Equal(t, "BEGINNER", created.SessionLevel)
	assert.Equal(t, 60, created.DurationMinutes)

	withSpeaker, err := sessions.AddSpeakerToSession(ctx, created.ID, frodo.ID)
	require.NoError(t, err)
	require.Len(t, withSpeaker.Speakers, 1)
	assert.Equal(t, "Frodo Baggins", withSpeaker.Speakers[0].FullName)

	accepted, err := sessions.AcceptSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACCEPTED", accepted.Status)

	deleted, err := speakers.DeleteSpeaker(ctx, frodo.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	after, err := sessions.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, after.Speakers)

	byStatus, err := sessions.FindSessionsByStatus(ctx, domain.SessionStatusAccepted)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, created.ID, byStatus[0].ID)
}

func TestSessionService_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes submitted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pub := mocks.NewMockNotificationPublisher(ctrl)
		db := newMemDB()
		svc := newTestSessionService(db, nil, pub)

		var got domain.Notification
		pub.EXPECT().
			Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n domain.Notification) error {
				got = n
				return nil
			}).
			Times(1)

		v, err := svc.CreateSession(ctx, oneRingDraft())
		require.NoError(t, err)
		assert.Equal(t, domain.NotificationSessionSubmitted, got.Kind)
		assert.Equal(t, v.ID, got.SessionID)
		assert.Equal(t, "The One Ring", got.Title)
	})

	t.Run("invalid draft is not stored or published", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pub := mocks.NewMockNotificationPublisher(ctrl)
		pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)
		db := newMemDB()
		svc := newTestSessionService(db, nil, pub)

		d := oneRingDraft()
		d.Abstract.Prerequisites = nil
		_, err := svc.CreateSession(ctx, d)
		require.ErrorIs(t, err, domain.ErrValidation)

		d = oneRingDraft()
		d.DurationMinutes = 0
		_, err = svc.CreateSession(ctx, d)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, db.sessions)
	})

	t.Run("publish failure is logged only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pub := mocks.NewMockNotificationPublisher(ctrl)
		pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
		svc := newTestSessionService(newMemDB(), nil, pub)

		v, err := svc.CreateSession(ctx, oneRingDraft())
		require.NoError(t, err)
		assert.NotEmpty(t, v.ID)
	})
}

func TestSessionService_UpdateSession(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()
	svc := newTestSessionService(db, nil, nil)
	created, err := svc.CreateSession(ctx, oneRingDraft())
	require.NoError(t, err)

	d := oneRingDraft()
	d.Abstract.Title = "There and Back Again"
	d.SessionType = domain.SessionTypeWorkshop
	d.SessionLevel = domain.SessionLevelAdvanced
	d.DurationMinutes = 120
	v, err := svc.UpdateSession(ctx, created.ID, d)
	require.NoError(t, err)
	assert.Equal(t, "There and Back Again", v.Title)
	assert.Equal(t, "WORKSHOP", v.SessionType)
	assert.Equal(t, "ADVANCED", v.SessionLevel)
	assert.Equal(t, 120, v.DurationMinutes)
	assert.False(t, v.LastModifiedAt.Before(created.LastModifiedAt))

	d.Abstract.Title = ""
	_, err = svc.UpdateSession(ctx, created.ID, d)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateSession(ctx, "cs-404", oneRingDraft())
	require.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "There and Back Again", got.Title)
}

func TestSessionService_DeleteSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService(newMemDB(), nil, nil)
	created, err := svc.CreateSession(ctx, oneRingDraft())
	require.NoError(t, err)

	deleted, err := svc.DeleteSession(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteSession(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = svc.GetSession(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_SpeakerMembership(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()
	speakers := newTestSpeakerService(db, nil, nil)
	svc := newTestSessionService(db, nil, nil)

	frodo, err := speakers.RegisterSpeaker(ctx, frodoProfile())
	require.NoError(t, err)
	sam, err := speakers.RegisterSpeaker(ctx, samProfile())
	require.NoError(t, err)
	created, err := svc.CreateSession(ctx, oneRingDraft())
	require.NoError(t, err)

	v, err := svc.AddSpeakerToSession(ctx, created.ID, frodo.ID)
	require.NoError(t, err)
	require.Len(t, v.Speakers, 1)

	commits := db.commits
	v, err = svc.AddSpeakerToSession(ctx, created.ID, frodo.ID)
	require.NoError(t, err, "adding twice returns the current session")
	require.Len(t, v.Speakers, 1)
	assert.Equal(t, commits+1, db.commits)

	_, err = svc.AddSpeakerToSession(ctx, "cs-404", frodo.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.AddSpeakerToSession(ctx, created.ID, "sp-404")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.RemoveSpeakerFromSession(ctx, created.ID, sam.ID)
	require.ErrorIs(t, err, domain.ErrSpeakerNotAttached)
	_, err = svc.RemoveSpeakerFromSession(ctx, "cs-404", frodo.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.RemoveSpeakerFromSession(ctx, created.ID, "sp-404")
	require.ErrorIs(t, err, domain.ErrNotFound)

	v, err = svc.RemoveSpeakerFromSession(ctx, created.ID, frodo.ID)
	require.NoError(t, err)
	assert.Empty(t, v.Speakers)

	bySpeaker, err := svc.FindSessionsBySpeaker(ctx, frodo.ID)
	require.NoError(t, err)
	assert.Empty(t, bySpeaker)
}

func TestSessionService_Transitions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		before    []func(domain.SessionService, context.Context, string) (*domain.SessionView, error)
		op        func(domain.SessionService, context.Context, string) (*domain.SessionView, error)
		want      string
		wantKind  domain.NotificationKind
		wantEmail bool
		wantErr   error
	}{
		{name: "start review", op: domain.SessionService.StartReview, want: "UNDER_REVIEW", wantKind: domain.NotificationSessionUnderReview},
		{name: "accept", op: domain.SessionService.AcceptSession, want: "ACCEPTED", wantKind: domain.NotificationSessionAccepted, wantEmail: true},
		{
			name:      "reject after review",
			before:    []func(domain.SessionService, context.Context, string) (*domain.SessionView, error){domain.SessionService.StartReview},
			op:        domain.SessionService.RejectSession,
			want:      "REJECTED",
			wantKind:  domain.NotificationSessionRejected,
			wantEmail: true,
		},
		{name: "withdraw", op: domain.SessionService.WithdrawSession, want: "WITHDRAWN", wantKind: domain.NotificationSessionWithdrawn},
		{
			name:    "accept twice",
			before:  []func(domain.SessionService, context.Context, string) (*domain.SessionView, error){domain.SessionService.AcceptSession},
			op:      domain.SessionService.AcceptSession,
			want:    "ACCEPTED",
			wantErr: domain.ErrIllegalTransition,
		},
		{
			name:    "reject accepted",
			before:  []func(domain.SessionService, context.Context, string) (*domain.SessionView, error){domain.SessionService.AcceptSession},
			op:      domain.SessionService.RejectSession,
			want:    "ACCEPTED",
			wantErr: domain.ErrIllegalTransition,
		},
		{
			name:    "withdraw withdrawn",
			before:  []func(domain.SessionService, context.Context, string) (*domain.SessionView, error){domain.SessionService.WithdrawSession},
			op:      domain.SessionService.WithdrawSession,
			want:    "WITHDRAWN",
			wantErr: domain.ErrIllegalTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newMemDB()
			email := &fakeEmailService{}
			pub := &recordingPublisher{}
			speakers := newTestSpeakerService(db, nil, nil)
			svc := newTestSessionService(db, email, pub)

			frodo, err := speakers.RegisterSpeaker(ctx, frodoProfile())
			require.NoError(t, err)
			created, err := svc.CreateSession(ctx, oneRingDraft())
			require.NoError(t, err)
			_, err = svc.AddSpeakerToSession(ctx, created.ID, frodo.ID)
			require.NoError(t, err)
			for _, step := range tt.before {
				_, err := step(svc, ctx, created.ID)
				require.NoError(t, err)
			}
			published := len(pub.notes)
			mailed := len(email.decisions)

			v, err := tt.op(svc, ctx, created.ID)
			stored, getErr := svc.GetSession(ctx, created.ID)
			require.NoError(t, getErr)
			assert.Equal(t, tt.want, stored.Status)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, pub.notes, published)
				assert.Len(t, email.decisions, mailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Status)
			require.Len(t, pub.notes, published+1)
			assert.Equal(t, tt.wantKind, pub.notes[published].Kind)
			if tt.wantEmail {
				require.Len(t, email.decisions, mailed+1)
				d := email.decisions[mailed]
				assert.Equal(t, "frodo@shire.example", d.Email)
				assert.Equal(t, "The One Ring", d.SessionTitle)
				assert.Equal(t, tt.want == "ACCEPTED", d.Accepted)
			} else {
				assert.Len(t, email.decisions, mailed)
			}
		})
	}

	t.Run("unknown id", func(t *testing.T) {
		svc := newTestSessionService(newMemDB(), nil, nil)
		_, err := svc.AcceptSession(ctx, "cs-404")
		require.ErrorIs(t, err, domain.ErrNotFound)
		_, err = svc.StartReview(ctx, "cs-404")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSessionService_Finders(t *testing.T) {
	ctx := context.Background()
	db := newMemDB()
	speakers := newTestSpeakerService(db, nil, nil)
	svc := newTestSessionService(db, nil, nil)

	frodo, err := speakers.RegisterSpeaker(ctx, frodoProfile())
	require.NoError(t, err)
	talk, err := svc.CreateSession(ctx, oneRingDraft())
	require.NoError(t, err)
	d := oneRingDraft()
	d.SessionType = domain.SessionTypeWorkshop
	d.SessionLevel = domain.SessionLevelExpert
	workshop, err := svc.CreateSession(ctx, d)
	require.NoError(t, err)
	_, err = svc.AddSpeakerToSession(ctx, workshop.ID, frodo.ID)
	require.NoError(t, err)
	_, err = svc.RejectSession(ctx, talk.ID)
	require.NoError(t, err)

	all, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, talk.ID, all[0].ID)

	byType, err := svc.FindSessionsByType(ctx, domain.SessionTypeWorkshop)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, workshop.ID, byType[0].ID)

	byLevel, err := svc.FindSessionsByLevel(ctx, domain.SessionLevelBeginner)
	require.NoError(t, err)
	require.Len(t, byLevel, 1)
	assert.Equal(t, talk.ID, byLevel[0].ID)

	bySpeaker, err := svc.FindSessionsBySpeaker(ctx, frodo.ID)
	require.NoError(t, err)
	require.Len(t, bySpeaker, 1)
	assert.Equal(t, workshop.ID, bySpeaker[0].ID)

	rejected, err := svc.FindSessionsByStatus(ctx, domain.SessionStatusRejected)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, talk.ID, rejected[0].ID)

	accepted, err := svc.FindSessionsByStatus(ctx, domain.SessionStatusAccepted)
	require.NoError(t, err)
	assert.Empty(t, accepted)
}
