package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"conferencecfp/internal/delivery/http/controllers"
	"conferencecfp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionID = "9a3e7f10-5b2c-4d8e-a1f4-7c6b5a4d3e03"

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type stubVerifier struct{ err error }

func (s stubVerifier) Verify(string) (string, error) { return "gandalf", s.err }

type stubPinger struct{}

func (stubPinger) PingContext(context.Context) error { return nil }

// stubSessionService answers every call with an empty session so routing can be asserted.
type stubSessionService struct {
	domain.SessionService
	called string
}

func (s *stubSessionService) AcceptSession(_ context.Context, id string) (*domain.SessionView, error) {
	s.called = "accept " + id
	return &domain.SessionView{ID: id, Status: domain.SessionStatusAccepted.String()}, nil
}

func (s *stubSessionService) WithdrawSession(_ context.Context, id string) (*domain.SessionView, error) {
	s.called = "withdraw " + id
	return &domain.SessionView{ID: id}, nil
}

func (s *stubSessionService) FindSessionsByStatus(_ context.Context, st domain.SessionStatus) ([]*domain.SessionView, error) {
	s.called = "status " + st.String()
	return nil, nil
}

type stubSpeakerService struct {
	domain.SpeakerService
	called string
}

func (s *stubSpeakerService) SearchByName(_ context.Context, q string) ([]*domain.SpeakerView, error) {
	s.called = "search " + q
	return nil, nil
}

func newTestRouter(verifier domain.TokenVerifier) (nethttp.Handler, *stubSpeakerService, *stubSessionService) {
	speakers := &stubSpeakerService{}
	sessions := &stubSessionService{}
	mux := NewRouter(
		controllers.NewSpeakerController(testLogger, speakers),
		controllers.NewSessionController(testLogger, sessions),
		controllers.NewHealthController(testLogger, stubPinger{}),
		verifier,
		testLogger,
	)
	return mux, speakers, sessions
}

func TestRouter_OrganizerRoutes(t *testing.T) {
	tests := []struct {
		name       string
		auth       string
		verifyErr  error
		wantStatus int
		wantCalled string
	}{
		{name: "organizer token", auth: "Bearer ok", wantStatus: nethttp.StatusOK, wantCalled: "accept " + sessionID},
		{name: "no token", wantStatus: nethttp.StatusUnauthorized},
		{
			name:       "token without role",
			auth:       "Bearer speaker",
			verifyErr:  fmt.Errorf("%w: missing role", domain.ErrForbidden),
			wantStatus: nethttp.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, sessions := newTestRouter(stubVerifier{err: tt.verifyErr})
			req := httptest.NewRequest(nethttp.MethodPost, BasePath+"/sessions/"+sessionID+"/accept", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, sessions.called)
		})
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		path        string
		wantStatus  int
		wantSpeaker string
		wantSession string
	}{
		{name: "withdraw needs no token", method: nethttp.MethodPost, path: BasePath + "/sessions/" + sessionID + "/withdraw", wantStatus: nethttp.StatusOK, wantSession: "withdraw " + sessionID},
		{name: "status query", method: nethttp.MethodGet, path: BasePath + "/sessions/status/ACCEPTED", wantStatus: nethttp.StatusOK, wantSession: "status ACCEPTED"},
		{name: "search wins over id", method: nethttp.MethodGet, path: BasePath + "/speakers/search?name=frodo", wantStatus: nethttp.StatusOK, wantSpeaker: "search frodo"},
		{name: "health", method: nethttp.MethodGet, path: "/healthz", wantStatus: nethttp.StatusOK},
		{name: "wrong method", method: nethttp.MethodPatch, path: BasePath + "/sessions/" + sessionID, wantStatus: nethttp.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, speakers, sessions := newTestRouter(stubVerifier{})
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantSpeaker, speakers.called)
			assert.Equal(t, tt.wantSession, sessions.called)
		})
	}
}
