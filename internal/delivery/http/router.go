package http

import (
	"log/slog"
	"net/http"

	"conferencecfp/internal/delivery/http/controllers"
	"conferencecfp/internal/delivery/http/middleware"
	"conferencecfp/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// BasePath prefixes every CFP API route.
const BasePath = "/api/cfp"

// NewRouter initializes the HTTP router with all application routes.
// Review decisions require an organizer token.
func NewRouter(
	speakers *controllers.SpeakerController,
	sessions *controllers.SessionController,
	health *controllers.HealthController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	organizer := middleware.RequireAuth(verifier, logger)

	// Speakers
	mux.HandleFunc("GET "+BasePath+"/speakers", speakers.ListSpeakers)
	mux.HandleFunc("POST "+BasePath+"/speakers", speakers.RegisterSpeaker)
	mux.HandleFunc("GET "+BasePath+"/speakers/search", speakers.SearchSpeakers)
	mux.HandleFunc("GET "+BasePath+"/speakers/company/{company}", speakers.ListSpeakersByCompany)
	mux.HandleFunc("GET "+BasePath+"/speakers/{id}", speakers.GetSpeaker)
	mux.HandleFunc("PUT "+BasePath+"/speakers/{id}", speakers.UpdateSpeaker)
	mux.HandleFunc("DELETE "+BasePath+"/speakers/{id}", speakers.DeleteSpeaker)

	// Sessions
	mux.HandleFunc("GET "+BasePath+"/sessions", sessions.ListSessions)
	mux.HandleFunc("POST "+BasePath+"/sessions", sessions.CreateSession)
	mux.HandleFunc("GET "+BasePath+"/sessions/{id}", sessions.GetSession)
	mux.HandleFunc("PUT "+BasePath+"/sessions/{id}", sessions.UpdateSession)
	mux.HandleFunc("DELETE "+BasePath+"/sessions/{id}", sessions.DeleteSession)
	mux.HandleFunc("POST "+BasePath+"/sessions/{id}/speakers/{speakerID}", sessions.AddSpeaker)
	mux.HandleFunc("DELETE "+BasePath+"/sessions/{id}/speakers/{speakerID}", sessions.RemoveSpeaker)
	mux.HandleFunc("POST "+BasePath+"/sessions/{id}/withdraw", sessions.WithdrawSession)
	mux.HandleFunc("GET "+BasePath+"/sessions/status/{status}", sessions.ListSessionsByStatus)
	mux.HandleFunc("GET "+BasePath+"/sessions/speaker/{speakerID}", sessions.ListSessionsBySpeaker)
	mux.HandleFunc("GET "+BasePath+"/sessions/type/{type}", sessions.ListSessionsByType)
	mux.HandleFunc("GET "+BasePath+"/sessions/level/{level}", sessions.ListSessionsByLevel)

	// Review
	mux.HandleFunc("POST "+BasePath+"/sessions/{id}/review", organizer(sessions.StartReview))
	mux.HandleFunc("POST "+BasePath+"/sessions/{id}/accept", organizer(sessions.AcceptSession))
	mux.HandleFunc("POST "+BasePath+"/sessions/{id}/reject", organizer(sessions.RejectSession))

	mux.HandleFunc("GET /healthz", health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
