package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "conferencecfp/internal/delivery/http/helpers"
	"conferencecfp/internal/domain"
)

type contextKey string

const organizerKey contextKey = "organizer"

// SetOrganizer returns a context carrying the authenticated organizer's token subject.
func SetOrganizer(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, organizerKey, subject)
}

// OrganizerFromContext returns the organizer subject set by RequireAuth, if present.
func OrganizerFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(organizerKey).(string)
	return subject, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and stores its subject in the request context.
// If the token is missing or invalid, it responds with 401; a valid token without the
// organizer role gets 403. In both cases next is not called.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			subject, err := verifier.Verify(token)
			if errors.Is(err, domain.ErrForbidden) {
				logger.WarnContext(r.Context(), "organizer role required", "path", r.URL.Path)
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "organizer role required")
				return
			}
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetOrganizer(r.Context(), subject))
			next(w, r)
		}
	}
}
