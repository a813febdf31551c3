package events

import (
	"context"
	"log/slog"

	"conferencecfp/internal/domain"
)

type noopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher returns a publisher that only logs notifications.
func NewNoopPublisher(logger *slog.Logger) domain.NotificationPublisher {
	return &noopPublisher{logger: logger}
}

func (p *noopPublisher) Publish(ctx context.Context, n domain.Notification) error {
	p.logger.DebugContext(ctx, "notification (noop)",
		"kind", n.Kind,
		"session_id", n.SessionID,
		"speaker_id", n.SpeakerID,
	)
	return nil
}
