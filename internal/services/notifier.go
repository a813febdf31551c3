package services

import (
	"context"
	"log/slog"

	"conferencecfp/internal/domain"
)

// notifier publishes notifications once a transaction has committed.
// Delivery failures are logged and never fail the request.
type notifier struct {
	publisher domain.NotificationPublisher
	logger    *slog.Logger
}

func (n notifier) publish(ctx context.Context, notes ...domain.Notification) {
	if n.publisher == nil {
		return
	}
	for _, note := range notes {
		if err := n.publisher.Publish(ctx, note); err != nil {
			n.logger.ErrorContext(ctx, "publish notification failed",
				"kind", note.Kind,
				"notification_id", note.ID,
				"error", err,
			)
		}
	}
}
