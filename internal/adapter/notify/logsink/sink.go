// Package logsink is the notification channel used when no SNS topic is
// configured. Alerts and subscription changes are written to the log.
package logsink

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// Sink logs instead of delivering.
type Sink struct {
	log *slog.Logger
}

// New returns a Sink writing to logger.
func New(logger *slog.Logger) *Sink {
	return &Sink{log: logger.With("adapter", "logsink")}
}

func (s *Sink) Publish(ctx context.Context, alert domain.Alert) error {
	s.log.InfoContext(ctx, "alert",
		slog.String("user_id", alert.UserID),
		slog.String("subject", alert.Subject),
		slog.Int("exceeded", len(alert.Exceeded)),
		slog.String("message", alert.Message),
	)
	return nil
}

func (s *Sink) Subscribe(ctx context.Context, userID, email string) error {
	s.log.InfoContext(ctx, "subscribe", slog.String("user_id", userID), slog.String("email", email))
	return nil
}

func (s *Sink) Unsubscribe(ctx context.Context, email string) error {
	s.log.InfoContext(ctx, "unsubscribe", slog.String("email", email))
	return nil
}
