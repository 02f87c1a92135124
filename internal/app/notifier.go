package app

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/notify/logsink"
	"github.com/heartmarshall/carbontrack-backend/internal/adapter/notify/sns"
	"github.com/heartmarshall/carbontrack-backend/internal/config"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// Notifier is the alert channel shared by the settings service (subscribe)
// and the monitor (publish).
type Notifier interface {
	Publish(ctx context.Context, alert domain.Alert) error
	Subscribe(ctx context.Context, userID, email string) error
	Unsubscribe(ctx context.Context, email string) error
}

// NewNotifier returns the SNS publisher when a topic is configured and the
// log sink otherwise.
func NewNotifier(ctx context.Context, cfg config.NotifyConfig, logger *slog.Logger) (Notifier, error) {
	if !cfg.NotificationsEnabled() {
		logger.Warn("notify.topic_arn not set, alerts go to the log")
		return logsink.New(logger), nil
	}

	pub, err := sns.New(ctx, cfg.Region, cfg.TopicARN, cfg.Endpoint, logger)
	if err != nil {
		return nil, err
	}
	return pub, nil
}
