// Package settings manages per-user alert thresholds and the alert
// subscription.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/pkg/ctxutil"
)

type settingsRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserSettings, error)
	Upsert(ctx context.Context, s *domain.UserSettings) (*domain.UserSettings, error)
	SetSubscription(ctx context.Context, userID string, subscribed bool, email *string, now time.Time) error
}

type subscriber interface {
	Subscribe(ctx context.Context, userID, email string) error
	Unsubscribe(ctx context.Context, email string) error
}

// Service implements settings operations for the user in context.
type Service struct {
	log      *slog.Logger
	settings settingsRepo
	channel  subscriber
	now      func() time.Time
}

// NewService creates a new settings Service.
func NewService(logger *slog.Logger, settings settingsRepo, channel subscriber) *Service {
	return &Service{
		log:      logger.With("service", "settings"),
		settings: settings,
		channel:  channel,
		now:      time.Now,
	}
}

// Get returns the user's settings, or the defaults if none were saved.
func (s *Service) Get(ctx context.Context) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.load(ctx, userID)
}

// Update applies in on top of the current settings and saves them.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	freq, err := in.Validate()
	if err != nil {
		return nil, err
	}

	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	for activity, v := range in.Thresholds {
		current.Thresholds[domain.ActivityType(activity)] = v
	}
	if freq != "" {
		current.Frequency = freq
	}
	current.UpdatedAt = s.now().UTC()

	saved, err := s.settings.Upsert(ctx, current)
	if err != nil {
		return nil, s.storageErr(ctx, "save settings", userID, err)
	}

	s.log.InfoContext(ctx, "settings updated",
		slog.String("user_id", userID),
		slog.String("frequency", saved.Frequency.String()),
	)
	return saved, nil
}

// Subscribe registers the address with the notification channel and marks
// the user subscribed. Repeating it with the same address does nothing.
func (s *Service) Subscribe(ctx context.Context, in SubscribeInput) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	email, err := in.Validate()
	if err != nil {
		return nil, err
	}

	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if current.Subscribed && current.Email != nil && *current.Email == email {
		return current, nil
	}

	// The new address is added before the old one is removed, so a channel
	// failure leaves the stored address subscribed.
	if err := s.channel.Subscribe(ctx, userID, email); err != nil {
		return nil, s.notifyErr(ctx, "subscribe", userID, err)
	}

	if current.Subscribed && current.Email != nil {
		if err := s.channel.Unsubscribe(ctx, *current.Email); err != nil {
			if rbErr := s.channel.Unsubscribe(ctx, email); rbErr != nil {
				s.log.WarnContext(ctx, "rollback of new subscription failed",
					slog.String("user_id", userID),
					slog.String("error", rbErr.Error()),
				)
			}
			return nil, s.notifyErr(ctx, "unsubscribe previous address", userID, err)
		}
	}

	now := s.now().UTC()
	if err := s.settings.SetSubscription(ctx, userID, true, &email, now); err != nil {
		return nil, s.storageErr(ctx, "save subscription", userID, err)
	}

	s.log.InfoContext(ctx, "user subscribed to alerts", slog.String("user_id", userID))

	current.Subscribed = true
	current.Email = &email
	current.UpdatedAt = now
	return current, nil
}

// Unsubscribe removes the user's address from the channel and clears the
// flag. Calling it when not subscribed does nothing.
func (s *Service) Unsubscribe(ctx context.Context) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !current.Subscribed {
		return current, nil
	}

	if current.Email != nil {
		if err := s.channel.Unsubscribe(ctx, *current.Email); err != nil {
			return nil, s.notifyErr(ctx, "unsubscribe", userID, err)
		}
	}

	now := s.now().UTC()
	if err := s.settings.SetSubscription(ctx, userID, false, nil, now); err != nil {
		return nil, s.storageErr(ctx, "save subscription", userID, err)
	}

	s.log.InfoContext(ctx, "user unsubscribed from alerts", slog.String("user_id", userID))

	current.Subscribed = false
	current.Email = nil
	current.UpdatedAt = now
	return current, nil
}

func (s *Service) load(ctx context.Context, userID string) (*domain.UserSettings, error) {
	current, err := s.settings.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultSettings(userID), nil
	}
	if err != nil {
		return nil, s.storageErr(ctx, "load settings", userID, err)
	}
	if current.Thresholds == nil {
		current.Thresholds = domain.DefaultSettings(userID).Thresholds
	}
	return current, nil
}

func (s *Service) storageErr(ctx context.Context, op, userID string, err error) error {
	s.log.ErrorContext(ctx, op+" failed", slog.String("user_id", userID), slog.String("error", err.Error()))
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

func (s *Service) notifyErr(ctx context.Context, op, userID string, err error) error {
	s.log.ErrorContext(ctx, op+" failed", slog.String("user_id", userID), slog.String("error", err.Error()))
	return fmt.Errorf("%s: %w: %w", op, domain.ErrNotification, err)
}
