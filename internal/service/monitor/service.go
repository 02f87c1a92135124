// Package monitor is the scheduled threshold check: for every subscribed
// user it sums a period's emissions per activity and publishes one alert
// when any threshold is exceeded.
//
// Runs keep no record of what was sent. Two runs over the same period
// alert twice.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

type settingsLister interface {
	ListSubscribed(ctx context.Context, freq domain.CheckFrequency) ([]domain.UserSettings, error)
}

type recordQuerier interface {
	Query(ctx context.Context, userID string, rng domain.TimeRange) ([]domain.EmissionRecord, error)
}

type publisher interface {
	Publish(ctx context.Context, alert domain.Alert) error
}

// RunResult counts what one run did.
type RunResult struct {
	Checked int
	Alerted int
	Failed  int
}

// Service evaluates thresholds.
type Service struct {
	log         *slog.Logger
	settings    settingsLister
	records     recordQuerier
	publisher   publisher
	concurrency int
}

// NewService creates a monitor Service. concurrency bounds how many users
// are evaluated at once; values below 1 mean 1.
func NewService(logger *slog.Logger, settings settingsLister, records recordQuerier, pub publisher, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		log:         logger.With("service", "monitor"),
		settings:    settings,
		records:     records,
		publisher:   pub,
		concurrency: concurrency,
	}
}

// Run checks every subscribed user with frequency freq over period.
// A failure for one user is logged and counted; only a failure to list
// users aborts the run.
func (s *Service) Run(ctx context.Context, period domain.Period, freq domain.CheckFrequency) (RunResult, error) {
	users, err := s.settings.ListSubscribed(ctx, freq)
	if err != nil {
		return RunResult{}, fmt.Errorf("list subscribed users: %w", err)
	}

	s.log.InfoContext(ctx, "threshold check started",
		slog.String("frequency", freq.String()),
		slog.Time("period_start", period.Start),
		slog.Time("period_end", period.End),
		slog.Int("users", len(users)),
	)

	var alerted, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, user := range users {
		g.Go(func() error {
			sent, err := s.checkUser(gctx, user, period)
			if err != nil {
				failed.Add(1)
				s.log.ErrorContext(gctx, "threshold check failed",
					slog.String("user_id", user.UserID),
					slog.String("error", err.Error()),
				)
				return nil
			}
			if sent {
				alerted.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	res := RunResult{
		Checked: len(users),
		Alerted: int(alerted.Load()),
		Failed:  int(failed.Load()),
	}

	s.log.InfoContext(ctx, "threshold check finished",
		slog.Int("checked", res.Checked),
		slog.Int("alerted", res.Alerted),
		slog.Int("failed", res.Failed),
	)

	return res, ctx.Err()
}

// Evaluate compares per-activity totals against the user's thresholds.
// The result is ordered like domain.ActivityTypes.
func Evaluate(settings domain.UserSettings, records []domain.EmissionRecord) []domain.ExceededActivity {
	sums := domain.SumByActivity(records)

	var exceeded []domain.ExceededActivity
	for _, a := range domain.ActivityTypes {
		total, ok := sums[a]
		if !ok {
			continue
		}
		threshold := settings.Threshold(a)
		if total.GreaterThan(threshold) {
			exceeded = append(exceeded, domain.ExceededActivity{
				Activity:  a,
				Total:     total,
				Threshold: threshold,
			})
		}
	}
	return exceeded
}

func (s *Service) checkUser(ctx context.Context, user domain.UserSettings, period domain.Period) (bool, error) {
	records, err := s.records.Query(ctx, user.UserID, period.Range())
	if err != nil {
		return false, fmt.Errorf("query records: %w", err)
	}

	exceeded := Evaluate(user, records)
	if len(exceeded) == 0 {
		return false, nil
	}

	alert := BuildAlert(user.UserID, period, exceeded)
	if err := s.publisher.Publish(ctx, alert); err != nil {
		return false, fmt.Errorf("publish alert: %w", err)
	}

	s.log.InfoContext(ctx, "threshold alert sent",
		slog.String("user_id", user.UserID),
		slog.Int("exceeded", len(exceeded)),
	)
	return true, nil
}
