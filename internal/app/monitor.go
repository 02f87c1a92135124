package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	emissionrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/emission"
	settingsrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/settings"
	"github.com/heartmarshall/carbontrack-backend/internal/config"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/internal/service/monitor"
)

// RunMonitor performs one threshold check over the previous calendar
// month for users whose frequency matches Monitor.Frequency. Per-user
// failures are counted, not returned; the error is non-nil only when the
// run itself could not complete or some user failed.
func RunMonitor(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	freq, _ := domain.ParseCheckFrequency(cfg.Monitor.Frequency)
	if freq == domain.CheckNever {
		logger.Info("monitor frequency is Never, nothing to do")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Monitor.Timeout)
	defer cancel()

	pool, err := openDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	notifier, err := NewNotifier(ctx, cfg.Notify, logger)
	if err != nil {
		return err
	}

	svc := monitor.NewService(logger, settingsrepo.New(pool), emissionrepo.New(pool), notifier, cfg.Monitor.Concurrency)

	period := monitor.PreviousMonth(time.Now())
	res, err := svc.Run(ctx, period, freq)
	if err != nil {
		return err
	}

	if res.Failed > 0 {
		return fmt.Errorf("monitor: %d of %d users failed", res.Failed, res.Checked)
	}

	logger.Info("monitor run complete",
		slog.Int("checked", res.Checked),
		slog.Int("alerted", res.Alerted),
	)
	return nil
}
