package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres"
	emissionrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/emission"
	referencerepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/reference"
	settingsrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/settings"
	"github.com/heartmarshall/carbontrack-backend/internal/adapter/provider/carboninterface"
	"github.com/heartmarshall/carbontrack-backend/internal/auth"
	"github.com/heartmarshall/carbontrack-backend/internal/calculator"
	"github.com/heartmarshall/carbontrack-backend/internal/config"
	"github.com/heartmarshall/carbontrack-backend/internal/service/emission"
	"github.com/heartmarshall/carbontrack-backend/internal/service/reference"
	"github.com/heartmarshall/carbontrack-backend/internal/service/settings"
	"github.com/heartmarshall/carbontrack-backend/internal/transport/middleware"
	"github.com/heartmarshall/carbontrack-backend/internal/transport/rest"
	"github.com/heartmarshall/carbontrack-backend/internal/validation"
)

// ErrNoAPIKey is returned by Run when the estimator API key is unset.
var ErrNoAPIKey = errors.New("estimator.api_key is required to serve the API")

// Run is the HTTP server entry point. It blocks until ctx is cancelled,
// then drains in-flight requests for up to Server.ShutdownTimeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Estimator.APIKey == "" {
		return ErrNoAPIKey
	}

	pool, err := openDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	notifier, err := NewNotifier(ctx, cfg.Notify, logger)
	if err != nil {
		return err
	}

	txm := postgres.NewTxManager(pool)
	records := emissionrepo.New(pool)
	settingsRepo := settingsrepo.New(pool)

	referenceSvc := reference.NewService(logger, referencerepo.New(pool), txm, reference.CacheConfig{
		TTL:  cfg.Reference.CacheTTL,
		Size: cfg.Reference.CacheSize,
	})

	estimator := carboninterface.NewClient(cfg.Estimator.BaseURL, cfg.Estimator.APIKey, cfg.Estimator.Timeout, logger)
	emissionSvc := emission.NewService(
		logger,
		records,
		validation.New(referenceSvc),
		calculator.New(logger, estimator, referenceSvc),
	)
	settingsSvc := settings.NewService(logger, settingsRepo, notifier)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	mux := NewRouter(Handlers{
		Emission:  rest.NewEmissionHandler(emissionSvc, logger),
		Settings:  rest.NewSettingsHandler(settingsSvc, logger),
		Reference: rest.NewReferenceHandler(referenceSvc, logger),
		Health: rest.NewHealthHandler(BuildVersion(), rest.Check{
			Name: "database",
			Ping: pool.Ping,
		}),
		CalculateLimit: limiter.Limit(cfg.RateLimit.CalculatePerMinute),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)),
	)(mux)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("stopped")
	return nil
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return pool, nil
}
