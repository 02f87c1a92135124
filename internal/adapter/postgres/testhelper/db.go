// Package testhelper starts a throwaway PostgreSQL for repository tests.
package testhelper

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/carbontrack-backend/internal/config"
)

const (
	image    = "postgres:17-alpine"
	dbName   = "carbontrack"
	dbUser   = "carbontrack"
	dbSecret = "carbontrack"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// SetupTestDB returns a pool on a migrated database. The container is
// started once per test binary and shared; each call gets its own pool,
// closed on cleanup. Pools are built by postgres.NewPool, so tests run
// with the same session settings as the service.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	once.Do(func() {
		sharedDSN, initErr = startAndMigrate()
	})
	if initErr != nil {
		t.Fatalf("testhelper: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dbConfig(sharedDSN))
	if err != nil {
		t.Fatalf("testhelper: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func dbConfig(dsn string) config.DatabaseConfig {
	return config.DatabaseConfig{
		DSN:             dsn,
		MaxConns:        4,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
	}
}

func startAndMigrate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       dbName,
				"POSTGRES_USER":     dbUser,
				"POSTGRES_PASSWORD": dbSecret,
			},
			// The entrypoint restarts postgres once after init.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start %s: %w", image, err)
	}

	endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		return "", fmt.Errorf("container endpoint: %w", err)
	}
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", dbUser, dbSecret, endpoint, dbName)

	pool, err := postgres.NewPool(ctx, dbConfig(dsn))
	if err != nil {
		return "", err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, slog.New(slog.DiscardHandler)); err != nil {
		return "", err
	}
	return dsn, nil
}
