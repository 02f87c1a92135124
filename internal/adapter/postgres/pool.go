// Package postgres holds the shared PostgreSQL plumbing used by the
// per-entity repositories: pool construction, migrations, transaction
// propagation through context and error mapping.
package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/carbontrack-backend/internal/config"
)

// Builder is the statement builder every repository starts from.
var Builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const applicationName = "carbontrack"

// NewPool opens a pool sized by cfg and pings it. Sessions run in UTC so
// recorded_at values and report day boundaries agree with the service.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	params := poolCfg.ConnConfig.RuntimeParams
	params["timezone"] = "UTC"
	if _, ok := params["application_name"]; !ok {
		params["application_name"] = applicationName
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return pool, nil
}
