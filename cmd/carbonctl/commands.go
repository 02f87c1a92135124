package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres"
	referencerepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/reference"
	"github.com/heartmarshall/carbontrack-backend/internal/app"
	"github.com/heartmarshall/carbontrack-backend/internal/config"
	"github.com/heartmarshall/carbontrack-backend/internal/seeder"
	"github.com/heartmarshall/carbontrack-backend/internal/service/reference"
)

const commandTimeout = 2 * time.Minute

func migrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return withPool(c.Context(), *configPath, func(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
				return postgres.Migrate(ctx, pool, log)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether each is applied",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return withPool(c.Context(), *configPath, func(ctx context.Context, pool *pgxpool.Pool, _ *slog.Logger) error {
				states, err := postgres.MigrationStatus(ctx, pool)
				if err != nil {
					return err
				}
				printMigrations(c, states)
				return nil
			})
		},
	})

	return cmd
}

func seedCmd(configPath *string) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed [file.yaml]",
		Short: "Replace countries, fuel sources and vehicle models from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			data, err := seeder.LoadFile(args[0])
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintf(c.OutOrStdout(), "%s: %d countries, %d fuel sources, %d vehicle models\n",
					args[0], len(data.Countries), len(data.FuelSources), len(data.VehicleModels))
				return nil
			}

			return withPool(c.Context(), *configPath, func(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
				svc := reference.NewService(log, referencerepo.New(pool), postgres.NewTxManager(pool), reference.CacheConfig{})
				return seeder.Run(ctx, log, svc, data)
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without touching the database")
	return cmd
}

func withPool(ctx context.Context, configPath string, fn func(context.Context, *pgxpool.Pool, *slog.Logger) error) error {
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.LoadPath(configPath)
	if err != nil {
		return err
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, pool, logger)
}

func printMigrations(c *cobra.Command, states []postgres.MigrationState) {
	w := tabwriter.NewWriter(c.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tFILE\tSTATE")
	for _, s := range states {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", s.Version, s.File, state)
	}
	_ = w.Flush()
}
