package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UniqueUserID returns a user id that no other test uses, so tests sharing
// the container never see each other's rows.
func UniqueUserID() string {
	return "test-user-" + uuid.New().String()[:8]
}

// SeedReference inserts a small, fixed reference data set. Existing rows
// are left alone so the call is safe from parallel tests.
func SeedReference(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	stmts := []string{
		`INSERT INTO supported_countries (code, name) VALUES
			('US', 'United States Of America'),
			('CA', 'Canada'),
			('GB', 'United Kingdom')
		 ON CONFLICT DO NOTHING`,
		`INSERT INTO fuel_sources (fuel_source_id, unit, fuel_source_type, api_name) VALUES
			(1, 'short_ton', 'Bituminous Coal', 'bit'),
			(1, 'btu', 'Bituminous Coal', 'bit'),
			(5, 'thousand_cubic_feet', 'Natural Gas', 'ng'),
			(5, 'btu', 'Natural Gas', 'ng')
		 ON CONFLICT DO NOTHING`,
		`INSERT INTO vehicle_models (model_id, name, year, vehicle_make) VALUES
			('7268a9b7-17e8-4c8d-acca-57059252afe9', 'Corolla', 1993, 'Toyota'),
			('4bc2ac54-bf6d-4ab2-a4a0-d68d7ee1f5a2', 'Camry', 2010, 'Toyota'),
			('9eb1fd48-d1e7-44c9-8bcf-8a2d1ea6c6a4', 'XC90', 2018, 'Volvo')
		 ON CONFLICT DO NOTHING`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("testhelper: SeedReference: %v", err)
		}
	}
}
