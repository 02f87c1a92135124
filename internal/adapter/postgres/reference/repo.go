// Package reference implements read access and bulk replacement for the
// static lookup tables: supported countries, fuel sources and vehicle models.
package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

const (
	tableCountries = "supported_countries"
	tableFuel      = "fuel_sources"
	tableVehicles  = "vehicle_models"

	// Rows per multi-row INSERT during Replace.
	insertChunk = 500
)

// Repo reads and replaces reference data.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reference repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read
// ---------------------------------------------------------------------------

// Countries returns every supported country ordered by name.
func (r *Repo) Countries(ctx context.Context) ([]domain.Country, error) {
	query := postgres.Builder.
		Select("code", "name").
		From(tableCountries).
		OrderBy("name", "code")

	rows, err := postgres.Query(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "country", "*")
	}
	defer rows.Close()

	out := make([]domain.Country, 0)
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, postgres.MapError(err, "country", "*")
		}
		out = append(out, c)
	}

	return out, postgres.MapError(rows.Err(), "country", "*")
}

// FuelSources returns every (type, unit) row ordered by type then unit.
func (r *Repo) FuelSources(ctx context.Context) ([]domain.FuelSource, error) {
	query := postgres.Builder.
		Select("fuel_source_id", "fuel_source_type", "unit", "api_name").
		From(tableFuel).
		OrderBy("fuel_source_type", "unit")

	rows, err := postgres.Query(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "fuel_source", "*")
	}
	defer rows.Close()

	out := make([]domain.FuelSource, 0)
	for rows.Next() {
		var f domain.FuelSource
		if err := rows.Scan(&f.ID, &f.Type, &f.Unit, &f.APIName); err != nil {
			return nil, postgres.MapError(err, "fuel_source", "*")
		}
		out = append(out, f)
	}

	return out, postgres.MapError(rows.Err(), "fuel_source", "*")
}

// VehicleModels returns every vehicle model ordered by make, name and year.
func (r *Repo) VehicleModels(ctx context.Context) ([]domain.VehicleModel, error) {
	query := postgres.Builder.
		Select("model_id", "name", "year", "vehicle_make").
		From(tableVehicles).
		OrderBy("vehicle_make", "name", "year")

	rows, err := postgres.Query(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "vehicle_model", "*")
	}
	defer rows.Close()

	out := make([]domain.VehicleModel, 0)
	for rows.Next() {
		var m domain.VehicleModel
		if err := rows.Scan(&m.ID, &m.Name, &m.Year, &m.Make); err != nil {
			return nil, postgres.MapError(err, "vehicle_model", "*")
		}
		out = append(out, m)
	}

	return out, postgres.MapError(rows.Err(), "vehicle_model", "*")
}

// ---------------------------------------------------------------------------
// Replace
// ---------------------------------------------------------------------------

// Replace deletes all reference rows and inserts data in their place. Run it
// inside TxManager.RunInTx so readers never observe a partial table.
func (r *Repo) Replace(ctx context.Context, data domain.ReferenceData) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	for _, t := range []string{tableCountries, tableFuel, tableVehicles} {
		if _, err := postgres.Exec(ctx, q, postgres.Builder.Delete(t)); err != nil {
			return postgres.MapError(err, t, "*")
		}
	}

	for start := 0; start < len(data.Countries); start += insertChunk {
		end := min(start+insertChunk, len(data.Countries))
		insert := postgres.Builder.Insert(tableCountries).Columns("code", "name")
		for _, c := range data.Countries[start:end] {
			insert = insert.Values(c.Code, c.Name)
		}
		if _, err := postgres.Exec(ctx, q, insert); err != nil {
			return postgres.MapError(err, "country", fmt.Sprintf("batch %d", start/insertChunk))
		}
	}

	for start := 0; start < len(data.FuelSources); start += insertChunk {
		end := min(start+insertChunk, len(data.FuelSources))
		insert := postgres.Builder.Insert(tableFuel).
			Columns("fuel_source_id", "unit", "fuel_source_type", "api_name")
		for _, f := range data.FuelSources[start:end] {
			insert = insert.Values(f.ID, f.Unit, f.Type, f.APIName)
		}
		if _, err := postgres.Exec(ctx, q, insert); err != nil {
			return postgres.MapError(err, "fuel_source", fmt.Sprintf("batch %d", start/insertChunk))
		}
	}

	for start := 0; start < len(data.VehicleModels); start += insertChunk {
		end := min(start+insertChunk, len(data.VehicleModels))
		insert := postgres.Builder.Insert(tableVehicles).
			Columns("model_id", "name", "year", "vehicle_make")
		for _, m := range data.VehicleModels[start:end] {
			insert = insert.Values(m.ID, m.Name, m.Year, m.Make)
		}
		if _, err := postgres.Exec(ctx, q, insert); err != nil {
			return postgres.MapError(err, "vehicle_model", fmt.Sprintf("batch %d", start/insertChunk))
		}
	}

	return nil
}
